// Package i18n holds the Italian user-facing message catalog.
package i18n

import "fmt"

// Error and status messages shown to the professor.
const (
	MsgEmailTaken       = "Questo indirizzo email è già registrato"
	MsgPasswordTooShort = "La password deve contenere almeno 8 caratteri"
	MsgInvalidEmail     = "Indirizzo email non valido"
	MsgInvalidCreds     = "Email o password non validi"
	MsgLoginRequired    = "Effettua l'accesso per continuare"
	MsgForbidden        = "Non hai i permessi per accedere a questa risorsa"

	MsgClassIdentifierRequired = "L'identificativo della classe è obbligatorio"
	MsgClassIdentifierTooLong  = "L'identificativo della classe non può superare 255 caratteri"
	MsgSchoolYearRequired      = "L'anno scolastico è obbligatorio"
	MsgWeeklyHoursInvalid      = "Le ore settimanali devono essere un numero tra 1 e 60"
	MsgSubjectsRequired        = "Inserire almeno una materia"
	MsgTeachersFormatInvalid   = "Formato non valido per i docenti. Usare 'Materia: Nome Docente' per ogni riga"
	MsgTimetableNotFound       = "Orario non trovato"

	MsgConstraintTextRequired  = "Il testo del vincolo è obbligatorio"
	MsgConstraintTextTooLong   = "Il testo del vincolo non può superare 1000 caratteri"
	MsgConstraintNotFound      = "Vincolo non trovato"
	MsgConstraintNotTranslatable = "Il vincolo deve essere nello stato 'tradotto' per essere approvato o rifiutato"

	MsgLLMConnectionFailed = "Impossibile connettersi all'endpoint LLM"
	MsgLLMAuthFailed       = "Chiave API non valida"
	MsgLLMTimeout          = "Timeout durante il test di connessione"
	MsgLLMBaseURLRequired  = "L'URL base dell'endpoint LLM è obbligatorio"
	MsgLLMAPIKeyRequired   = "La chiave API è obbligatoria"
	MsgLLMConfigSaved      = "Configurazione LLM salvata con successo"
	MsgLLMConfigRequired   = "Configura l'endpoint LLM prima di procedere"
)

// Conflict warning templates. The placeholders are fixed by the product copy;
// keep them byte-identical when changing anything around them.
const (
	teacherDoubleBookingFmt = "Conflitto: %s è assegnato a più lezioni contemporaneamente (%s, ora %d)"
	hourTotalMismatchFmt    = "Le ore totali assegnate (%d) superano le ore settimanali dell'orario (%d)"
)

// TeacherDoubleBookingMessage renders the double-booking conflict warning.
func TeacherDoubleBookingMessage(teacher, day string, slot int) string {
	return fmt.Sprintf(teacherDoubleBookingFmt, teacher, day, slot)
}

// HourTotalMismatchMessage renders the weekly-hours overbooking warning.
func HourTotalMismatchMessage(total, weeklyHours int) string {
	return fmt.Sprintf(hourTotalMismatchFmt, total, weeklyHours)
}
