package model

// RoleResponsibleProfessor is the only role that can manage timetables.
const RoleResponsibleProfessor = "responsible_professor"

// User maps the users table.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string `gorm:"type:varchar(30);not null;default:'responsible_professor'" json:"role"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
