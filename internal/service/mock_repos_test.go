package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/giorgiovilardo/easyorario/internal/llm"
	"github.com/giorgiovilardo/easyorario/internal/model"
	"github.com/giorgiovilardo/easyorario/pkg/redis"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	timetables map[string]*model.Timetable
	order      []string
	seq        int
}

func newMockTimetableRepo() *mockTimetableRepo {
	return &mockTimetableRepo{timetables: make(map[string]*model.Timetable)}
}

func (m *mockTimetableRepo) Create(_ context.Context, timetable *model.Timetable) error {
	if timetable.TimetableID == "" {
		m.seq++
		timetable.TimetableID = fmt.Sprintf("tt-%03d", m.seq)
	}
	m.timetables[timetable.TimetableID] = timetable
	m.order = append(m.order, timetable.TimetableID)
	return nil
}

func (m *mockTimetableRepo) GetByID(_ context.Context, id string) (*model.Timetable, error) {
	if t, ok := m.timetables[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByOwner(_ context.Context, ownerID string) ([]model.Timetable, error) {
	var result []model.Timetable
	for _, id := range m.order {
		if m.timetables[id].OwnerID == ownerID {
			result = append(result, *m.timetables[id])
		}
	}
	return result, nil
}

// ── Mock ConstraintRepository ──

// mockConstraintRepo keeps insertion order, matching the created_at ordering
// of the real repository.
type mockConstraintRepo struct {
	constraints []*model.Constraint
	seq         int
}

func newMockConstraintRepo() *mockConstraintRepo {
	return &mockConstraintRepo{}
}

func (m *mockConstraintRepo) Create(_ context.Context, constraint *model.Constraint) error {
	m.seq++
	if constraint.ConstraintID == "" {
		constraint.ConstraintID = fmt.Sprintf("con-%03d", m.seq)
	}
	if constraint.CreatedAt.IsZero() {
		constraint.CreatedAt = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC).
			Add(time.Duration(m.seq) * time.Minute)
	}
	m.constraints = append(m.constraints, constraint)
	return nil
}

func (m *mockConstraintRepo) GetByID(_ context.Context, id string) (*model.Constraint, error) {
	for _, c := range m.constraints {
		if c.ConstraintID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockConstraintRepo) GetByTimetable(_ context.Context, timetableID string) ([]model.Constraint, error) {
	var result []model.Constraint
	for _, c := range m.constraints {
		if c.TimetableID == timetableID {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockConstraintRepo) Update(_ context.Context, constraint *model.Constraint) error {
	for _, c := range m.constraints {
		if c.ConstraintID == constraint.ConstraintID {
			c.Status = constraint.Status
			c.FormalRepresentation = constraint.FormalRepresentation
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// ── Stub ConstraintTranslator ──

type stubTranslation struct {
	fact map[string]interface{}
	err  error
}

// stubTranslator replays a scripted sequence of translation outcomes and
// records every call. An empty script answers with a generic fact.
type stubTranslator struct {
	script []stubTranslation
	calls  int
	texts  []string
}

func (s *stubTranslator) TranslateConstraint(_ context.Context, _ llm.Endpoint, constraintText string, _ llm.TimetableContext) (map[string]interface{}, error) {
	s.calls++
	s.texts = append(s.texts, constraintText)
	if len(s.script) == 0 {
		return map[string]interface{}{
			"constraint_type": "general",
			"description":     constraintText,
		}, nil
	}
	next := s.script[0]
	s.script = s.script[1:]
	return next.fact, next.err
}

// ── Stub ConnectivityTester ──

type stubTester struct {
	err   error
	calls int
}

func (s *stubTester) TestConnectivity(_ context.Context, _ llm.Endpoint) error {
	s.calls++
	return s.err
}

// ── Mock LLMSettingsStore ──

type mockSettingsStore struct {
	endpoints map[string]redis.LLMEndpoint
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{endpoints: make(map[string]redis.LLMEndpoint)}
}

func (m *mockSettingsStore) GetLLMEndpoint(_ context.Context, userID string) (*redis.LLMEndpoint, error) {
	if ep, ok := m.endpoints[userID]; ok {
		return &ep, nil
	}
	return nil, nil
}

func (m *mockSettingsStore) SaveLLMEndpoint(_ context.Context, userID string, ep redis.LLMEndpoint) error {
	m.endpoints[userID] = ep
	return nil
}
