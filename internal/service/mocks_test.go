package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/noah-isme/academic-records-api/internal/models"
	appErrors "github.com/noah-isme/academic-records-api/pkg/errors"
)

var errStoreDown = errors.New("connection refused")

type mockStudentRepo struct {
	items   map[int]models.Student
	findErr error
	calls   int
}

func newMockStudentRepo(students ...models.Student) *mockStudentRepo {
	m := &mockStudentRepo{items: map[int]models.Student{}}
	for _, s := range students {
		m.items[s.ID] = s
	}
	return m
}

func (m *mockStudentRepo) Create(_ context.Context, s *models.Student) error {
	m.items[s.ID] = *s
	return nil
}

func (m *mockStudentRepo) FindByID(_ context.Context, id int) (*models.Student, error) {
	m.calls++
	if m.findErr != nil {
		return nil, m.findErr
	}
	s, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (m *mockStudentRepo) List(context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.items))
	for _, s := range m.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStudentRepo) Update(_ context.Context, s *models.Student) error {
	if _, ok := m.items[s.ID]; !ok {
		return sql.ErrNoRows
	}
	m.items[s.ID] = *s
	return nil
}

func (m *mockStudentRepo) DeleteByID(_ context.Context, id int) error {
	delete(m.items, id)
	return nil
}

func (m *mockStudentRepo) ExistsByID(_ context.Context, id int) (bool, error) {
	_, ok := m.items[id]
	return ok, nil
}

func (m *mockStudentRepo) Count(context.Context) (int, error) { return len(m.items), nil }

type mockModuleRepo struct {
	items map[string]models.Module
}

func newMockModuleRepo(modules ...models.Module) *mockModuleRepo {
	m := &mockModuleRepo{items: map[string]models.Module{}}
	for _, mod := range modules {
		m.items[mod.Code] = mod
	}
	return m
}

func (m *mockModuleRepo) Create(_ context.Context, mod *models.Module) error {
	m.items[mod.Code] = *mod
	return nil
}

func (m *mockModuleRepo) FindByID(_ context.Context, code string) (*models.Module, error) {
	mod, ok := m.items[code]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &mod, nil
}

func (m *mockModuleRepo) List(context.Context) ([]models.Module, error) {
	out := make([]models.Module, 0, len(m.items))
	for _, mod := range m.items {
		out = append(out, mod)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *mockModuleRepo) Update(_ context.Context, mod *models.Module) error {
	if _, ok := m.items[mod.Code]; !ok {
		return sql.ErrNoRows
	}
	m.items[mod.Code] = *mod
	return nil
}

func (m *mockModuleRepo) DeleteByID(_ context.Context, code string) error {
	delete(m.items, code)
	return nil
}

func (m *mockModuleRepo) ExistsByID(_ context.Context, code string) (bool, error) {
	_, ok := m.items[code]
	return ok, nil
}

func (m *mockModuleRepo) Count(context.Context) (int, error) { return len(m.items), nil }

type mockRegistrationRepo struct {
	items   []models.Registration
	nextID  int
	listErr error
}

func (m *mockRegistrationRepo) register(studentID int, code string) {
	m.nextID++
	m.items = append(m.items, models.Registration{ID: m.nextID, StudentID: studentID, ModuleCode: code})
}

func (m *mockRegistrationRepo) Create(_ context.Context, reg *models.Registration) error {
	m.nextID++
	reg.ID = m.nextID
	m.items = append(m.items, *reg)
	return nil
}

func (m *mockRegistrationRepo) FindByID(_ context.Context, id int) (*models.Registration, error) {
	for _, reg := range m.items {
		if reg.ID == id {
			r := reg
			return &r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRegistrationRepo) List(context.Context) ([]models.Registration, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Registration(nil), m.items...), nil
}

func (m *mockRegistrationRepo) Update(_ context.Context, reg *models.Registration) error {
	for i := range m.items {
		if m.items[i].ID == reg.ID {
			m.items[i] = *reg
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockRegistrationRepo) DeleteByID(_ context.Context, id int) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockRegistrationRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

func (m *mockRegistrationRepo) Count(context.Context) (int, error) { return len(m.items), nil }

type mockGradeRepo struct {
	items     []models.Grade
	nextID    int
	listErr   error
	createErr error
	listCalls int
	creates   int
}

func (m *mockGradeRepo) Create(_ context.Context, g *models.Grade) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.creates++
	m.nextID++
	g.ID = m.nextID
	m.items = append(m.items, *g)
	return nil
}

func (m *mockGradeRepo) FindByID(_ context.Context, id int) (*models.Grade, error) {
	for _, g := range m.items {
		if g.ID == id {
			out := g
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockGradeRepo) List(context.Context) ([]models.Grade, error) {
	m.listCalls++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]models.Grade(nil), m.items...), nil
}

func (m *mockGradeRepo) Update(_ context.Context, g *models.Grade) error {
	for i := range m.items {
		if m.items[i].ID == g.ID {
			m.items[i] = *g
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockGradeRepo) DeleteByID(_ context.Context, id int) error {
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockGradeRepo) ExistsByID(ctx context.Context, id int) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

func (m *mockGradeRepo) Count(context.Context) (int, error) { return len(m.items), nil }

// seed stores a grade with its references attached, as the SQL repository returns them.
func (m *mockGradeRepo) seed(student models.Student, module models.Module, score int) {
	s, mod := student, module
	m.nextID++
	m.items = append(m.items, models.Grade{ID: m.nextID, Score: score, StudentID: s.ID, ModuleCode: mod.Code, Student: &s, Module: &mod})
}

type stubCacheRepo struct {
	store     map[string][]byte
	deleted   []string
	deleteErr error
}

func newStubCacheRepo() *stubCacheRepo {
	return &stubCacheRepo{store: map[string][]byte{}}
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.deleted = append(s.deleted, pattern)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range s.store {
		if strings.HasPrefix(key, prefix) {
			delete(s.store, key)
		}
	}
	return nil
}
