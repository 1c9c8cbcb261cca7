package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academic-records-api/internal/middleware"
	"github.com/noah-isme/academic-records-api/internal/models"
	"github.com/noah-isme/academic-records-api/internal/repository"
)

// memStore is an in-memory repository.Store keyed by key(). When assign is
// set, Create hands out sequential ids; otherwise a reused key is a duplicate.
type memStore[T any, K comparable] struct {
	items  []T
	key    func(*T) K
	assign func(*T, int)
	nextID int
	calls  int
}

var (
	_ repository.Store[models.Grade, int]     = (*memStore[models.Grade, int])(nil)
	_ repository.Store[models.Module, string] = (*memStore[models.Module, string])(nil)
)

func (m *memStore[T, K]) Create(_ context.Context, item *T) error {
	m.calls++
	if m.assign != nil {
		m.nextID++
		m.assign(item, m.nextID)
	}
	for i := range m.items {
		if m.key(&m.items[i]) == m.key(item) {
			return repository.ErrDuplicateKey
		}
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *memStore[T, K]) FindByID(_ context.Context, id K) (*T, error) {
	m.calls++
	for i := range m.items {
		if m.key(&m.items[i]) == id {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memStore[T, K]) List(context.Context) ([]T, error) {
	m.calls++
	return append([]T(nil), m.items...), nil
}

func (m *memStore[T, K]) Update(_ context.Context, item *T) error {
	m.calls++
	for i := range m.items {
		if m.key(&m.items[i]) == m.key(item) {
			m.items[i] = *item
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore[T, K]) DeleteByID(_ context.Context, id K) error {
	m.calls++
	for i := range m.items {
		if m.key(&m.items[i]) == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memStore[T, K]) ExistsByID(ctx context.Context, id K) (bool, error) {
	_, err := m.FindByID(ctx, id)
	return err == nil, nil
}

func (m *memStore[T, K]) Count(context.Context) (int, error) {
	m.calls++
	return len(m.items), nil
}

type store struct {
	students      *memStore[models.Student, int]
	modules       *memStore[models.Module, string]
	registrations *memStore[models.Registration, int]
	grades        *memStore[models.Grade, int]
}

func (s *store) calls() int {
	return s.students.calls + s.modules.calls + s.registrations.calls + s.grades.calls
}

func (s *store) resetCalls() {
	s.students.calls, s.modules.calls, s.registrations.calls, s.grades.calls = 0, 0, 0, 0
}

var (
	ada     = models.Student{ID: 1001, FirstName: "Ada", LastName: "Lovelace", Username: "ada", Email: "ada@example.com"}
	alan    = models.Student{ID: 2, FirstName: "Alan", LastName: "Turing", Username: "alan", Email: "alan@example.com"}
	moduleA = models.Module{Code: "COMP0010", Name: "Software Engineering", MNC: true}
	moduleB = models.Module{Code: "COMP0011", Name: "Mathematics"}
)

func newStore() *store {
	s := &store{
		students: &memStore[models.Student, int]{key: func(st *models.Student) int { return st.ID }},
		modules:  &memStore[models.Module, string]{key: func(m *models.Module) string { return m.Code }},
		registrations: &memStore[models.Registration, int]{
			key:    func(r *models.Registration) int { return r.ID },
			assign: func(r *models.Registration, id int) { r.ID = id },
		},
		grades: &memStore[models.Grade, int]{
			key:    func(g *models.Grade) int { return g.ID },
			assign: func(g *models.Grade, id int) { g.ID = id },
		},
	}
	ctx := context.Background()
	for _, st := range []models.Student{ada, alan} {
		st := st
		_ = s.students.Create(ctx, &st)
	}
	for _, m := range []models.Module{moduleA, moduleB} {
		m := m
		_ = s.modules.Create(ctx, &m)
	}
	for _, r := range []models.Registration{
		{StudentID: ada.ID, ModuleCode: moduleA.Code},
		{StudentID: ada.ID, ModuleCode: moduleB.Code},
		{StudentID: alan.ID, ModuleCode: moduleA.Code},
	} {
		r := r
		_ = s.registrations.Create(ctx, &r)
	}
	for _, g := range []models.Grade{
		{StudentID: ada.ID, ModuleCode: moduleA.Code, Score: 80, Student: &ada, Module: &moduleA},
		{StudentID: ada.ID, ModuleCode: moduleB.Code, Score: 90, Student: &ada, Module: &moduleB},
		{StudentID: alan.ID, ModuleCode: moduleA.Code, Score: 75, Student: &alan, Module: &moduleA},
	} {
		g := g
		_ = s.grades.Create(ctx, &g)
	}
	s.resetCalls()
	return s
}

func newRouter(h Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

func perform(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}
