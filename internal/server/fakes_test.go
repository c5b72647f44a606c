package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonathan/career-guide/internal/db"
	"github.com/jonathan/career-guide/internal/guidance"
	"github.com/jonathan/career-guide/internal/identity"
	"github.com/jonathan/career-guide/internal/logger"
	"github.com/jonathan/career-guide/internal/types"
)

// memStore is an in-memory Store.
type memStore struct {
	mu          sync.Mutex
	nextUser    int64
	nextAssess  int64
	users       map[string]*db.User
	assessments map[int64]*db.Assessment
	options     map[int64][]types.CareerOption
	pingErr     error
	saveErr     error
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]*db.User),
		assessments: make(map[int64]*db.Assessment),
		options:     make(map[int64][]types.CareerOption),
	}
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) UpsertUser(_ context.Context, uid, email string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[uid]; ok {
		u.Email = email
		cp := *u
		return &cp, nil
	}
	m.nextUser++
	now := time.Now().UTC()
	u := &db.User{ID: m.nextUser, UID: uid, Email: email, CreatedAt: now, UpdatedAt: now}
	m.users[uid] = u
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserBySubject(_ context.Context, uid string) (*db.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[uid]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) CreateAssessment(_ context.Context, userID int64, p *types.Profile) (*db.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAssess++
	a := &db.Assessment{ID: m.nextAssess, UserID: userID, Profile: *p, CreatedAt: time.Now().UTC()}
	m.assessments[a.ID] = a
	cp := *a
	return &cp, nil
}

func (m *memStore) GetAssessment(_ context.Context, id int64) (*db.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assessments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) ListAssessments(_ context.Context, userID int64) ([]db.Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []db.Assessment
	for id := m.nextAssess; id > 0; id-- {
		if a, ok := m.assessments[id]; ok && a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) update(id int64, fn func(a *db.Assessment)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	a, ok := m.assessments[id]
	if !ok {
		return db.ErrNotFound
	}
	fn(a)
	return nil
}

func (m *memStore) SaveGeneratedQuestions(_ context.Context, id int64, q []types.GeneratedQuestion) error {
	return m.update(id, func(a *db.Assessment) { a.AIQuestions = q })
}

func (m *memStore) SaveAIAnswers(_ context.Context, id int64, answers []types.AIAnswer) error {
	return m.update(id, func(a *db.Assessment) { a.AIAnswers = answers })
}

func (m *memStore) SaveFinalRecommendations(_ context.Context, id int64, set types.RecommendationSet) error {
	return m.update(id, func(a *db.Assessment) { a.FinalRecommendations = set })
}

func (m *memStore) ReplaceCareerOptions(_ context.Context, userID int64, options []types.CareerOption) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.options[userID] = append([]types.CareerOption(nil), options...)
	return nil
}

func (m *memStore) ListCareerOptions(_ context.Context, userID int64) ([]types.CareerOption, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.CareerOption(nil), m.options[userID]...), nil
}

// stubGenerator returns canned results and records what it was asked.
type stubGenerator struct {
	mu sync.Mutex

	questions    []types.GeneratedQuestion
	questionsErr error
	recs         types.RecommendationSet
	recsErr      error
	options      []types.CareerOption
	optionsErr   error

	followUpQA     []types.QuestionAnswer
	followUpCount  int
	answersQA      []types.QuestionAnswer
	roadmapTitle   string
	roadmapProfile types.Profile
	roadmapQA      []types.QuestionAnswer
}

func (g *stubGenerator) FollowUpQuestions(_ context.Context, previous []types.QuestionAnswer, count int) ([]types.GeneratedQuestion, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.followUpQA = previous
	g.followUpCount = count
	return g.questions, g.questionsErr
}

func (g *stubGenerator) CareerRecommendations(_ context.Context, answers []types.QuestionAnswer) (types.RecommendationSet, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.answersQA = answers
	return g.recs, g.recsErr
}

func (g *stubGenerator) CareerOptions(_ context.Context, _ []types.QuestionAnswer, ownerID int64) ([]types.CareerOption, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]types.CareerOption, len(g.options))
	for i, o := range g.options {
		o.UserID = ownerID
		out[i] = o
	}
	return out, g.optionsErr
}

func (g *stubGenerator) CareerRoadmap(_ context.Context, title string, profile types.Profile, supplemental []types.QuestionAnswer) types.Roadmap {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roadmapTitle = title
	g.roadmapProfile = profile
	g.roadmapQA = supplemental
	return guidance.FallbackRoadmap(title)
}

// tokenVerifier accepts the tokens in its map.
type tokenVerifier map[string]identity.Identity

func (v tokenVerifier) Verify(_ context.Context, token string) (identity.Identity, error) {
	id, ok := v[token]
	if !ok {
		return identity.Identity{}, identity.ErrUnauthorized
	}
	return id, nil
}

var errBoom = errors.New("boom")

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

type harness struct {
	store   *memStore
	gen     *stubGenerator
	handler http.Handler
}

func newHarness(t *testing.T, mutate ...func(*Config)) *harness {
	t.Helper()
	cfg := Config{Port: 0, RateLimitPerMin: 1000, QuestionCount: 5}
	for _, fn := range mutate {
		fn(&cfg)
	}
	store := newMemStore()
	gen := &stubGenerator{}
	verifier := tokenVerifier{
		aliceToken: {SubjectID: "uid-alice", Email: "alice@example.com"},
		bobToken:   {SubjectID: "uid-bob", Email: "bob@example.com"},
	}
	s := New(cfg, store, gen, verifier, logger.NewNop())
	return &harness{store: store, gen: gen, handler: s.Handler()}
}

func (h *harness) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}
