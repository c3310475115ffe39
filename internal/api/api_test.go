package api_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muhammadolammi/icanmatch/internal/advisor"
	"github.com/muhammadolammi/icanmatch/internal/api"
	"github.com/muhammadolammi/icanmatch/internal/cart"
	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/notify"
	"github.com/muhammadolammi/icanmatch/internal/recommend"
	"github.com/muhammadolammi/icanmatch/internal/swipe"
)

// soonScheduler runs callbacks on their own goroutine without waiting.
type soonScheduler struct{}

type noopTimer struct{}

func (noopTimer) Stop() bool { return false }

func (soonScheduler) AfterFunc(_ time.Duration, f func()) swipe.Timer {
	go f()
	return noopTimer{}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *api.Error      `json:"error"`
}

type server struct {
	t     *testing.T
	h     http.Handler
	carts *cart.Registry
}

func newServer(t *testing.T) *server {
	t.Helper()
	c := catalog.Default()
	carts := cart.NewRegistry(c.Certifications)
	sessions := swipe.NewRegistry(swipe.Deps{
		Source:   recommend.NewSource(nil, recommend.WithMockDelay(0)),
		Catalog:  c,
		Notifier: notify.LogNotifier{},
	}, swipe.WithSessionScheduler(soonScheduler{}))

	h := api.NewHandler(api.Deps{
		Catalog:     c,
		Sessions:    sessions,
		Carts:       carts,
		Coach:       advisor.NewCoach(nil, nil, advisor.WithMockDelay(0)),
		Matcher:     advisor.NewMatcher(nil, advisor.WithMockDelay(0)),
		WaitTimeout: 2 * time.Second,
	})
	return &server{t: t, h: api.NewRouter(h, api.RouterConfig{CORSOrigins: []string{"*"}}), carts: carts}
}

func (s *server) do(method, path, userID string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set(api.UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)

	var env envelope
	if rec.Code != http.StatusNoContent && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

type screenCard struct {
	Key    string `json:"key"`
	ZIndex int    `json:"zIndex"`
	Active bool   `json:"active"`
}

type sessionData struct {
	SessionID string `json:"sessionId"`
	Screen    struct {
		View     string       `json:"view"`
		Cards    []screenCard `json:"cards"`
		CanReset bool         `json:"canReset"`
	} `json:"screen"`
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v
}

func (s *server) openSession(userID string) sessionData {
	s.t.Helper()
	rec, env := s.do(http.MethodPost, "/api/v1/matchmaking/sessions", userID, nil)
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[sessionData](s.t, env)

	rec, env = s.do(http.MethodGet, "/api/v1/matchmaking/sessions/"+created.SessionID+"?wait=true", userID, nil)
	require.Equal(s.t, http.StatusOK, rec.Code)
	return decode[sessionData](s.t, env)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)
	rec, env := s.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCatalog(t *testing.T) {
	s := newServer(t)
	rec, env := s.do(http.MethodGet, "/api/v1/catalog/jobs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode[jobPage](t, env)
	assert.Len(t, first.Jobs, 4)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, 5, first.Total)
	assert.Equal(t, 2, first.TotalPages)

	_, env = s.do(http.MethodGet, "/api/v1/catalog/jobs?page=2", "", nil)
	second := decode[jobPage](t, env)
	require.Len(t, second.Jobs, 1)
	assert.Equal(t, "Data Scientist", second.Jobs[0].Title)

	_, env = s.do(http.MethodGet, "/api/v1/catalog/certifications", "", nil)
	assert.Len(t, decode[[]catalog.Certification](t, env), 4)
}

type jobPage struct {
	Jobs       []catalog.Job `json:"jobs"`
	Page       int           `json:"page"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

func TestCatalog_JobFilters(t *testing.T) {
	s := newServer(t)

	_, env := s.do(http.MethodGet, "/api/v1/catalog/jobs?q=bank&minSalary=15000000", "", nil)
	got := decode[jobPage](t, env)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, "Bank Central Asia (BCA)", got.Jobs[0].CompanyName)
	assert.Equal(t, 1, got.TotalPages)

	_, env = s.do(http.MethodGet, "/api/v1/catalog/jobs?minSalary=30000000", "", nil)
	got = decode[jobPage](t, env)
	assert.Empty(t, got.Jobs)
	assert.Zero(t, got.Total)

	for _, q := range []string{"page=0", "page=x", "minSalary=-1", "minSalary=lots"} {
		rec, _ := s.do(http.MethodGet, "/api/v1/catalog/jobs?"+q, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestIdentity(t *testing.T) {
	s := newServer(t)
	for _, id := range []string{"", "abc", "99"} {
		rec, env := s.do(http.MethodGet, "/api/v1/cart", id, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "id %q", id)
		require.NotNil(t, env.Error)
		assert.Equal(t, api.ErrCodeUnauthorized, env.Error.Code)
	}
}

func TestMatchmaking_RoleGate(t *testing.T) {
	s := newServer(t)
	rec, env := s.do(http.MethodPost, "/api/v1/matchmaking/sessions", "2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, api.ErrCodeForbidden, env.Error.Code)
}

func TestMatchmaking_SwipeThroughStack(t *testing.T) {
	s := newServer(t)
	sess := s.openSession("1")

	require.Equal(t, "stack", sess.Screen.View)
	require.Len(t, sess.Screen.Cards, 4)
	top := sess.Screen.Cards[3]
	assert.Equal(t, "job-5", top.Key)
	assert.True(t, top.Active)
	assert.Equal(t, 3, top.ZIndex)

	base := "/api/v1/matchmaking/sessions/" + sess.SessionID

	rec, env := s.do(http.MethodPost, base+"/decisions", "1", map[string]any{"type": "certification", "id": 2, "direction": "right"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, api.ErrCodeConflict, env.Error.Code)

	rec, env = s.do(http.MethodPost, base+"/decisions", "1", map[string]any{"type": "job", "id": 5, "direction": "up"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, api.ErrCodeValidationFailed, env.Error.Code)

	rec, env = s.do(http.MethodPost, base+"/decisions", "1", map[string]any{"type": "job", "id": 5, "direction": "right"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[sessionData](t, env).Screen.Cards, 3)

	rec, _ = s.do(http.MethodPost, base+"/decisions", "1", map[string]any{"type": "certification", "id": 2, "direction": "right"})
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = s.do(http.MethodGet, "/api/v1/cart", "1", nil)
	var c struct {
		Items []cart.Item `json:"items"`
		Total int64       `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &c))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].ID)
	assert.Equal(t, int64(1500000), c.Total)

	for _, d := range []map[string]any{
		{"type": "job", "id": 2, "direction": "left"},
		{"type": "certification", "id": 4, "direction": "left"},
	} {
		rec, env = s.do(http.MethodPost, base+"/decisions", "1", d)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	done := decode[sessionData](t, env)
	assert.Equal(t, "empty", done.Screen.View)
	assert.True(t, done.Screen.CanReset)

	rec, _ = s.do(http.MethodPost, base+"/reset", "1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, env = s.do(http.MethodGet, base+"?wait=true", "1", nil)
	assert.Equal(t, "stack", decode[sessionData](t, env).Screen.View)
}

func TestMatchmaking_Drag(t *testing.T) {
	s := newServer(t)
	sess := s.openSession("4")
	base := "/api/v1/matchmaking/sessions/" + sess.SessionID

	rec, env := s.do(http.MethodPost, base+"/drag", "4", map[string]any{"startX": 100, "endX": 150, "viewportWidth": 400})
	require.Equal(t, http.StatusOK, rec.Code)
	var short struct {
		Item    string        `json:"item"`
		Release swipe.Release `json:"release"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &short))
	assert.Equal(t, "job-5", short.Item)
	assert.False(t, short.Release.Committed)

	require.Eventually(t, func() bool {
		rec, env = s.do(http.MethodPost, base+"/drag", "4", map[string]any{"startX": 100, "endX": 300, "viewportWidth": 400})
		var res struct {
			Release swipe.Release `json:"release"`
		}
		return rec.Code == http.StatusOK && json.Unmarshal(env.Data, &res) == nil && res.Release.Committed
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		_, env := s.do(http.MethodGet, base, "4", nil)
		return len(decode[sessionData](t, env).Screen.Cards) == 3
	}, 2*time.Second, 10*time.Millisecond)
}

func TestMatchmaking_DragAfterResetSameTop(t *testing.T) {
	s := newServer(t)
	sess := s.openSession("4")
	base := "/api/v1/matchmaking/sessions/" + sess.SessionID
	commit := map[string]any{"startX": 0, "endX": 200, "viewportWidth": 400}

	drag := func() swipe.Release {
		rec, env := s.do(http.MethodPost, base+"/drag", "4", commit)
		require.Equal(t, http.StatusOK, rec.Code)
		var res struct {
			Item    string        `json:"item"`
			Release swipe.Release `json:"release"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, "job-5", res.Item)
		return res.Release
	}
	cardsLeft := func(n int) {
		require.Eventually(t, func() bool {
			_, env := s.do(http.MethodGet, base, "4", nil)
			return len(decode[sessionData](t, env).Screen.Cards) == n
		}, 2*time.Second, 10*time.Millisecond)
	}

	assert.True(t, drag().Committed)
	cardsLeft(3)

	rec, _ := s.do(http.MethodPost, base+"/reset", "4", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	_, env := s.do(http.MethodGet, base+"?wait=true", "4", nil)
	require.Len(t, decode[sessionData](t, env).Screen.Cards, 4)

	assert.True(t, drag().Committed, "fallback batch puts job-5 on top again")
	cardsLeft(3)
}

func TestMatchmaking_SessionsArePrivate(t *testing.T) {
	s := newServer(t)
	sess := s.openSession("1")
	base := "/api/v1/matchmaking/sessions/" + sess.SessionID

	rec, _ := s.do(http.MethodGet, base, "4", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodDelete, base, "1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = s.do(http.MethodGet, base, "1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCart(t *testing.T) {
	s := newServer(t)

	rec, _ := s.do(http.MethodPost, "/api/v1/cart/items", "5", map[string]any{"certificationId": 99})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/cart/items", "5", map[string]any{"certificationId": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	for range 2 {
		rec, _ = s.do(http.MethodPost, "/api/v1/cart/items", "5", map[string]any{"certificationId": 3})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	items := s.carts.For(5).Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	rec, _ = s.do(http.MethodPatch, "/api/v1/cart/items/3", "5", map[string]any{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5*2500000), s.carts.For(5).Total())

	rec, _ = s.do(http.MethodPatch, "/api/v1/cart/items/3", "5", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPatch, "/api/v1/cart/items/3", "5", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.carts.For(5).Items())

	rec, _ = s.do(http.MethodDelete, "/api/v1/cart/items/3", "5", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(http.MethodDelete, "/api/v1/cart/items/abc", "5", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	s.do(http.MethodPost, "/api/v1/cart/items", "5", map[string]any{"certificationId": 1})
	rec, _ = s.do(http.MethodDelete, "/api/v1/cart", "5", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.carts.For(5).Items())
}

func TestCareerAdvice(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/career/advice", "1", map[string]any{"message": "Where do I start?"})
	require.Equal(t, http.StatusOK, rec.Code)
	reply := decode[struct {
		Reply string `json:"reply"`
	}](t, env).Reply
	assert.Contains(t, reply, "Hello Brian!")

	rec, _ = s.do(http.MethodPost, "/api/v1/career/advice", "1", map[string]any{"message": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/career/advice", "1", map[string]any{"message": "hi", "extra": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/career/advice", "3", map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTalentMatches(t *testing.T) {
	s := newServer(t)

	rec, env := s.do(http.MethodPost, "/api/v1/talent/matches", "3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), "Tech Innovations Inc.")

	rec, _ = s.do(http.MethodPost, "/api/v1/talent/matches", "2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodPost, "/api/v1/talent/matches", "1", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
