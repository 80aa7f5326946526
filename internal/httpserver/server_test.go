package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/roadmap/internal/models"
	"github.com/Skotchmaster/roadmap/internal/repo"
	"github.com/Skotchmaster/roadmap/internal/repo/repotest"
	"github.com/Skotchmaster/roadmap/internal/service"
)

type stubLLM struct {
	reply string
	err   error
}

func (s stubLLM) Generate(context.Context, string, string) (string, error) {
	return s.reply, s.err
}

type stubSearcher struct {
	total int64
	items []models.Roadmap
	from  int
	size  int
}

func (s *stubSearcher) Search(_ context.Context, _ string, from, size int) (int64, []models.Roadmap, error) {
	s.from, s.size = from, size
	return s.total, s.items, nil
}

type testServer struct {
	e    *echo.Echo
	db   *gorm.DB
	deps *Deps
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := repotest.NewDB(t)
	users := &repo.UserRepo{DB: db}
	deps := &Deps{
		Auth: &AuthHTTP{Svc: &service.AuthService{Users: users}},
		Roadmaps: &RoadmapHTTP{Svc: &service.RoadmapService{
			Roadmaps: &repo.RoadmapRepo{DB: db},
			Topics:   &repo.TopicRepo{DB: db},
			Users:    users,
		}},
		Chat:   &ChatHTTP{Svc: &service.ChatService{LLM: stubLLM{reply: `{"Title":"Go"}`}}},
		Health: &HealthHTTP{DB: db},
		Search: &SearchHTTP{Index: &stubSearcher{}},
	}

	e := echo.New()
	Register(e, deps)
	return &testServer{e: e, db: db, deps: deps}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, vals url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(vals.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) register(t *testing.T, email, password string) {
	t.Helper()
	rec := s.do(formRequest(http.MethodPost, "/users", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"email":      {email},
		"password":   {password},
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (s *testServer) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	rec := s.do(formRequest(http.MethodPost, "/sessions", url.Values{"email": {email}, "password": {password}}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func (s *testServer) userID(t *testing.T, email string) string {
	t.Helper()
	u, err := (&repo.UserRepo{DB: s.db}).FindByEmail(context.Background(), email)
	require.NoError(t, err)
	return u.ID
}

func TestRoot(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Hello, this is working", decode(t, rec)["message"])
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	require.Equal(t, http.StatusOK, s.do(httptest.NewRequest(http.MethodGet, "/health/live", nil)).Code)
	require.Equal(t, http.StatusOK, s.do(httptest.NewRequest(http.MethodGet, "/health/ready", nil)).Code)
}

func TestUnknownRoute_JSONError(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not Found", decode(t, rec)["Error"])
}

func TestHTTPErrorHandler_GenericError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	HTTPErrorHandler(context.DeadlineExceeded, c)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "Internal Server Error", decode(t, rec)["Error"])
}
