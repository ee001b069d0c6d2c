package testutil

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/EgehanKilicarslan/quicknote/internal/api"
	"github.com/EgehanKilicarslan/quicknote/internal/config"
	"github.com/EgehanKilicarslan/quicknote/internal/database/repository"
	"github.com/EgehanKilicarslan/quicknote/internal/database/service"
	"github.com/EgehanKilicarslan/quicknote/internal/handler"
	"github.com/EgehanKilicarslan/quicknote/internal/middleware"
)

// TestServer is the full application wired over an in-memory database
type TestServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	Config      *config.Config
	AuthService service.AuthService
	Server      *httptest.Server
}

// NewTestServer wires the application like main does, with database sessions.
// A nil limiter disables login throttling.
func NewTestServer(t *testing.T, cfg *config.Config, limiter middleware.LoginLimiter) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := DiscardLogger()
	db := SetupTestDB(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	if limiter == nil {
		limiter = middleware.NewNoOpLoginLimiter(logger)
	}

	authService := service.NewAuthService(repository.NewUserRepository(db), repository.NewSessionRepository(db), cfg, logger)
	noteService := service.NewNoteService(repository.NewNoteRepository(db), cfg, logger)

	r, err := api.SetupRouter(
		cfg,
		logger,
		handler.NewPageHandler(sqlDB, logger),
		handler.NewAuthHandler(authService, limiter, logger),
		handler.NewNoteHandler(noteService, logger),
		middleware.NewAuthMiddleware(authService, logger),
		api.NewObservability(),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &TestServer{
		Router:      r,
		DB:          db,
		Config:      cfg,
		AuthService: authService,
		Server:      srv,
	}
}

// Client returns a browser-like client with its own cookie jar that does not
// follow redirects
func (s *TestServer) Client(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// URL returns the absolute url of path on the test server
func (s *TestServer) URL(path string) string {
	return s.Server.URL + path
}

// PostForm submits an urlencoded form
func (s *TestServer) PostForm(t *testing.T, client *http.Client, path string, values url.Values) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, s.URL(path), strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// Get issues a GET request
func (s *TestServer) Get(t *testing.T, client *http.Client, path string) *http.Response {
	t.Helper()

	resp, err := client.Get(s.URL(path))
	require.NoError(t, err)
	return resp
}
