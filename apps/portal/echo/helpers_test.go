package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-portal/apps/portal/views"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
	"github.com/trezcool/masomo-portal/core/user"
	notifysvc "github.com/trezcool/masomo-portal/services/notify"
	"github.com/trezcool/masomo-portal/storage/inmem"
)

const testPassword = "Pa55word!"

type loggerMock struct {
	mu     sync.Mutex
	errors []string
}

func (l *loggerMock) Debug(string, ...interface{}) {}
func (l *loggerMock) Info(string, ...interface{})  {}
func (l *loggerMock) Warn(string, ...interface{})  {}
func (l *loggerMock) Error(msg string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
func (l *loggerMock) Fatal(string, ...interface{}) {}

type testEnv struct {
	server  *Server
	logger  *loggerMock
	metrics *Metrics
	store   portal.SessionStore
}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:  true,
		AppName:   "Masomo",
		SecretKey: "test-secret",
		Session:   core.SessionConfig{CookieName: "masomo_session", TTL: time.Hour},
	}
}

func setup(t *testing.T, confFns ...func(*core.Config)) testEnv {
	t.Helper()
	conf := testConfig()
	for _, fn := range confFns {
		fn(conf)
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.RegisterValidators(validate, translator)

	db := inmem.Open()
	usrSvc := user.NewService(inmem.NewUserRepository(db), validate, translator)
	hash, err := user.HashPassword(testPassword)
	require.NoError(t, err)
	require.NoError(t, usrSvc.SeedAccounts(context.Background(), []core.AccountConfig{
		{Name: "Jane", Username: "jane", Email: "jane@masomo.cd", PasswordHash: string(hash), Roles: []string{user.RoleAdminOwner}},
		{Name: "Tina", Username: "tina", PasswordHash: string(hash), Roles: []string{user.RoleTeacher}},
	}))

	logger := &loggerMock{}
	notifier := notifysvc.NewFlashNotifier(logger)
	var auth portal.Authenticator = usrSvc
	if conf.Portal.TrustedLogin {
		auth = portal.TrustedAuthenticator
	}
	svc := portal.NewService(
		views.DefaultRegistry(),
		portal.NewGate(auth, notifier),
		notifier,
		portal.Options{SkipAuth: conf.Portal.SkipAuth},
	)

	env := testEnv{
		logger:  logger,
		metrics: NewMetrics(),
		store:   inmem.NewSessionStore(db, conf.Session.TTL),
	}
	env.server = NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		Service:    svc,
		Store:      env.store,
		Toasts:     notifier,
		Metrics:    env.metrics,
		Validate:   validate,
		Translator: translator,
	})
	return env
}

type httpTest struct {
	name         string
	method       string
	path         string
	form         url.Values
	wantCode     int
	wantLocation string
	wantBody     []string
	wantNotBody  []string
}

func newRequest(method, path string, form url.Values) (*http.Request, *httptest.ResponseRecorder) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, httptest.NewRecorder()
}

// browser keeps the session cookie between requests.
type browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, handler http.Handler) *browser {
	return &browser{t: t, handler: handler, cookies: make(map[string]*http.Cookie)}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, form)
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	b.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) login(username string) {
	b.t.Helper()
	rec := b.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {testPassword}})
	require.Equal(b.t, http.StatusSeeOther, rec.Code, rec.Body.String())
}

func (b *browser) session() sessionResponse {
	b.t.Helper()
	rec := b.do(http.MethodGet, "/api/session", nil)
	require.Equal(b.t, http.StatusOK, rec.Code)
	var resp sessionResponse
	require.NoError(b.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func checkResponse(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, rec.Body.String())
	if tt.wantLocation != "" {
		assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
	}
	body := rec.Body.String()
	for _, s := range tt.wantBody {
		assert.Contains(t, body, s)
	}
	for _, s := range tt.wantNotBody {
		assert.NotContains(t, body, s)
	}
}
