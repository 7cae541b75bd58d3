package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

func TestUnauthenticated(t *testing.T) {
	env := setup(t)
	tests := []httpTest{
		{
			name:        "home renders login",
			method:      http.MethodGet,
			path:        "/",
			wantCode:    http.StatusOK,
			wantBody:    []string{`name="username"`, `name="password"`},
			wantNotBody: []string{"<aside"},
		},
		{
			name:     "login form",
			method:   http.MethodGet,
			path:     "/login",
			wantCode: http.StatusOK,
			wantBody: []string{`action="/login"`},
		},
		{
			name:         "page redirects home",
			method:       http.MethodGet,
			path:         "/p/fees",
			wantCode:     http.StatusSeeOther,
			wantLocation: "/",
		},
		{
			name:     "role switch needs a session",
			method:   http.MethodPost,
			path:     "/role",
			form:     url.Values{"role": {"teacher"}},
			wantCode: http.StatusUnauthorized,
			wantBody: []string{`{"error":"session not authenticated"}`},
		},
		{
			name:     "session info",
			method:   http.MethodGet,
			path:     "/api/session",
			wantCode: http.StatusOK,
			wantBody: []string{`"authenticated":false`, `"role":"admin"`, `"active_page":"dashboard"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.form)
			env.server.ServeHTTP(rec, req)
			checkResponse(t, tt, rec)
		})
	}
}

func TestLogin(t *testing.T) {
	env := setup(t)
	tests := []httpTest{
		{
			name:     "missing fields",
			form:     url.Values{},
			wantCode: http.StatusBadRequest,
			wantBody: []string{`<span class="field-error">this field is required</span>`},
		},
		{
			name:     "wrong password",
			form:     url.Values{"username": {"jane"}, "password": {"nope"}},
			wantCode: http.StatusUnauthorized,
			wantBody: []string{"invalid username or password", `value="jane"`, `<div class="toast error" role="status">Login failed</div>`},
		},
		{
			name:     "unknown user",
			form:     url.Values{"username": {"bob"}, "password": {testPassword}},
			wantCode: http.StatusUnauthorized,
			wantBody: []string{"invalid username or password"},
		},
		{
			name:         "success",
			form:         url.Values{"username": {" Jane@masomo.cd "}, "password": {testPassword}},
			wantCode:     http.StatusSeeOther,
			wantLocation: "/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/login", tt.form)
			env.server.ServeHTTP(rec, req)
			checkResponse(t, tt, rec)
		})
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.logins.WithLabelValues("failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.logins.WithLabelValues("success")))
}

func TestLogin_Session(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)

	b.login("jane")

	require.Contains(t, b.cookies, "masomo_session")
	assert.True(t, b.cookies["masomo_session"].HttpOnly)

	rec := b.do(http.MethodGet, "/", nil)
	checkResponse(t, httpTest{
		wantCode: http.StatusOK,
		wantBody: []string{
			`id="page-dashboard" data-page-key="dashboard" data-view="dashboard"`,
			"Admin Dashboard",
			"Welcome back, Admin User",
		},
	}, rec)

	// toasts are shown once
	rec = b.do(http.MethodGet, "/", nil)
	assert.NotContains(t, rec.Body.String(), "Welcome back")

	// already logged in
	rec = b.do(http.MethodGet, "/login", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	sess := b.session()
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "admin", sess.Role)
	assert.Equal(t, "admin@masomo.cd", sess.User.Email)
	assert.Len(t, sess.Nav, 11)
	assert.True(t, sess.Nav[0].Active)
}

func TestTeacherToStudentScenario(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("tina")

	rec := b.do(http.MethodGet, "/p/gradebook", nil)
	checkResponse(t, httpTest{
		wantCode: http.StatusOK,
		wantBody: []string{`id="page-gradebook" data-page-key="gradebook" data-view="gradebook"`, "Marks per class"},
	}, rec)
	assert.Equal(t, "gradebook", b.session().Page)

	rec = b.do(http.MethodPost, "/role", url.Values{"role": {"student"}})
	checkResponse(t, httpTest{wantCode: http.StatusSeeOther, wantLocation: "/"}, rec)

	rec = b.do(http.MethodGet, "/", nil)
	checkResponse(t, httpTest{
		wantCode: http.StatusOK,
		wantBody: []string{
			`id="page-dashboard" data-page-key="dashboard" data-view="dashboard"`,
			"Student Dashboard",
			"Switched to Student portal",
		},
	}, rec)

	sess := b.session()
	assert.Equal(t, "student", sess.Role)
	assert.Equal(t, "dashboard", sess.ActivePage)
}

func TestNavigate_Fallback(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("tina")

	rec := b.do(http.MethodGet, "/p/fees", nil)

	checkResponse(t, httpTest{
		wantCode: http.StatusOK,
		wantBody: []string{`id="page-fees" data-page-key="fees" data-view="dashboard"`, "Teacher Dashboard"},
	}, rec)
	sess := b.session()
	assert.Equal(t, "fees", sess.ActivePage)
	assert.Equal(t, "dashboard", sess.Page)
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.fallbacks.WithLabelValues("teacher")))
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.resolutions.WithLabelValues("teacher", "dashboard")))
}

func TestSwitchRole_Invalid(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("jane")

	rec := b.do(http.MethodPost, "/role", url.Values{"role": {"janitor"}})

	checkResponse(t, httpTest{wantCode: http.StatusBadRequest, wantBody: []string{`{"error":"invalid role"}`}}, rec)
	assert.Equal(t, "admin", b.session().Role)
}

func TestToggleTheme(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("jane")

	for i, want := range []string{"dark", "light", "dark"} {
		rec := b.do(http.MethodPost, "/theme", url.Values{})
		require.Equal(t, http.StatusSeeOther, rec.Code)

		body := b.do(http.MethodGet, "/", nil).Body.String()
		assert.Contains(t, body, `data-theme="`+want+`"`, "toggle %d", i+1)
		assert.Equal(t, want == "dark", strings.Contains(body, `class="dark"`), "toggle %d", i+1)
	}
}

func TestToggleSidebar(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("jane")

	for n := 1; n <= 4; n++ {
		rec := b.do(http.MethodPost, "/sidebar", url.Values{})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, n%2 == 1, b.session().SidebarCollapsed, "%d toggles", n)
	}
}

func TestLogout(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("tina")
	b.do(http.MethodPost, "/theme", url.Values{})
	b.do(http.MethodGet, "/p/gradebook", nil)

	rec := b.do(http.MethodPost, "/logout", url.Values{})
	checkResponse(t, httpTest{wantCode: http.StatusSeeOther, wantLocation: "/"}, rec)

	rec = b.do(http.MethodGet, "/", nil)
	checkResponse(t, httpTest{
		wantCode:    http.StatusOK,
		wantBody:    []string{`name="password"`, "Logged out", `class="dark"`},
		wantNotBody: []string{"<aside"},
	}, rec)

	sess := b.session()
	assert.False(t, sess.Authenticated)
	assert.Equal(t, "dashboard", sess.ActivePage)
	assert.Equal(t, "teacher", sess.Role)
	assert.Equal(t, "dark", sess.Theme)

	rec = b.do(http.MethodGet, "/p/gradebook", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestLogout_Anonymous(t *testing.T) {
	env := setup(t)

	for i := 0; i < 3; i++ {
		req, rec := newRequest(http.MethodPost, "/logout", url.Values{})
		env.server.ServeHTTP(rec, req)

		checkResponse(t, httpTest{wantCode: http.StatusSeeOther, wantLocation: "/"}, rec)
		assert.Empty(t, rec.Result().Cookies(), "no session is stored")
	}
}

func TestToggleTheme_LoginPage(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)

	rec := b.do(http.MethodPost, "/theme", url.Values{})
	checkResponse(t, httpTest{wantCode: http.StatusSeeOther, wantLocation: "/"}, rec)

	rec = b.do(http.MethodGet, "/", nil)
	checkResponse(t, httpTest{
		wantCode:    http.StatusOK,
		wantBody:    []string{`name="password"`, `data-theme="dark"`, "Light mode"},
		wantNotBody: []string{"<aside"},
	}, rec)

	rec = b.do(http.MethodPost, "/sidebar", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	// the theme picked on the login page survives the login
	b.login("jane")
	sess := b.session()
	assert.True(t, sess.Authenticated)
	assert.Equal(t, "dark", sess.Theme)
	assert.True(t, sess.SidebarCollapsed)
}

func TestSkipAuth(t *testing.T) {
	env := setup(t, func(conf *core.Config) { conf.Portal.SkipAuth = true })
	b := newBrowser(t, env.server)

	rec := b.do(http.MethodGet, "/", nil)

	checkResponse(t, httpTest{wantCode: http.StatusOK, wantBody: []string{"Admin Dashboard", `data-page-key="dashboard"`}}, rec)
	rec = b.do(http.MethodGet, "/p/students", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTrustedLogin(t *testing.T) {
	env := setup(t, func(conf *core.Config) { conf.Portal.TrustedLogin = true })

	t.Run("role picker", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/", nil)
		env.server.ServeHTTP(rec, req)
		checkResponse(t, httpTest{wantCode: http.StatusOK, wantBody: []string{`name="role"`}, wantNotBody: []string{`name="password"`}}, rec)
	})

	t.Run("invalid role", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/login", url.Values{"role": {"janitor"}})
		env.server.ServeHTTP(rec, req)
		checkResponse(t, httpTest{wantCode: http.StatusBadRequest, wantBody: []string{"field-error"}}, rec)
	})

	t.Run("granted", func(t *testing.T) {
		b := newBrowser(t, env.server)
		rec := b.do(http.MethodPost, "/login", url.Values{"role": {"Student"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "student", b.session().Role)
	})
}

func TestSessionCookie_Tampered(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("jane")

	cookie := *b.cookies["masomo_session"]
	cookie.Value += "x"
	b.cookies["masomo_session"] = &cookie

	assert.False(t, b.session().Authenticated)
}

func TestSessionCookie_StoreExpired(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("jane")

	sessID, err := env.server.parseToken(b.cookies["masomo_session"].Value)
	require.NoError(t, err)
	require.NoError(t, env.store.Delete(context.Background(), sessID))

	assert.False(t, b.session().Authenticated)
}

func TestSessionToken(t *testing.T) {
	env := setup(t)
	s := env.server

	token, err := s.signToken("s1")
	require.NoError(t, err)
	id, err := s.parseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "s1", id)

	other := setup(t, func(conf *core.Config) { conf.SecretKey = "other-secret" })
	_, err = other.server.parseToken(token)
	assert.Error(t, err)

	renamed := setup(t, func(conf *core.Config) { conf.AppName = "Other" })
	_, err = renamed.server.parseToken(token)
	assert.Equal(t, errInvalidToken, err)

	nowFunc = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := s.signToken("s1")
	nowFunc = time.Now
	require.NoError(t, err)
	_, err = s.parseToken(expired)
	assert.Error(t, err)
}

type failingStore struct {
	portal.SessionStore
}

func (failingStore) Save(context.Context, portal.Session) error {
	return errors.New("store unavailable")
}

func TestStoreFailure(t *testing.T) {
	env := setup(t)
	env.server.deps.Store = failingStore{env.store}

	req, rec := newRequest(http.MethodPost, "/login", url.Values{"username": {"jane"}, "password": {testPassword}})
	env.server.ServeHTTP(rec, req)

	checkResponse(t, httpTest{wantCode: http.StatusInternalServerError, wantBody: []string{`{"error":"Internal Server Error"}`}}, rec)
	assert.Equal(t, []string{"Internal Server Error"}, env.logger.errors)
}

func TestShutdownError(t *testing.T) {
	env := setup(t)
	env.server.deps.Store = shutdownStore{env.store}

	req, rec := newRequest(http.MethodPost, "/login", url.Values{"username": {"jane"}, "password": {testPassword}})
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	select {
	case <-env.server.ShutdownSignal():
	case <-time.After(time.Second):
		t.Fatal("no shutdown signal")
	}
}

type shutdownStore struct {
	portal.SessionStore
}

func (shutdownStore) Save(context.Context, portal.Session) error {
	return core.NewShutdownError("integrity issue")
}

func TestMetricsEndpoint(t *testing.T) {
	env := setup(t)
	b := newBrowser(t, env.server)
	b.login("jane")
	b.do(http.MethodGet, "/p/nope", nil)

	rec := b.do(http.MethodGet, "/metrics", nil)

	checkResponse(t, httpTest{
		wantCode: http.StatusOK,
		wantBody: []string{
			`masomo_portal_logins_total{result="success"} 1`,
			`masomo_portal_page_fallbacks_total{role="admin"} 1`,
		},
	}, rec)
}
