package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/masomo-portal/apps/portal/shell"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

type (
	// ToastDrainer hands over the pending toasts of a session.
	ToastDrainer interface {
		Drain(sessionID string) []portal.Toast
	}

	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Service    *portal.Service
		Store      portal.SessionStore
		Toasts     ToastDrainer // optional
		Metrics    *Metrics     // optional
		Validate   *validator.Validate
		Translator ut.Translator
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	if s.deps.Metrics != nil {
		s.app.GET("/metrics", echo.WrapHandler(s.deps.Metrics.Handler()))
	}

	sess := s.sessionMiddleware
	auth := s.requireAuth

	s.app.GET(shell.HomePath, s.home, sess)
	s.app.GET(shell.LoginPath, s.loginForm, sess)
	s.app.POST(shell.LoginPath, s.login, sess)
	s.app.POST(shell.LogoutPath, s.logout, sess)
	s.app.GET("/api/session", s.sessionInfo, sess)
	s.app.POST(shell.ThemePath, s.toggleTheme, sess)
	s.app.POST(shell.SidebarPath, s.toggleSidebar, sess)

	s.app.GET(shell.PagePrefix+":page", s.navigate, sess, auth)
	s.app.POST(shell.RolePath, s.switchRole, sess, auth)
}

// Start blocks serving HTTP. Startup errors are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
