package echoapi

import (
	"bytes"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	g "maragu.dev/gomponents"

	"github.com/trezcool/masomo-portal/apps/portal/shell"
	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/portal"
)

var errInvalidRole = echo.NewHTTPError(http.StatusBadRequest, "invalid role")

func renderNode(ctx echo.Context, code int, node g.Node) error {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		return errors.Wrap(err, "rendering")
	}
	return ctx.HTMLBlob(code, buf.Bytes())
}

func (s *Server) toasts(sess portal.Session) []portal.Toast {
	if s.deps.Toasts == nil {
		return nil
	}
	return s.deps.Toasts.Drain(sess.ID)
}

func (s *Server) renderShell(ctx echo.Context, sess portal.Session) error {
	svc := s.deps.Service
	page := svc.Resolve(sess)
	s.deps.Metrics.observeResolve(sess, page)

	return renderNode(ctx, http.StatusOK, shell.Shell(shell.Props{
		AppName: s.deps.Conf.AppName,
		Session: sess,
		Nav:     svc.Registry().Pages(sess.Role),
		Page:    page,
		Toasts:  s.toasts(sess),
	}))
}

func (s *Server) renderLogin(ctx echo.Context, code int, props shell.LoginProps) error {
	sess := contextSession(ctx)
	props.AppName = s.deps.Conf.AppName
	props.Theme = sess.Theme
	props.Trusted = s.deps.Conf.Portal.TrustedLogin
	props.Toasts = s.toasts(sess)
	return renderNode(ctx, code, shell.Login(props))
}

func (s *Server) home(ctx echo.Context) error {
	sess := contextSession(ctx)
	if !s.deps.Service.Gate().Allows(sess) {
		return s.renderLogin(ctx, http.StatusOK, shell.LoginProps{})
	}
	return s.renderShell(ctx, sess)
}

func (s *Server) loginForm(ctx echo.Context) error {
	if s.deps.Service.Gate().Allows(contextSession(ctx)) {
		return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
	}
	return s.renderLogin(ctx, http.StatusOK, shell.LoginProps{})
}

func (s *Server) login(ctx echo.Context) error {
	sess := contextSession(ctx)

	creds, props, err := s.bindCredentials(ctx)
	if err != nil {
		var vErr *core.ValidationError
		if errors.As(err, &vErr) {
			props.FieldErrors = vErr.FieldMap()
			return s.renderLogin(ctx, http.StatusBadRequest, props)
		}
		return err
	}

	if err := s.deps.Service.Login(ctx.Request().Context(), &sess, creds); err != nil {
		switch errors.Cause(err) {
		case portal.ErrInvalidCredentials, portal.ErrInvalidRole:
			s.deps.Metrics.observeLogin(false)
			props.Error = "invalid username or password"
			return s.renderLogin(ctx, http.StatusUnauthorized, props)
		}
		return err
	}
	s.deps.Metrics.observeLogin(true)

	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
}

// bindCredentials binds & validates the login form. props echo back what the user typed.
func (s *Server) bindCredentials(ctx echo.Context) (portal.Credentials, shell.LoginProps, error) {
	if s.deps.Conf.Portal.TrustedLogin {
		var req trustedLoginRequest
		if err := ctx.Bind(&req); err != nil {
			return portal.Credentials{}, shell.LoginProps{}, err
		}
		req.Role = core.CleanString(req.Role, true /* lower */)
		props := shell.LoginProps{Role: portal.Role(req.Role)}
		if err := s.deps.Validate.Struct(req); err != nil {
			return portal.Credentials{}, props, core.TranslateValidationErrors(err, s.deps.Translator)
		}
		return portal.Credentials{Role: portal.Role(req.Role)}, props, nil
	}

	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return portal.Credentials{}, shell.LoginProps{}, err
	}
	req.Username = core.CleanString(req.Username)
	props := shell.LoginProps{Username: req.Username}
	if err := s.deps.Validate.Struct(req); err != nil {
		return portal.Credentials{}, props, core.TranslateValidationErrors(err, s.deps.Translator)
	}
	return portal.Credentials{Username: req.Username, Password: req.Password}, props, nil
}

func (s *Server) logout(ctx echo.Context) error {
	sess := contextSession(ctx)
	if !s.deps.Service.Gate().Allows(sess) {
		// nothing to log out of: do not persist a session for it
		return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
	}
	s.deps.Service.Logout(&sess)
	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
}

func (s *Server) navigate(ctx echo.Context) error {
	sess := contextSession(ctx)
	sess.Navigate(ctx.Param("page"))
	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}
	return s.renderShell(ctx, sess)
}

func (s *Server) switchRole(ctx echo.Context) error {
	role := portal.Role(core.CleanString(ctx.FormValue("role"), true /* lower */))
	sess := contextSession(ctx)
	if err := s.deps.Service.SwitchRole(&sess, role); err != nil {
		return errInvalidRole
	}
	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
}

func (s *Server) toggleTheme(ctx echo.Context) error {
	sess := contextSession(ctx)
	sess.ToggleTheme()
	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
}

func (s *Server) toggleSidebar(ctx echo.Context) error {
	sess := contextSession(ctx)
	sess.ToggleSidebar()
	if err := s.saveSession(ctx, sess); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
}

func (s *Server) sessionInfo(ctx echo.Context) error {
	sess := contextSession(ctx)
	user := sess.UserInfo()
	resp := sessionResponse{
		Authenticated:    sess.Authenticated,
		Role:             sess.Role.String(),
		ActivePage:       sess.ActivePage,
		Theme:            string(sess.Theme),
		SidebarCollapsed: sess.SidebarCollapsed,
		User:             userInfo{Name: user.Name, Email: user.Email},
	}
	if s.deps.Service.Gate().Allows(sess) {
		page := s.deps.Service.Resolve(sess)
		resp.Page = page.Key
		for _, p := range s.deps.Service.Registry().Pages(sess.Role) {
			resp.Nav = append(resp.Nav, navItem{Key: p.Key, Title: p.Title, Icon: p.Icon, Active: p.Key == page.Key})
		}
	}
	return ctx.JSON(http.StatusOK, resp)
}
