package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-portal/apps/portal/shell"
	"github.com/trezcool/masomo-portal/core/portal"
)

var (
	contextSessionKey = "session"
	nowFunc           = time.Now // mockable

	errInvalidToken = errors.New("invalid session token")
	errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "session not authenticated")
)

// sessionMiddleware loads the session the request cookie points to, or starts a new one.
// New sessions are only persisted once they change.
func (s *Server) sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		sess, err := s.loadSession(ctx)
		if err != nil {
			return err
		}
		ctx.Set(contextSessionKey, sess)
		return next(ctx)
	}
}

func (s *Server) loadSession(ctx echo.Context) (portal.Session, error) {
	cookie, err := ctx.Cookie(s.deps.Conf.Session.CookieName)
	if err != nil {
		return s.deps.Service.NewSession(), nil
	}
	id, err := s.parseToken(cookie.Value)
	if err != nil {
		s.deps.Logger.Debug("discarding session token", err)
		return s.deps.Service.NewSession(), nil
	}
	sess, err := s.deps.Store.Get(ctx.Request().Context(), id)
	switch {
	case err == nil:
		return sess, nil
	case errors.Cause(err) == portal.ErrSessionNotFound:
		return s.deps.Service.NewSession(), nil
	}
	return portal.Session{}, errors.Wrap(err, "loading session")
}

// saveSession persists the session and (re)issues its cookie.
func (s *Server) saveSession(ctx echo.Context, sess portal.Session) error {
	if err := s.deps.Store.Save(ctx.Request().Context(), sess); err != nil {
		return errors.Wrap(err, "saving session")
	}
	token, err := s.signToken(sess.ID)
	if err != nil {
		return err
	}

	conf := s.deps.Conf
	cookie := &http.Cookie{
		Name:     conf.Session.CookieName,
		Value:    token,
		Path:     shell.HomePath,
		HttpOnly: true,
		Secure:   !(conf.Debug || conf.TestMode),
		SameSite: http.SameSiteLaxMode,
	}
	if conf.Session.TTL > 0 {
		cookie.Expires = nowFunc().Add(conf.Session.TTL)
	}
	ctx.SetCookie(cookie)
	ctx.Set(contextSessionKey, sess)
	return nil
}

// signToken returns a signed JWT whose subject is the session id.
func (s *Server) signToken(sessionID string) (string, error) {
	conf := s.deps.Conf
	now := nowFunc()
	claims := jwt.StandardClaims{
		Issuer:   conf.AppName,
		Subject:  sessionID,
		IssuedAt: now.Unix(),
	}
	if conf.Session.TTL > 0 {
		claims.ExpiresAt = now.Add(conf.Session.TTL).Unix()
	}
	ss, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.SecretKey))
	return ss, errors.Wrap(err, "signing session token")
}

func (s *Server) parseToken(raw string) (string, error) {
	claims := new(jwt.StandardClaims)
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidToken
		}
		return []byte(s.deps.Conf.SecretKey), nil
	})
	if err != nil {
		return "", err
	}
	if claims.Subject == "" || claims.Issuer != s.deps.Conf.AppName {
		return "", errInvalidToken
	}
	return claims.Subject, nil
}

func contextSession(ctx echo.Context) portal.Session {
	sess, _ := ctx.Get(contextSessionKey).(portal.Session)
	return sess
}

// requireAuth sends unauthenticated sessions to the login view.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if !s.deps.Service.Gate().Allows(contextSession(ctx)) {
			if ctx.Request().Method == http.MethodGet {
				return ctx.Redirect(http.StatusSeeOther, shell.HomePath)
			}
			return errUnauthorized
		}
		return next(ctx)
	}
}
