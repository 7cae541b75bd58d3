package portal

import (
	"context"

	"github.com/pkg/errors"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials is what the login view submits.
// Role is only honoured by authenticators that trust the caller.
type Credentials struct {
	Username string
	Password string
	Role     Role
}

// Authenticator checks credentials and returns the granted role.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (Role, error)
}

// AuthenticatorFunc adapts a function to an Authenticator.
type AuthenticatorFunc func(ctx context.Context, creds Credentials) (Role, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, creds Credentials) (Role, error) {
	return f(ctx, creds)
}

// TrustedAuthenticator grants whatever role is requested (local development, demos).
var TrustedAuthenticator = AuthenticatorFunc(func(_ context.Context, creds Credentials) (Role, error) {
	if !creds.Role.Valid() {
		return "", ErrInvalidRole
	}
	return creds.Role, nil
})

// Gate guards the portal: unauthenticated sessions only get the login view.
type Gate struct {
	auth     Authenticator
	notifier Notifier
}

func NewGate(auth Authenticator, notifier Notifier) *Gate {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Gate{auth: auth, notifier: notifier}
}

// Allows reports whether the session may see the portal shell.
func (g *Gate) Allows(sess Session) bool {
	return sess.Authenticated
}

// Login checks the credentials and, on success, logs the session in with the granted role.
// The session is left untouched on failure.
func (g *Gate) Login(ctx context.Context, sess *Session, creds Credentials) error {
	role, err := g.auth.Authenticate(ctx, creds)
	if err == nil && !role.Valid() {
		err = errors.Wrapf(ErrInvalidRole, "granted %q", role)
	}
	if err != nil {
		g.notifier.Notify(sess.ID, Toast{Level: ToastError, Message: "Login failed"})
		return errors.Wrap(err, "authenticating")
	}
	sess.Login(role)
	g.notifier.Notify(sess.ID, Toast{Level: ToastSuccess, Message: "Welcome back, " + sess.UserInfo().Name})
	return nil
}

// Logout logs the session out.
func (g *Gate) Logout(sess *Session) {
	sess.Logout()
	g.notifier.Notify(sess.ID, Toast{Level: ToastInfo, Message: "Logged out"})
}
