package portal

import "context"

// Service ties the registry, the auth gate and the session options together.
// It is what the HTTP and terminal shells drive.
type Service struct {
	registry *Registry
	gate     *Gate
	notifier Notifier
	opts     Options
}

func NewService(registry *Registry, gate *Gate, notifier Notifier, opts Options) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		registry: registry,
		gate:     gate,
		notifier: notifier,
		opts:     opts,
	}
}

func (svc *Service) Registry() *Registry { return svc.registry }

func (svc *Service) Gate() *Gate { return svc.gate }

// NewSession starts a session with a new id.
func (svc *Service) NewSession() Session {
	return NewSession(NewSessionID(), svc.opts)
}

// Resolve returns the page the session currently shows.
func (svc *Service) Resolve(sess Session) Page {
	return svc.registry.Resolve(sess.Role, sess.ActivePage)
}

func (svc *Service) Login(ctx context.Context, sess *Session, creds Credentials) error {
	return svc.gate.Login(ctx, sess, creds)
}

func (svc *Service) Logout(sess *Session) {
	svc.gate.Logout(sess)
}

// SwitchRole moves the session to another role's dashboard. The session is left
// untouched when role is not valid.
func (svc *Service) SwitchRole(sess *Session, role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	sess.SwitchRole(role)
	svc.notifier.Notify(sess.ID, Toast{Level: ToastInfo, Message: "Switched to " + role.Title() + " portal"})
	return nil
}
