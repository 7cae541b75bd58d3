package portal

// DashboardPage is the page every role lands on, and the fallback for unknown page keys.
const DashboardPage = "dashboard"

// Session is the single mutable record of a portal user: authentication, role,
// active page, theme and sidebar state.
// It is a plain value: whoever owns it (a request via a SessionStore, the TUI model)
// applies the transitions below in the order events arrive.
type Session struct {
	ID               string `json:"id"`
	Authenticated    bool   `json:"authenticated"`
	Role             Role   `json:"role"`
	ActivePage       string `json:"active_page"`
	Theme            Theme  `json:"theme"`
	SidebarCollapsed bool   `json:"sidebar_collapsed"`
}

// Options configure how new sessions start.
type Options struct {
	// SkipAuth pre-authenticates new sessions as admin (development only).
	SkipAuth bool
	Theme    Theme
}

// NewSession returns a fresh session on the dashboard.
func NewSession(id string, opts Options) Session {
	theme := opts.Theme
	if theme != ThemeDark {
		theme = ThemeLight
	}
	sess := Session{
		ID:         id,
		Role:       RoleAdmin,
		ActivePage: DashboardPage,
		Theme:      theme,
	}
	if opts.SkipAuth {
		sess.Authenticated = true
	}
	return sess
}

// Login authenticates the session with the granted role and lands on the dashboard.
func (s *Session) Login(role Role) {
	s.Authenticated = true
	s.Role = role
	s.ActivePage = DashboardPage
}

// Logout drops the authentication. Role, theme and sidebar state are kept;
// the next Login overwrites the role anyway.
func (s *Session) Logout() {
	s.Authenticated = false
	s.ActivePage = DashboardPage
}

// Navigate sets the active page. Unknown keys are accepted here and
// resolved to the dashboard when rendering.
func (s *Session) Navigate(pageKey string) {
	s.ActivePage = pageKey
}

// SwitchRole changes the role and always lands on the dashboard,
// so a page key of the previous role never survives the switch.
// Invalid roles are ignored.
func (s *Session) SwitchRole(role Role) {
	if !role.Valid() {
		return
	}
	s.Role = role
	s.ActivePage = DashboardPage
}

func (s *Session) ToggleTheme() {
	s.Theme = s.Theme.Toggle()
}

func (s *Session) ToggleSidebar() {
	s.SidebarCollapsed = !s.SidebarCollapsed
}

// UserInfo returns the display identity for the session's role.
func (s Session) UserInfo() UserInfo {
	return UserInfoFor(s.Role)
}
