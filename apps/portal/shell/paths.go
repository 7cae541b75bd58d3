// Package shell renders the portal chrome: document, sidebar, header, toasts,
// the keyed page container and the login view.
package shell

// Routes the shell links and posts to.
const (
	HomePath    = "/"
	LoginPath   = "/login"
	LogoutPath  = "/logout"
	RolePath    = "/role"
	ThemePath   = "/theme"
	SidebarPath = "/sidebar"
	PagePrefix  = "/p/"
)

// PageURL is the link that navigates to a page key.
func PageURL(pageKey string) string {
	return PagePrefix + pageKey
}
