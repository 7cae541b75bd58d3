// Package views holds the page views of the portal and the default role-page registry.
package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

// Tables returns the ordered pages of every role.
func Tables() map[portal.Role][]portal.Page {
	return map[portal.Role][]portal.Page{
		portal.RoleAdmin:   adminPages,
		portal.RoleTeacher: teacherPages,
		portal.RoleStudent: studentPages,
	}
}

// DefaultRegistry builds the registry of the portal pages.
func DefaultRegistry() *portal.Registry {
	return portal.MustRegistry(Tables())
}

func static(title, blurb string, stats ...stat) portal.ViewFactory {
	return func(portal.ViewContext) g.Node {
		return card(title, blurb, stats...)
	}
}

func messages(vc portal.ViewContext) g.Node {
	return card("Messages", "Conversations with "+audience(vc.Session.Role)+".")
}

func audience(role portal.Role) string {
	switch role {
	case portal.RoleAdmin:
		return "staff, students and parents"
	case portal.RoleTeacher:
		return "colleagues and your students"
	}
	return "your teachers"
}

func profile(vc portal.ViewContext) g.Node {
	return html.Section(
		html.Class("card"),
		html.H1(html.Class("card-title"), g.Text("Profile")),
		html.Dl(
			html.Class("stats"),
			html.Dt(g.Text("Name")), html.Dd(g.Text(vc.User.Name)),
			html.Dt(g.Text("Email")), html.Dd(g.Text(vc.User.Email)),
			html.Dt(g.Text("Role")), html.Dd(g.Text(vc.Session.Role.Title())),
		),
	)
}
