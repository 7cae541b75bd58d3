package shell

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

// Props is everything the shell needs to render a session.
type Props struct {
	AppName string
	Session portal.Session
	// Nav lists the pages of the session role, in order.
	Nav []portal.Page
	// Page is the page the session's active page key resolved to.
	Page   portal.Page
	Toasts []portal.Toast
}

// Shell renders the sidebar, the header and the resolved page inside a container keyed
// by the active page key, so a page change replaces the whole keyed child.
func Shell(p Props) g.Node {
	user := p.Session.UserInfo()
	vc := portal.ViewContext{
		Session: p.Session,
		User:    user,
		PageURL: PageURL,
	}
	return Document(p.AppName, p.Session.Theme, p.Page.Title,
		html.Div(
			html.Class("layout"),
			sidebar(p),
			html.Div(
				html.Class("main"),
				header(p.Session, user),
				toasts(p.Toasts),
				html.Main(
					html.Class("content"),
					html.ID("page-"+p.Session.ActivePage),
					g.Attr("data-page-key", p.Session.ActivePage),
					g.Attr("data-view", p.Page.Key),
					p.Page.View(vc),
				),
			),
		),
	)
}

func sidebar(p Props) g.Node {
	class := "sidebar"
	if p.Session.SidebarCollapsed {
		class += " collapsed"
	}

	items := make([]g.Node, 0, len(p.Nav))
	for _, page := range p.Nav {
		active := page.Key == p.Page.Key
		items = append(items, html.Li(
			html.A(
				html.Href(PageURL(page.Key)),
				g.If(active, html.Class("active")),
				g.If(active, g.Attr("aria-current", "page")),
				g.Attr("data-icon", page.Icon),
				html.Span(html.Class("label"), g.Text(page.Title)),
			),
		))
	}

	return html.Aside(
		html.Class(class),
		g.Attr("data-collapsed", boolAttr(p.Session.SidebarCollapsed)),
		html.Div(html.Class("brand"), html.Span(html.Class("label"), g.Textf("%s %s", p.AppName, p.Session.Role.Title()))),
		html.Nav(html.Ul(items...)),
		roleSwitcher(p.Session.Role),
		postButton(SidebarPath, "Toggle sidebar"),
	)
}

func roleSwitcher(current portal.Role) g.Node {
	options := make([]g.Node, 0, len(portal.Roles))
	for _, role := range portal.Roles {
		options = append(options, html.Option(
			html.Value(role.String()),
			g.If(role == current, html.Selected()),
			g.Text(role.Title()),
		))
	}
	return html.Form(
		html.Class("role-switcher"),
		html.Method("post"),
		html.Action(RolePath),
		html.Select(html.Name("role"), g.Group(options)),
		html.Button(html.Type("submit"), g.Text("Switch")),
	)
}

func header(sess portal.Session, user portal.UserInfo) g.Node {
	return html.Header(
		html.Class("header"),
		html.Div(
			html.Class("user"),
			html.Strong(g.Text(user.Name)),
			html.Span(g.Text(" "+user.Email)),
		),
		html.Div(
			html.Class("actions"),
			themeButton(sess.Theme),
			postButton(LogoutPath, "Log out"),
		),
	)
}

func themeButton(theme portal.Theme) g.Node {
	if theme.IsDark() {
		return postButton(ThemePath, "Light mode")
	}
	return postButton(ThemePath, "Dark mode")
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
