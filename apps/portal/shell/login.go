package shell

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

// LoginProps configure the login view.
type LoginProps struct {
	AppName string
	Theme   portal.Theme
	// Trusted shows a role picker instead of username & password fields.
	Trusted  bool
	Username string
	Role     portal.Role
	// Error is a form-level error; FieldErrors are keyed by form field name.
	Error       string
	FieldErrors map[string]string
	Toasts      []portal.Toast
}

// Login renders the login view shown to unauthenticated sessions.
func Login(p LoginProps) g.Node {
	return Document(p.AppName, p.Theme, "Log in",
		html.Main(
			html.Class("login"),
			html.H1(g.Textf("%s School Portal", p.AppName)),
			themeButton(p.Theme),
			toasts(p.Toasts),
			g.If(p.Error != "", html.P(html.Class("form-error"), g.Attr("role", "alert"), g.Text(p.Error))),
			html.Form(
				html.Method("post"),
				html.Action(LoginPath),
				g.If(!p.Trusted, credentialFields(p)),
				g.If(p.Trusted, roleField(p)),
				html.Button(html.Type("submit"), g.Text("Log in")),
			),
		),
	)
}

func credentialFields(p LoginProps) g.Node {
	return g.Group([]g.Node{
		field("username", "Username or email", p.FieldErrors,
			html.Input(html.Type("text"), html.Name("username"), html.ID("username"), html.Value(p.Username), html.AutoComplete("username")),
		),
		field("password", "Password", p.FieldErrors,
			html.Input(html.Type("password"), html.Name("password"), html.ID("password"), html.AutoComplete("current-password")),
		),
	})
}

func roleField(p LoginProps) g.Node {
	options := make([]g.Node, 0, len(portal.Roles))
	for _, role := range portal.Roles {
		options = append(options, html.Option(
			html.Value(role.String()),
			g.If(role == p.Role, html.Selected()),
			g.Text(role.Title()),
		))
	}
	return field("role", "Portal", p.FieldErrors, html.Select(html.Name("role"), html.ID("role"), g.Group(options)))
}

func field(name, label string, errs map[string]string, input g.Node) g.Node {
	msg := errs[name]
	return html.Div(
		html.Class("field"),
		html.Label(html.For(name), g.Text(label)),
		input,
		g.If(msg != "", html.Span(html.Class("field-error"), g.Text(msg))),
	)
}
