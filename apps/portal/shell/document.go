package shell

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

const styles = `
body{margin:0;font-family:system-ui,sans-serif;background:#f8fafc;color:#0f172a}
html.dark body{background:#0f172a;color:#e2e8f0}
.layout{display:flex;min-height:100vh}
.sidebar{width:16rem;padding:1rem;border-right:1px solid #cbd5e1}
.sidebar.collapsed{width:4rem}
.sidebar.collapsed .label{display:none}
.sidebar a.active{font-weight:600}
.main{flex:1;display:flex;flex-direction:column}
.header{display:flex;justify-content:space-between;align-items:center;padding:.75rem 1.5rem;border-bottom:1px solid #cbd5e1}
.content{padding:1.5rem}
.toast{padding:.5rem 1rem;margin:.5rem 1.5rem;border-radius:.25rem;background:#e2e8f0}
.toast.error{background:#fecaca}
.toast.success{background:#bbf7d0}
.field-error{color:#dc2626}
`

// Document wraps body in the html document. The theme is applied at the document level.
func Document(appName string, theme portal.Theme, title string, body ...g.Node) g.Node {
	return html.Doctype(
		html.HTML(
			html.Lang("en"),
			g.If(theme.IsDark(), html.Class("dark")),
			g.Attr("data-theme", string(theme)),
			html.Head(
				html.Meta(html.Charset("utf-8")),
				html.Meta(html.Name("viewport"), html.Content("width=device-width, initial-scale=1")),
				html.TitleEl(g.Textf("%s | %s", title, appName)),
				html.StyleEl(g.Raw(styles)),
			),
			html.Body(body...),
		),
	)
}

func toasts(items []portal.Toast) g.Node {
	if len(items) == 0 {
		return nil
	}
	nodes := make([]g.Node, 0, len(items))
	for _, t := range items {
		nodes = append(nodes, html.Div(
			html.Class("toast "+string(t.Level)),
			g.Attr("role", "status"),
			g.Text(t.Message),
		))
	}
	return html.Div(html.Class("toasts"), g.Group(nodes))
}

// postButton is a one-button form posting to action.
func postButton(action, label string, extra ...g.Node) g.Node {
	return html.Form(
		html.Method("post"),
		html.Action(action),
		g.Group(extra),
		html.Button(html.Type("submit"), g.Text(label)),
	)
}
