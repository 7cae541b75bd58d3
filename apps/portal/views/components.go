package views

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"

	"github.com/trezcool/masomo-portal/core/portal"
)

type stat struct {
	label string
	value string
}

// card is the placeholder every page renders: a heading, a blurb and a few headline figures.
func card(title, blurb string, stats ...stat) g.Node {
	return html.Section(
		html.Class("card"),
		html.H1(html.Class("card-title"), g.Text(title)),
		html.P(html.Class("card-blurb"), g.Text(blurb)),
		g.If(len(stats) > 0,
			html.Dl(
				html.Class("stats"),
				g.Group(statNodes(stats)),
			),
		),
	)
}

func statNodes(stats []stat) []g.Node {
	nodes := make([]g.Node, 0, len(stats)*2)
	for _, s := range stats {
		nodes = append(nodes, html.Dt(g.Text(s.label)), html.Dd(g.Text(s.value)))
	}
	return nodes
}

type link struct {
	key   string
	title string
}

// quickLinks renders navigation shortcuts to other pages of the same role.
func quickLinks(vc portal.ViewContext, links ...link) g.Node {
	if vc.PageURL == nil {
		return nil
	}
	items := make([]g.Node, 0, len(links))
	for _, l := range links {
		items = append(items, html.Li(html.A(html.Href(vc.PageURL(l.key)), g.Text(l.title))))
	}
	return html.Nav(html.Class("quick-links"), html.Ul(items...))
}

func welcome(vc portal.ViewContext) g.Node {
	return html.P(html.Class("welcome"), g.Textf("Welcome, %s.", vc.User.Name))
}
