// Package portalui is a terminal shell for the portal: the same session, registry and
// auth gate as the web portal, driven by key presses.
package portalui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trezcool/masomo-portal/core/portal"
)

// ToastDrainer hands over the pending toasts of a session.
type ToastDrainer interface {
	Drain(sessionID string) []portal.Toast
}

// Model owns one session. All transitions happen on the bubbletea event loop.
type Model struct {
	svc    *portal.Service
	toasts ToastDrainer
	keys   KeyMap

	sess portal.Session
	// cursor indexes the role picker when logged out, the nav otherwise.
	cursor  int
	notices []portal.Toast
	err     string

	quitting bool
}

func NewModel(svc *portal.Service, toasts ToastDrainer) Model {
	sess := svc.NewSession()
	return Model{
		svc:    svc,
		toasts: toasts,
		keys:   DefaultKeyMap,
		sess:   sess,
	}
}

// Session returns the current session state.
func (model Model) Session() portal.Session {
	return model.sess
}

func (model Model) Init() tea.Cmd {
	return nil
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if key.Matches(message, model.keys.Quit) {
			model.quitting = true
			return model, tea.Quit
		}
		model.err = ""
		if model.svc.Gate().Allows(model.sess) {
			model.handlePortalKeys(message)
		} else {
			model.handleLoginKeys(message)
		}
		model.drainToasts()
	}
	return model, nil
}

func (model *Model) drainToasts() {
	if model.toasts == nil {
		return
	}
	if toasts := model.toasts.Drain(model.sess.ID); len(toasts) > 0 {
		model.notices = toasts
	}
}

func (model *Model) handleLoginKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.cursor = wrap(model.cursor-1, len(portal.Roles))
	case key.Matches(message, model.keys.Down):
		model.cursor = wrap(model.cursor+1, len(portal.Roles))
	case key.Matches(message, model.keys.Select):
		creds := portal.Credentials{Role: portal.Roles[model.cursor]}
		if err := model.svc.Login(context.Background(), &model.sess, creds); err != nil {
			model.err = err.Error()
			return
		}
		model.cursor = 0
	}
}

func (model *Model) handlePortalKeys(message tea.KeyMsg) {
	pages := model.svc.Registry().Pages(model.sess.Role)
	switch {
	case key.Matches(message, model.keys.Up):
		model.cursor = wrap(model.cursor-1, len(pages))
	case key.Matches(message, model.keys.Down):
		model.cursor = wrap(model.cursor+1, len(pages))
	case key.Matches(message, model.keys.Select):
		model.sess.Navigate(pages[model.cursor].Key)
	case key.Matches(message, model.keys.SwitchRole):
		if err := model.svc.SwitchRole(&model.sess, nextRole(model.sess.Role)); err != nil {
			model.err = err.Error()
			return
		}
		model.cursor = 0
	case key.Matches(message, model.keys.ToggleTheme):
		model.sess.ToggleTheme()
	case key.Matches(message, model.keys.ToggleSidebar):
		model.sess.ToggleSidebar()
	case key.Matches(message, model.keys.Logout):
		model.svc.Logout(&model.sess)
		model.cursor = roleIndex(model.sess.Role)
	}
}

func (model Model) View() string {
	if model.quitting {
		return ""
	}
	st := stylesFor(model.sess.Theme)
	var out string
	if model.svc.Gate().Allows(model.sess) {
		out = model.portalView(st)
	} else {
		out = model.loginView(st)
	}
	return st.app.Render(out)
}

func (model Model) loginView(st styles) string {
	var b strings.Builder
	b.WriteString(st.header.Render("Masomo School Portal · log in") + "\n\n")
	for i, role := range portal.Roles {
		line := "  " + role.Title()
		if i == model.cursor {
			line = st.cursor.Render("> " + role.Title())
		}
		b.WriteString(line + "\n")
	}
	b.WriteString(model.footer(st, model.keys.loginHelp()))
	return b.String()
}

func (model Model) portalView(st styles) string {
	page := model.svc.Resolve(model.sess)
	user := model.sess.UserInfo()

	header := st.header.Render(fmt.Sprintf("%s <%s> · %s portal · %s theme", user.Name, user.Email, model.sess.Role.Title(), model.sess.Theme))

	var nav strings.Builder
	for i, p := range model.svc.Registry().Pages(model.sess.Role) {
		label := p.Title
		if model.sess.SidebarCollapsed {
			label = initial(p.Title)
		}
		if p.Key == page.Key {
			label = st.active.Render(label)
		}
		if i == model.cursor {
			label = st.cursor.Render(label)
		}
		nav.WriteString(label + "\n")
	}

	content := st.content.Render(fmt.Sprintf("[page-%s]\n%s", model.sess.ActivePage, page.Title))
	body := lipgloss.JoinHorizontal(lipgloss.Top, st.sidebar.Render(nav.String()), content)

	return header + "\n" + body + "\n" + model.footer(st, model.keys.portalHelp())
}

func (model Model) footer(st styles, bindings []key.Binding) string {
	var b strings.Builder
	for _, n := range model.notices {
		b.WriteString(st.toast.Render(n.Message) + "\n")
	}
	if model.err != "" {
		b.WriteString(st.errText.Render(model.err) + "\n")
	}
	help := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(st.help.Render(strings.Join(help, " · ")))
	return "\n" + b.String()
}

// initial is the first letter of title, upper-cased.
func initial(title string) string {
	for _, r := range title {
		return strings.ToUpper(string(r))
	}
	return ""
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	return (i%n + n) % n
}

func roleIndex(role portal.Role) int {
	for i, r := range portal.Roles {
		if r == role {
			return i
		}
	}
	return 0
}

func nextRole(role portal.Role) portal.Role {
	return portal.Roles[wrap(roleIndex(role)+1, len(portal.Roles))]
}
