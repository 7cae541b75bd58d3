package portal

import (
	"fmt"

	"github.com/pkg/errors"
	g "maragu.dev/gomponents"
)

var (
	ErrMissingDashboard = errors.New("role has no dashboard page")
	ErrDuplicatePage    = errors.New("duplicate page key")
	ErrInvalidPage      = errors.New("invalid page")
)

// ViewContext is what a view factory gets to render with.
type ViewContext struct {
	Session Session
	User    UserInfo
	// PageURL builds the link that navigates to a page key.
	PageURL func(pageKey string) string
}

// ViewFactory renders the content of one page. Views are opaque to the portal.
type ViewFactory func(ViewContext) g.Node

// Page is a registry entry: a navigable page of a role.
type Page struct {
	Key   string
	Title string
	Icon  string
	View  ViewFactory
}

// Registry maps role -> page key -> page. It is immutable once built and safe
// for concurrent use.
type Registry struct {
	pages map[Role]map[string]Page
	order map[Role][]string
}

// NewRegistry builds a registry from the ordered pages of each role.
// Every role must be present and register a dashboard page.
func NewRegistry(tables map[Role][]Page) (*Registry, error) {
	reg := &Registry{
		pages: make(map[Role]map[string]Page, len(Roles)),
		order: make(map[Role][]string, len(Roles)),
	}
	for role, pages := range tables {
		if !role.Valid() {
			return nil, errors.Wrap(ErrInvalidRole, string(role))
		}
		table := make(map[string]Page, len(pages))
		keys := make([]string, 0, len(pages))
		for _, page := range pages {
			if page.Key == "" || page.View == nil {
				return nil, errors.Wrap(ErrInvalidPage, fmt.Sprintf("%s/%q", role, page.Key))
			}
			if _, exists := table[page.Key]; exists {
				return nil, errors.Wrap(ErrDuplicatePage, fmt.Sprintf("%s/%s", role, page.Key))
			}
			if page.Title == "" {
				page.Title = page.Key
			}
			table[page.Key] = page
			keys = append(keys, page.Key)
		}
		reg.pages[role] = table
		reg.order[role] = keys
	}
	for _, role := range Roles {
		if _, ok := reg.pages[role][DashboardPage]; !ok {
			return nil, errors.Wrap(ErrMissingDashboard, string(role))
		}
	}
	return reg, nil
}

// MustRegistry is like NewRegistry but panics on error. For static tables.
func MustRegistry(tables map[Role][]Page) *Registry {
	reg, err := NewRegistry(tables)
	if err != nil {
		panic(err)
	}
	return reg
}

// Lookup returns the page registered for role & pageKey, if any.
func (r *Registry) Lookup(role Role, pageKey string) (Page, bool) {
	page, ok := r.pages[role][pageKey]
	return page, ok
}

// Resolve returns the page for role & pageKey, falling back to the role's dashboard
// when the key is not registered for that role. Unknown roles get the student dashboard.
func (r *Registry) Resolve(role Role, pageKey string) Page {
	table, ok := r.pages[role]
	if !ok {
		table = r.pages[RoleStudent]
	}
	if page, ok := table[pageKey]; ok {
		return page
	}
	return table[DashboardPage]
}

// Pages returns the pages of a role in navigation order.
func (r *Registry) Pages(role Role) []Page {
	keys := r.order[role]
	pages := make([]Page, 0, len(keys))
	for _, key := range keys {
		pages = append(pages, r.pages[role][key])
	}
	return pages
}

// Keys returns the page keys of a role in navigation order.
func (r *Registry) Keys(role Role) []string {
	keys := make([]string, len(r.order[role]))
	copy(keys, r.order[role])
	return keys
}
