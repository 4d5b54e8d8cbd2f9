package router

import (
	"strings"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/session"
	"github.com/jrsteele09/pos-console/users"
)

// Console routes
const (
	RouteRoot     = "/"
	RouteLogin    = "/login"
	RouteAdmin    = "/admin"
	RouteSales    = "/sales"
	RouteTech     = "/tech"
	RouteCustomer = "/customer"
)

// protected maps each section to the role allowed to open it.
var protected = map[string]users.Role{
	RouteAdmin:    users.RoleAdmin,
	RouteSales:    users.RoleSales,
	RouteTech:     users.RoleTech,
	RouteCustomer: users.RoleCustomer,
}

// HomePath is the section a role lands on after login.
func HomePath(role users.Role) string {
	return "/" + string(role)
}

// Resolve decides what happens when the console opens path. The login page is open to
// everyone but sends a logged in user home.
func Resolve(path string, s *session.Session) (Decision, error) {
	path = normalise(path)

	switch path {
	case RouteRoot, RouteLogin:
		if s != nil {
			return Redirect(HomePath(s.Role)), nil
		}
		return Allow, nil
	}

	role, ok := protected[path]
	if !ok {
		return Decision{}, poserrors.Wrapf(poserrors.ErrUnknownRoute, "%s", path)
	}
	return Authorize(s, role), nil
}

func normalise(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return strings.ToLower(path)
}

// MenuItem is one entry of a section menu. Command is the console command that opens it.
type MenuItem struct {
	Title   string
	Command string
}

var menus = map[users.Role][]MenuItem{
	users.RoleAdmin: {
		{Title: "Dashboard", Command: "dashboard stats"},
		{Title: "Users", Command: "users list"},
		{Title: "Service Plans", Command: "plans list"},
		{Title: "Reports", Command: "reports sales"},
	},
	users.RoleSales: {
		{Title: "Customers", Command: "customers list"},
		{Title: "Service Plans", Command: "plans list"},
		{Title: "Transactions", Command: "transactions list"},
	},
	users.RoleTech: {
		{Title: "Tickets", Command: "tickets list"},
		{Title: "Equipment", Command: "equipment list"},
	},
	users.RoleCustomer: {
		{Title: "Billing History", Command: "transactions list"},
		{Title: "Support Tickets", Command: "tickets list"},
		{Title: "Service Plans", Command: "plans list"},
	},
}

// Menu returns the section entries for role. Unknown roles get no entries.
func Menu(role users.Role) []MenuItem {
	return append([]MenuItem(nil), menus[role]...)
}
