// Package router decides which console section a session may open.
package router

import (
	"github.com/jrsteele09/pos-console/session"
	"github.com/jrsteele09/pos-console/users"
)

// Decision is either Allow or a redirect to another path.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Allow lets the section open.
var Allow = Decision{Allowed: true}

func Redirect(path string) Decision {
	return Decision{RedirectTo: path}
}

func (d Decision) String() string {
	if d.Allowed {
		return "allow"
	}
	return "redirect " + d.RedirectTo
}

// Authorize sends anonymous users to the login page and users of the wrong role to their
// own home. An empty required role admits any session.
func Authorize(s *session.Session, required users.Role) Decision {
	if s == nil {
		return Redirect(RouteLogin)
	}
	if required != "" && s.Role != required {
		return Redirect(HomePath(s.Role))
	}
	return Allow
}
