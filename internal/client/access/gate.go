// Package access guards navigation to protected views and picks the
// dashboard variant for the signed-in role.
package access

import (
	"path"
	"strings"

	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/models"
)

// Protected lists the views that require a session, in menu order.
var Protected = []string{
	client.HomePath,
	"/societies",
	"/residents",
	"/maintenance",
	"/complaints",
	"/visitors",
	"/notices",
	"/bookings",
	"/polls",
}

// AuthSource reports the current session.
type AuthSource interface {
	Current() models.Session
}

// Decision is where a navigation request ends up.
type Decision struct {
	Path       string
	Redirected bool
}

type Gate struct {
	sessions AuthSource
}

func NewGate(sessions AuthSource) *Gate {
	return &Gate{sessions: sessions}
}

// Resolve maps a requested path to the view to render. The login view is
// public; unknown paths go to the dashboard; protected views require a
// session and otherwise resolve to the login view.
func (g *Gate) Resolve(requested string) Decision {
	p := Clean(requested)
	target := p

	if target == client.LoginPath {
		return Decision{Path: target}
	}
	if !IsProtected(target) {
		target = client.HomePath
	}
	if !g.sessions.Current().IsAuthenticated() {
		target = client.LoginPath
	}
	return Decision{Path: target, Redirected: target != p}
}

// Dashboard returns the dashboard variant for the current session.
func (g *Gate) Dashboard() models.DashboardVariant {
	return DashboardVariant(g.sessions.Current().Role())
}

// DashboardVariant maps admins and treasurers to the administrative
// dashboard and every other role to the resident dashboard.
func DashboardVariant(role models.Role) models.DashboardVariant {
	switch role {
	case models.RoleAdmin, models.RoleTreasurer:
		return models.DashboardAdmin
	}
	return models.DashboardResident
}

func IsProtected(p string) bool {
	for _, v := range Protected {
		if v == p {
			return true
		}
	}
	return false
}

// Clean normalises a user-typed path: leading slash, no trailing slash,
// no dot segments, lower case.
func Clean(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}
