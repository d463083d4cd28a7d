// Package nav builds the role-specific navigation menu.
package nav

import "github.com/dmitrijs2005/nestify/internal/client/models"

var (
	dashboard  = models.NavigationEntry{Path: "/dashboard", Label: "Dashboard", Icon: models.IconDashboard}
	society    = models.NavigationEntry{Path: "/societies", Label: "Society", Icon: models.IconSociety}
	residents  = models.NavigationEntry{Path: "/residents", Label: "Residents", Icon: models.IconResidents}
	bills      = models.NavigationEntry{Path: "/maintenance", Label: "Maintenance", Icon: models.IconBills}
	myBills    = models.NavigationEntry{Path: "/maintenance", Label: "My Bills", Icon: models.IconBills}
	complaints = models.NavigationEntry{Path: "/complaints", Label: "Complaints", Icon: models.IconComplaints}
	visitors   = models.NavigationEntry{Path: "/visitors", Label: "Visitors", Icon: models.IconVisitors}
	notices    = models.NavigationEntry{Path: "/notices", Label: "Notices", Icon: models.IconNotices}
	bookings   = models.NavigationEntry{Path: "/bookings", Label: "Bookings", Icon: models.IconBookings}
	polls      = models.NavigationEntry{Path: "/polls", Label: "Polls", Icon: models.IconPolls}
)

var (
	adminMenu    = []models.NavigationEntry{dashboard, society, residents, bills, complaints, visitors, notices, bookings, polls}
	securityMenu = []models.NavigationEntry{dashboard, visitors}
	residentMenu = []models.NavigationEntry{dashboard, myBills, complaints, visitors, notices, bookings, polls}
)

// Entries returns the ordered menu for role. Treasurers and unknown roles
// get the resident menu. The returned slice is a fresh copy.
func Entries(role models.Role) []models.NavigationEntry {
	var src []models.NavigationEntry
	switch role {
	case models.RoleAdmin:
		src = adminMenu
	case models.RoleSecurity:
		src = securityMenu
	default:
		src = residentMenu
	}
	return append([]models.NavigationEntry(nil), src...)
}

// Contains reports whether path is one of the menu entries for role.
func Contains(role models.Role, path string) bool {
	for _, e := range Entries(role) {
		if e.Path == path {
			return true
		}
	}
	return false
}
