package models

// Icon names the capability glyph shown next to a navigation entry.
type Icon string

const (
	IconDashboard  Icon = "layout-dashboard"
	IconSociety    Icon = "building"
	IconResidents  Icon = "users"
	IconBills      Icon = "receipt"
	IconComplaints Icon = "message-square-warning"
	IconVisitors   Icon = "shield-check"
	IconNotices    Icon = "megaphone"
	IconBookings   Icon = "calendar-days"
	IconPolls      Icon = "vote"
)

// NavigationEntry is one item of the role-specific menu.
type NavigationEntry struct {
	Path  string
	Label string
	Icon  Icon
}

// DashboardVariant selects which dashboard the /dashboard route renders.
type DashboardVariant string

const (
	DashboardAdmin    DashboardVariant = "admin"
	DashboardResident DashboardVariant = "resident"
)
