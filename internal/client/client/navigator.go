package client

const (
	// LoginPath is the view a forced logout navigates to.
	LoginPath = "/login"
	// HomePath is the main view reached after a successful login.
	HomePath = "/dashboard"
)

// Navigator is the rendering layer's navigation capability.
type Navigator interface {
	// Navigate moves to an in-app path, keeping client state.
	Navigate(path string)
	// Redirect performs a full navigation to target (an in-app path or an
	// external URL), discarding transient view state.
	Redirect(target string)
}
