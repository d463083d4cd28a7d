// Package cli provides the interactive Nestify console.
//
// It wires configuration, the local store, the session and theme stores,
// the request gateway and the backend services into a REPL that stands in
// for the browser views. Typical flow: sign in through one of the
// credential paths, browse the role-specific menu and open views.
//
// Key features:
//   - Email/password, phone one-time code and Google sign-in
//   - Role-specific menu and dashboard variant
//   - List views backed by the society management API
//   - Forced return to the sign-in view when the backend rejects the token
//   - Persistent light/dark preference
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, TerminalNavigator and runREPL for details.
package cli
