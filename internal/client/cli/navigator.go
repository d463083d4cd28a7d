package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dmitrijs2005/nestify/internal/client/client"
)

// TerminalNavigator is the console's client.Navigator. In-app moves are
// recorded and rendered by the REPL after the current command; external
// targets are printed for the user to open in a browser.
type TerminalNavigator struct {
	out io.Writer

	mu      sync.Mutex
	current string
	pending bool
	forced  bool
}

func NewTerminalNavigator(out io.Writer, start string) *TerminalNavigator {
	return &TerminalNavigator{out: out, current: start}
}

func (n *TerminalNavigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
	n.pending = true
}

func (n *TerminalNavigator) Redirect(target string) {
	if isExternal(target) {
		fmt.Fprintf(n.out, "Open this address in your browser to continue:\n  %s\n", target)
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = target
	n.pending = true
	if target == client.LoginPath {
		n.forced = true
	}
}

func (n *TerminalNavigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// take returns the pending navigation, if any, and clears it. forced is
// set when the move was a forced return to the login view.
func (n *TerminalNavigator) take() (path string, pending, forced bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	path, pending, forced = n.current, n.pending, n.forced
	n.pending, n.forced = false, false
	return path, pending, forced
}

// settle records path as rendered without scheduling another render.
func (n *TerminalNavigator) settle(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}

func isExternal(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}
