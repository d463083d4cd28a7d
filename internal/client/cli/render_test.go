package cli

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/login"
	"github.com/dmitrijs2005/nestify/internal/client/views"
)

func TestFailureNotice(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want login.Notice
	}{
		{"nil", nil, login.Notice{}},
		{"stale dropped", fmt.Errorf("load: %w", client.ErrStaleSession), login.Notice{}},
		{"rejection announced elsewhere", client.ErrUnauthorized, login.Notice{}},
		{"unavailable", &client.APIError{Status: 503}, errorNotice("Server unavailable, try again later")},
		{"transport", fmt.Errorf("%w: dial", client.ErrTransport), errorNotice("Network error: the server could not be reached")},
		{"detail", &client.APIError{Status: 403, Detail: "Admin only"}, errorNotice("Admin only")},
		{"status text", &client.APIError{Status: 404}, errorNotice("Not Found")},
		{"no view", views.ErrNoView, errorNotice("Nothing to show here")},
		{"other", errors.New("boom"), errorNotice("boom")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureNotice(tt.err))
		})
	}
}

func TestPrintNotice(t *testing.T) {
	var buf bytes.Buffer
	printNotice(&buf, okNotice("done"))
	printNotice(&buf, errorNotice("failed"))
	printNotice(&buf, login.Notice{})
	assert.Equal(t, "[ok] done\n[error] failed\n", buf.String())
}

func TestRenderLogin_VerifyOnlyAfterCodeSent(t *testing.T) {
	var idle, empty bytes.Buffer
	s := login.New().SwitchMode(login.TabPhone).EditPhone("9876543210")
	renderLogin(&idle, s, 6)
	assert.Contains(t, idle.String(), "otp send")
	assert.NotContains(t, idle.String(), "otp verify")

	renderLogin(&empty, login.New().SwitchMode(login.TabPhone), 6)
	assert.NotContains(t, empty.String(), "otp send", "no number, nothing to send")
}

func TestRenderLogin_EmailMasksPassword(t *testing.T) {
	var buf bytes.Buffer
	renderLogin(&buf, login.New(), 6)
	assert.Contains(t, buf.String(), "Password: ********")
	assert.NotContains(t, buf.String(), "admin123")
}

func TestRenderRows(t *testing.T) {
	var buf bytes.Buffer
	renderRows(&buf, nil)
	assert.Equal(t, "  (none)\n", buf.String())

	buf.Reset()
	renderPage(&buf, &views.Page{Path: "/notices", Rows: []views.Row{{"id": 1.0, "title": "Lift"}}})
	assert.Contains(t, buf.String(), "/notices (1)")
	assert.Regexp(t, `id\s+title`, buf.String())
	assert.Regexp(t, `1\s+Lift`, buf.String())
}

func TestCell(t *testing.T) {
	assert.Equal(t, "-", cell(nil))
	assert.Equal(t, "x", cell("x"))
	assert.Equal(t, "12", cell(12.0))
	assert.Equal(t, "12.50", cell(12.5))
	assert.Equal(t, "true", cell(true))
	assert.Equal(t, "[2 items]", cell([]any{1, 2}))
	assert.Equal(t, `{"a":1}`, cell(map[string]any{"a": 1}))
}

func TestTerminalNavigator(t *testing.T) {
	var buf bytes.Buffer
	n := NewTerminalNavigator(&buf, "/login")

	_, pending, _ := n.take()
	assert.False(t, pending)

	n.Navigate("/dashboard")
	path, pending, forced := n.take()
	assert.Equal(t, "/dashboard", path)
	assert.True(t, pending)
	assert.False(t, forced)

	n.Redirect(client.LoginPath)
	path, pending, forced = n.take()
	assert.Equal(t, client.LoginPath, path)
	assert.True(t, pending)
	assert.True(t, forced)

	n.Redirect("https://accounts.example.com/x")
	_, pending, _ = n.take()
	assert.False(t, pending, "external targets do not move the view")
	assert.Contains(t, buf.String(), "https://accounts.example.com/x")
	assert.Equal(t, client.LoginPath, n.Current())
}
