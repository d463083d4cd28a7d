package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/login"
	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/client/views"
)

const sessionEndedText = "Your session has ended. Please sign in again."

func printNotice(w io.Writer, n login.Notice) {
	if n.Text == "" {
		return
	}
	if n.Kind == login.NoticeError {
		fmt.Fprintln(w, "[error]", n.Text)
		return
	}
	fmt.Fprintln(w, "[ok]", n.Text)
}

func okNotice(text string) login.Notice    { return login.Notice{Kind: login.NoticeSuccess, Text: text} }
func errorNotice(text string) login.Notice { return login.Notice{Kind: login.NoticeError, Text: text} }

// failureNotice turns a failed backend call into the message shown to the
// user. Stale results and session rejections print nothing here: the former
// are dropped, the latter are announced by the forced navigation.
func failureNotice(err error) login.Notice {
	var apiErr *client.APIError
	switch {
	case err == nil,
		errors.Is(err, client.ErrStaleSession),
		errors.Is(err, client.ErrUnauthorized):
		return login.Notice{}
	case errors.Is(err, client.ErrUnavailable):
		return errorNotice("Server unavailable, try again later")
	case errors.Is(err, client.ErrTransport):
		return errorNotice("Network error: the server could not be reached")
	case errors.As(err, &apiErr):
		if apiErr.Detail != "" {
			return errorNotice(apiErr.Detail)
		}
		return errorNotice(http.StatusText(apiErr.Status))
	case errors.Is(err, views.ErrNoView):
		return errorNotice("Nothing to show here")
	}
	return errorNotice(err.Error())
}

func renderLogin(w io.Writer, s login.State, otpLength int) {
	switch s.Mode {
	case login.ModeEmail:
		fmt.Fprintln(w, "Sign in with email")
		fmt.Fprintf(w, "  Email:    %s\n", s.Email)
		fmt.Fprintf(w, "  Password: %s\n", strings.Repeat("*", len(s.Password)))
		fmt.Fprintln(w, "Actions: login, mode phone, google")

	case login.ModePhone:
		fmt.Fprintln(w, "Sign in with phone")
		fmt.Fprintf(w, "  Phone: %s\n", withDefault(s.Phone, "-"))
		actions := []string{"phone <number>"}
		if s.CanSendOTP() {
			actions = append(actions, "otp send")
		}
		fmt.Fprintf(w, "Actions: %s, mode email, google\n", strings.Join(actions, ", "))

	case login.ModeOTPSent:
		fmt.Fprintf(w, "Enter the %d-digit code sent to %s\n", otpLength, s.Phone)
		if s.DevCode != "" {
			fmt.Fprintf(w, "  Dev code: %s\n", s.DevCode)
		}
		fmt.Fprintln(w, "Actions: otp verify <code> [name], otp change, mode email, google")
	}
}

func renderMenu(w io.Writer, entries []models.NavigationEntry, current string) {
	for i, e := range entries {
		marker := " "
		if e.Path == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %d. %-12s %s\n", marker, i+1, e.Label, e.Path)
	}
}

func renderUser(w io.Writer, u *models.User, expires time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name\t%s\n", u.Name)
	fmt.Fprintf(tw, "Role\t%s\n", u.Role)
	fmt.Fprintf(tw, "Email\t%s\n", deref(u.Email))
	fmt.Fprintf(tw, "Phone\t%s\n", deref(u.Phone))
	if u.SocietyID != nil {
		fmt.Fprintf(tw, "Society\t%d\n", *u.SocietyID)
	}
	if u.FlatID != nil {
		fmt.Fprintf(tw, "Flat\t%d\n", *u.FlatID)
	}
	if !expires.IsZero() {
		fmt.Fprintf(tw, "Token expires\t%s\n", expires.Local().Format(time.RFC1123))
	}
	_ = tw.Flush()
}

func renderDashboard(w io.Writer, d *views.Dashboard) {
	title := "Resident dashboard"
	if d.Variant == models.DashboardAdmin {
		title = "Admin dashboard"
	}
	fmt.Fprintln(w, title)

	keys := make([]string, 0, len(d.Stats))
	for k := range d.Stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%s\n", strings.ReplaceAll(k, "_", " "), cell(d.Stats[k]))
	}
	_ = tw.Flush()

	fmt.Fprintln(w, "Recent notices")
	renderRows(w, d.Notices)
}

func renderPage(w io.Writer, p *views.Page) {
	fmt.Fprintf(w, "%s (%d)\n", p.Path, len(p.Rows))
	renderRows(w, p.Rows)
}

func renderRows(w io.Writer, rows []views.Row) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	cols := views.Columns(rows)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  "+strings.Join(cols, "\t"))
	for _, r := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = cell(r[c])
		}
		fmt.Fprintln(tw, "  "+strings.Join(cells, "\t"))
	}
	_ = tw.Flush()
}

// cell formats one JSON value for a table.
func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return "-"
	case string:
		return x
	case float64:
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%.2f", x)
	case []any:
		return fmt.Sprintf("[%d items]", len(x))
	case map[string]any:
		raw, _ := json.Marshal(x)
		return string(raw)
	}
	return fmt.Sprint(v)
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
