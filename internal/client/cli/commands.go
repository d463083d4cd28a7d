package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/nestify/internal/client/access"
	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/login"
	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/client/nav"
)

var errNotSignedIn = errors.New("not signed in")

// Login prompts for email and password and submits the email form. Empty
// answers keep the prefilled values.
func (a *App) Login(ctx context.Context) error {
	st := a.exchange.Update(func(s login.State) login.State { return s.SwitchMode(login.TabEmail) })

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", st.Email), a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	a.exchange.Update(func(s login.State) login.State {
		return s.EditEmail(withDefault(email, s.Email)).EditPassword(withDefault(password, s.Password))
	})

	n, err := a.exchange.SubmitEmail(ctx)
	printNotice(a.out, n)
	return err
}

// Phone enters the number for the one-time code path.
func (a *App) Phone(ctx context.Context, number string) error {
	st := a.exchange.State()
	switch st.Mode {
	case login.ModeEmail:
		a.exchange.Update(func(s login.State) login.State { return s.SwitchMode(login.TabPhone) })
	case login.ModeOTPSent:
		printNotice(a.out, errorNotice("A code was already sent to "+st.Phone+"; use 'otp change' to edit the number"))
		return login.ErrActionUnavailable
	}

	a.exchange.Update(func(s login.State) login.State { return s.EditPhone(number) })
	a.nav.Navigate(client.LoginPath)
	return nil
}

func (a *App) SendOTP(ctx context.Context) error {
	n, err := a.exchange.SendOTP(ctx)
	printNotice(a.out, n)
	if err == nil {
		a.nav.Navigate(client.LoginPath)
	}
	return err
}

func (a *App) VerifyOTP(ctx context.Context, code, name string) error {
	a.exchange.Update(func(s login.State) login.State { return s.EditCode(code).EditName(name) })
	n, err := a.exchange.VerifyOTP(ctx)
	printNotice(a.out, n)
	return err
}

func (a *App) ChangeNumber(ctx context.Context) error {
	if a.exchange.State().Mode != login.ModeOTPSent {
		printNotice(a.out, errorNotice(login.ErrActionUnavailable.Error()))
		return login.ErrActionUnavailable
	}
	a.exchange.Update(login.State.ChangeNumber)
	a.nav.Navigate(client.LoginPath)
	return nil
}

func (a *App) SwitchMode(ctx context.Context, tab login.Tab) error {
	a.exchange.Update(func(s login.State) login.State { return s.SwitchMode(tab) })
	a.nav.Navigate(client.LoginPath)
	return nil
}

func (a *App) Google(ctx context.Context) error {
	n, err := a.exchange.BeginOAuth(ctx)
	printNotice(a.out, n)
	return err
}

func (a *App) GoogleCallback(ctx context.Context, code string) error {
	n, err := a.exchange.CompleteOAuth(ctx, code)
	printNotice(a.out, n)
	return err
}

func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.Logout(ctx)
	a.exchange.Reset()
	a.nav.Navigate(client.LoginPath)
	if err != nil {
		a.log.Error(ctx, "logout could not clear storage", "error", err.Error())
		printNotice(a.out, errorNotice("Signed out, but the local store could not be cleared"))
		return err
	}
	printNotice(a.out, okNotice("Signed out"))
	return nil
}

// WhoAmI prints the signed-in user; with refresh the identity is fetched
// from the backend instead of the stored session.
func (a *App) WhoAmI(ctx context.Context, refresh bool) error {
	sess := a.sessions.Current()
	if !sess.IsAuthenticated() {
		printNotice(a.out, errorNotice("Not signed in"))
		return errNotSignedIn
	}
	if !refresh {
		renderUser(a.out, sess.User, sess.ExpiresAt)
		return nil
	}

	u, err := a.auth.Me(ctx)
	if err != nil {
		a.report(ctx, err)
		return err
	}
	renderUser(a.out, u, sess.ExpiresAt)
	return nil
}

func (a *App) Menu(ctx context.Context) error {
	sess := a.sessions.Current()
	if !sess.IsAuthenticated() {
		printNotice(a.out, errorNotice("Sign in to see the menu"))
		return errNotSignedIn
	}
	renderMenu(a.out, nav.Entries(sess.Role()), a.nav.Current())
	return nil
}

// Open navigates to a view. A menu number (as printed by 'menu') is
// accepted in place of a path.
func (a *App) Open(ctx context.Context, target string) error {
	path := access.Clean(target)
	if idx, err := strconv.Atoi(target); err == nil && a.isLoggedIn() {
		entries := nav.Entries(a.sessions.Current().Role())
		if idx >= 1 && idx <= len(entries) {
			path = entries[idx-1].Path
		}
	}

	if d := a.gate.Resolve(path); d.Redirected {
		fmt.Fprintf(a.out, "-> %s\n", d.Path)
	}
	a.nav.Navigate(path)
	return nil
}

func (a *App) Theme(ctx context.Context, arg string) error {
	var err error
	switch strings.ToLower(arg) {
	case "":
	case "toggle":
		_, err = a.prefs.Toggle(ctx)
	default:
		err = a.prefs.Set(ctx, models.Theme(strings.ToLower(arg)))
	}
	if err != nil {
		printNotice(a.out, errorNotice(err.Error()))
		return err
	}
	fmt.Fprintf(a.out, "Theme: %s\n", a.prefs.Theme())
	return nil
}
