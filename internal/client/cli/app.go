package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/nestify/internal/client/access"
	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/config"
	"github.com/dmitrijs2005/nestify/internal/client/login"
	"github.com/dmitrijs2005/nestify/internal/client/preferences"
	"github.com/dmitrijs2005/nestify/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nestify/internal/client/services"
	"github.com/dmitrijs2005/nestify/internal/client/session"
	"github.com/dmitrijs2005/nestify/internal/client/views"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

// maxSettle bounds how many chained navigations one command may cause.
const maxSettle = 4

type App struct {
	out    io.Writer
	reader *bufio.Reader
	log    logging.Logger
	closer io.Closer

	sessions *session.Store
	prefs    *preferences.Store
	auth     services.AuthService
	exchange *login.Exchange
	gate     *access.Gate
	loader   *views.Loader
	nav      *TerminalNavigator
}

// Deps are the collaborators an App is assembled from.
type Deps struct {
	Storage    storage.Storage
	Transport  client.Transport
	APIBaseURL string
	KeyPrefix  string
	OTPLength  int
	PreferDark bool
	Log        logging.Logger
	In         io.Reader
	Out        io.Writer
}

// NewApp opens the local store named in c and wires the console against
// the backend at c.APIBaseURL.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	st, err := storage.Open(ctx, c.StorePath)
	if err != nil {
		return nil, err
	}

	app, err := newApp(ctx, Deps{
		Storage:    st,
		Transport:  &http.Client{Timeout: c.HTTPTimeout},
		APIBaseURL: c.APIBaseURL,
		KeyPrefix:  c.StorageKeyPrefix,
		OTPLength:  c.OTPLength,
		PreferDark: c.PreferDark,
		Log:        log,
		In:         in,
		Out:        out,
	})
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	app.closer = st
	return app, nil
}

func newApp(ctx context.Context, d Deps) (*App, error) {
	sessions := session.NewStore(d.Storage, session.DefaultKeys(d.KeyPrefix), d.Log)
	if err := sessions.Init(ctx); err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	prefs := preferences.NewStore(d.Storage, d.KeyPrefix+"theme", d.PreferDark, d.Log)
	if err := prefs.Init(ctx); err != nil {
		return nil, fmt.Errorf("restore theme: %w", err)
	}

	gate := access.NewGate(sessions)
	nav := NewTerminalNavigator(d.Out, gate.Resolve(client.HomePath).Path)

	gw := client.NewGateway(d.Transport, sessions, nav, d.Log)
	api, err := client.NewAPIClient(d.APIBaseURL, gw)
	if err != nil {
		return nil, err
	}
	auth := services.NewAuthService(api)

	return &App{
		out:      d.Out,
		reader:   bufio.NewReader(d.In),
		log:      d.Log.With("component", "cli"),
		sessions: sessions,
		prefs:    prefs,
		auth:     auth,
		exchange: login.NewExchange(auth, sessions, nav, d.OTPLength, d.Log),
		gate:     gate,
		loader:   views.NewLoader(api),
		nav:      nav,
	}, nil
}

// Run renders the start view and serves commands until exit or EOF.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Nestify (type 'help' for commands)")
	a.nav.Navigate(a.nav.Current())
	a.settle(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *App) isLoggedIn() bool { return a.sessions.IsAuthenticated() }

// status is shown in the prompt: the current view, then the user and role
// or the sign-in step.
func (a *App) status() string {
	view := a.nav.Current()
	sess := a.sessions.Current()
	if sess.IsAuthenticated() {
		return fmt.Sprintf("%s %s (%s)", view, sess.User.Name, sess.Role())
	}
	return fmt.Sprintf("%s %s", view, a.exchange.State().Mode)
}

// settle renders whatever the last command navigated to. Rendering can
// itself navigate (a rejected fetch returns to the login view), so it
// repeats until nothing is pending.
func (a *App) settle(ctx context.Context) {
	for i := 0; i < maxSettle; i++ {
		requested, pending, forced := a.nav.take()
		if forced {
			printNotice(a.out, errorNotice(sessionEndedText))
		}
		if !pending {
			return
		}

		d := a.gate.Resolve(requested)
		a.nav.settle(d.Path)
		if d.Redirected {
			a.log.Debug(ctx, "navigation redirected", "requested", requested, "path", d.Path)
		}
		a.render(ctx, d.Path)
	}
}

func (a *App) render(ctx context.Context, path string) {
	switch path {
	case client.LoginPath:
		renderLogin(a.out, a.exchange.State(), a.exchange.OTPLength())

	case client.HomePath:
		d, err := a.loader.Dashboard(ctx, a.gate.Dashboard())
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderDashboard(a.out, d)

	default:
		p, err := a.loader.List(ctx, path)
		if err != nil {
			a.report(ctx, err)
			return
		}
		renderPage(a.out, p)
	}
}

func (a *App) report(ctx context.Context, err error) {
	a.log.Debug(ctx, "command failed", "error", err.Error())
	printNotice(a.out, failureNotice(err))
}
