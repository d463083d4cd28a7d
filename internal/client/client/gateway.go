package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// Transport sends one HTTP request. *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// SessionSource is the part of the session store the gateway depends on.
type SessionSource interface {
	Snapshot() (models.Session, uint64)
	Generation() uint64
	ExpireIfCurrent(ctx context.Context, generation uint64) (bool, error)
}

type credentialExchangeKey struct{}

// WithCredentialExchange marks ctx as carrying a login request, so an
// authorization rejection is returned to the caller instead of ending the
// session.
func WithCredentialExchange(ctx context.Context) context.Context {
	return context.WithValue(ctx, credentialExchangeKey{}, true)
}

func isCredentialExchange(ctx context.Context) bool {
	v, _ := ctx.Value(credentialExchangeKey{}).(bool)
	return v
}

// ticket records what the session looked like when a request was issued.
type ticket struct {
	generation    uint64
	authenticated bool
	exchange      bool
	requestID     string
}

type Gateway struct {
	next      Transport
	sessions  SessionSource
	nav       Navigator
	log       logging.Logger
	newID     func() string
	loginPath string
}

func NewGateway(next Transport, sessions SessionSource, nav Navigator, log logging.Logger) *Gateway {
	return &Gateway{
		next:      next,
		sessions:  sessions,
		nav:       nav,
		log:       log.With("component", "gateway"),
		newID:     uuid.NewString,
		loginPath: LoginPath,
	}
}

// Do sends req through the wrapped transport. The caller's request is not
// modified.
func (g *Gateway) Do(req *http.Request) (*http.Response, error) {
	out, t := g.beforeRequest(req)

	resp, err := g.next.Do(out)
	if err != nil {
		g.log.Warn(out.Context(), "request failed", "request_id", t.requestID, "method", out.Method, "url", out.URL.String(), "error", err.Error())
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return g.afterResponse(out, t, resp)
}

func (g *Gateway) beforeRequest(req *http.Request) (*http.Request, ticket) {
	ctx := req.Context()
	out := req.Clone(ctx)

	sess, generation := g.sessions.Snapshot()
	t := ticket{
		generation:    generation,
		authenticated: sess.IsAuthenticated(),
		exchange:      isCredentialExchange(ctx),
		requestID:     g.newID(),
	}

	out.Header.Del(AuthorizationHeader)
	if t.authenticated {
		out.Header.Set(AuthorizationHeader, bearerPrefix+sess.Token)
	}
	out.Header.Set(RequestIDHeader, t.requestID)

	g.log.Debug(ctx, "request", "request_id", t.requestID, "method", out.Method, "url", out.URL.String(), "authenticated", t.authenticated)
	return out, t
}

func (g *Gateway) afterResponse(req *http.Request, t ticket, resp *http.Response) (*http.Response, error) {
	ctx := req.Context()

	if t.exchange {
		return resp, nil
	}

	if resp.StatusCode == http.StatusUnauthorized {
		discard(resp)
		g.rejectSession(ctx, t)
		return nil, ErrUnauthorized
	}

	if g.sessions.Generation() != t.generation {
		discard(resp)
		g.log.Debug(ctx, "dropping stale response", "request_id", t.requestID, "status", resp.StatusCode)
		return nil, ErrStaleSession
	}

	return resp, nil
}

// rejectSession ends the session the request was issued under, if it is
// still the current one, and sends the user to the login view. Later
// rejections for the same session find it already cleared and do nothing.
func (g *Gateway) rejectSession(ctx context.Context, t ticket) {
	if !t.authenticated {
		return
	}

	expired, err := g.sessions.ExpireIfCurrent(ctx, t.generation)
	if err != nil {
		g.log.Error(ctx, "forced logout could not clear storage", "request_id", t.requestID, "error", err.Error())
	}
	if !expired {
		return
	}

	g.log.Warn(ctx, "authorization rejected, session ended", "request_id", t.requestID)
	g.nav.Redirect(g.loginPath)
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
