package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/client/repositories/storage"
	"github.com/dmitrijs2005/nestify/internal/client/session"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

const (
	testPhone = "9876543210"
	testCode  = "123456"
)

// fakeBackend implements the auth routes of the Nestify API.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	token := func(w http.ResponseWriter, u models.User) {
		writeJSON(w, http.StatusOK, map[string]any{"access_token": "tok-" + u.Name, "user": u})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "admin@nestify.com" || req.Password != "admin123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid credentials"})
			return
		}
		token(w, models.User{ID: 1, Name: "admin", Role: models.RoleAdmin})
	})
	mux.HandleFunc("POST /api/auth/otp/send", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Phone string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to " + req.Phone, "otp_dev": testCode})
	})
	mux.HandleFunc("POST /api/auth/otp/verify", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["otp"] != testCode {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Invalid or expired OTP"})
			return
		}
		name := req["name"]
		if name == "" {
			name = "User-3210"
		}
		token(w, models.User{ID: 7, Name: name, Role: models.RoleResident})
	})
	mux.HandleFunc("GET /api/auth/google/url", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"url": "https://accounts.example.com/o/oauth2/auth?client_id=x"})
	})
	mux.HandleFunc("GET /api/auth/google/callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("code") != "good" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Google authentication failed"})
			return
		}
		token(w, models.User{ID: 9, Name: "google", Role: models.RoleResident})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-admin" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid or expired token"})
			return
		}
		writeJSON(w, http.StatusOK, models.User{ID: 1, Name: "admin", Role: models.RoleAdmin})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type noopNavigator struct{ redirects int }

func (n *noopNavigator) Navigate(string) {}
func (n *noopNavigator) Redirect(string) { n.redirects++ }

type stack struct {
	svc      AuthService
	sessions *session.Store
	nav      *noopNavigator
}

func newStack(t *testing.T) *stack {
	t.Helper()
	srv := fakeBackend(t)

	sessions := session.NewStore(storage.NewMemoryStorage(), session.DefaultKeys("nestify_"), logging.Nop())
	require.NoError(t, sessions.Init(context.Background()))

	nav := &noopNavigator{}
	gw := client.NewGateway(srv.Client(), sessions, nav, logging.Nop())
	api, err := client.NewAPIClient(srv.URL+"/api", gw)
	require.NoError(t, err)

	return &stack{svc: NewAuthService(api), sessions: sessions, nav: nav}
}

func TestAuthService_Login(t *testing.T) {
	s := newStack(t)

	tok, err := s.svc.Login(context.Background(), "admin@nestify.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "tok-admin", tok.AccessToken)
	assert.Equal(t, models.RoleAdmin, tok.User.Role)
}

func TestAuthService_LoginRejectedKeepsSession(t *testing.T) {
	s := newStack(t)
	require.NoError(t, s.sessions.Login(context.Background(), "tok-admin", models.User{ID: 1, Role: models.RoleAdmin}))

	_, err := s.svc.Login(context.Background(), "admin@nestify.com", "wrong")
	require.ErrorIs(t, err, ErrCredentialRejected)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid credentials", apiErr.Detail)

	assert.True(t, s.sessions.IsAuthenticated())
	assert.Zero(t, s.nav.redirects)
}

func TestAuthService_OTPFlow(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	sent, err := s.svc.SendOTP(ctx, testPhone)
	require.NoError(t, err)
	assert.Equal(t, testCode, sent.DevCode)
	assert.Contains(t, sent.Message, testPhone)

	_, err = s.svc.VerifyOTP(ctx, testPhone, "000000", "")
	require.ErrorIs(t, err, ErrCredentialRejected)

	tok, err := s.svc.VerifyOTP(ctx, testPhone, testCode, "")
	require.NoError(t, err)
	assert.Equal(t, "User-3210", tok.User.Name)

	tok, err = s.svc.VerifyOTP(ctx, testPhone, testCode, "Asha")
	require.NoError(t, err)
	assert.Equal(t, "Asha", tok.User.Name)
}

func TestAuthService_Google(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	u, err := s.svc.GoogleURL(ctx)
	require.NoError(t, err)
	assert.Contains(t, u, "oauth2")

	tok, err := s.svc.GoogleCallback(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, int64(9), tok.User.ID)

	_, err = s.svc.GoogleCallback(ctx, "bad")
	require.ErrorIs(t, err, ErrCredentialRejected)
}

func TestAuthService_Me(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	require.NoError(t, s.sessions.Login(ctx, "tok-admin", models.User{ID: 1, Role: models.RoleAdmin}))
	u, err := s.svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Name)

	// a rejected identity probe is an expired session, not a bad credential
	require.NoError(t, s.sessions.Login(ctx, "tok-revoked", models.User{ID: 1, Role: models.RoleAdmin}))
	_, err = s.svc.Me(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrCredentialRejected)
	assert.False(t, s.sessions.IsAuthenticated())
	assert.Equal(t, 1, s.nav.redirects)
}

// stubAPI returns canned results without a network.
type stubAPI struct {
	body string
	err  error
}

func (s stubAPI) GetJSON(_ context.Context, _ string, _ url.Values, out any) error {
	return s.decode(out)
}

func (s stubAPI) PostJSON(_ context.Context, _ string, _, out any) error {
	return s.decode(out)
}

func (s stubAPI) decode(out any) error {
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.body), out)
}

func TestAuthService_MissingTokenIsTransportFailure(t *testing.T) {
	svc := NewAuthService(stubAPI{body: `{"user":{"id":1}}`})
	_, err := svc.Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, client.ErrTransport)
}

func TestAuthService_TokenWithoutUserIsTransportFailure(t *testing.T) {
	for _, body := range []string{`{"access_token":"tok"}`, `{"access_token":"tok","user":null}`, `{"access_token":"tok","user":{}}`} {
		svc := NewAuthService(stubAPI{body: body})
		_, err := svc.Login(context.Background(), "a", "b")
		require.ErrorIs(t, err, client.ErrTransport, body)
	}
}

func TestAuthService_EmptyGoogleURL(t *testing.T) {
	svc := NewAuthService(stubAPI{body: `{}`})
	_, err := svc.GoogleURL(context.Background())
	require.ErrorIs(t, err, client.ErrTransport)
}

func TestAuthService_OtherFailuresUnchanged(t *testing.T) {
	unavailable := &client.APIError{Status: http.StatusServiceUnavailable}
	svc := NewAuthService(stubAPI{err: unavailable})

	_, err := svc.SendOTP(context.Background(), testPhone)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.NotErrorIs(t, err, ErrCredentialRejected)

	svc = NewAuthService(stubAPI{err: errors.Join(client.ErrTransport, io.ErrUnexpectedEOF)})
	_, err = svc.Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, client.ErrTransport)
}
