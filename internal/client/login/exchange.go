package login

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/models"
	"github.com/dmitrijs2005/nestify/internal/client/services"
	"github.com/dmitrijs2005/nestify/internal/logging"
)

var (
	// ErrValidation means the form is incomplete, e.g. a short code.
	ErrValidation = errors.New("form is incomplete")
	// ErrActionUnavailable means the action does not exist in the current
	// mode or another exchange call is still running.
	ErrActionUnavailable = errors.New("action not available")
)

// NoticeKind tells the rendering layer how to style a Notice.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

// Notice is the transient, dismissible message produced by every outcome.
type Notice struct {
	Kind NoticeKind
	Text string
}

func success(text string) Notice { return Notice{Kind: NoticeSuccess, Text: text} }
func failure(text string) Notice { return Notice{Kind: NoticeError, Text: text} }

// SessionWriter is the part of the session store a completed exchange
// writes to.
type SessionWriter interface {
	Login(ctx context.Context, token string, user models.User) error
}

type Exchange struct {
	auth      services.AuthService
	sessions  SessionWriter
	nav       client.Navigator
	log       logging.Logger
	otpLength int

	mu    sync.Mutex
	state State
	busy  bool
}

// NewExchange builds an exchange in the initial state. otpLength <= 0
// selects DefaultOTPLength.
func NewExchange(auth services.AuthService, sessions SessionWriter, nav client.Navigator, otpLength int, log logging.Logger) *Exchange {
	if otpLength <= 0 {
		otpLength = DefaultOTPLength
	}
	return &Exchange{
		auth:      auth,
		sessions:  sessions,
		nav:       nav,
		log:       log.With("component", "login"),
		otpLength: otpLength,
		state:     New(),
	}
}

func (e *Exchange) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Exchange) OTPLength() int { return e.otpLength }

// Update applies a pure transition, e.g. State.EditPhone, to the current
// state and returns the result.
func (e *Exchange) Update(fn func(State) State) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = fn(e.state)
	return e.state
}

// Reset abandons the exchange and returns to the initial state.
func (e *Exchange) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = New()
}

// SubmitEmail exchanges the email form for a session. On failure the state
// is unchanged.
func (e *Exchange) SubmitEmail(ctx context.Context) (Notice, error) {
	s, err := e.begin(func(s State) error {
		if s.Mode != ModeEmail {
			return ErrActionUnavailable
		}
		if !s.CanSubmitEmail() {
			return fmt.Errorf("%w: email and password are required", ErrValidation)
		}
		return nil
	})
	if err != nil {
		return failure(err.Error()), err
	}
	defer e.end()

	tok, err := e.auth.Login(ctx, s.Email, s.Password)
	if err != nil {
		e.log.Info(ctx, "email login failed", "error", err.Error())
		return failure(detailOr(err, "Login failed")), err
	}
	if err := e.establish(ctx, tok); err != nil {
		return failure("Login failed"), err
	}
	return success("Welcome back!"), nil
}

// SendOTP requests a code for the entered phone and moves to ModeOTPSent.
func (e *Exchange) SendOTP(ctx context.Context) (Notice, error) {
	s, err := e.begin(func(s State) error {
		if s.Mode != ModePhone {
			return ErrActionUnavailable
		}
		if !s.CanSendOTP() {
			return fmt.Errorf("%w: phone number is required", ErrValidation)
		}
		return nil
	})
	if err != nil {
		return failure(err.Error()), err
	}
	defer e.end()

	sent, err := e.auth.SendOTP(ctx, s.Phone)
	if err != nil {
		e.log.Info(ctx, "otp request failed", "error", err.Error())
		return failure("Failed to send OTP"), err
	}

	e.mu.Lock()
	// the user may have switched away while the request was in flight
	applied := e.state.Mode == ModePhone && e.state.Phone == s.Phone
	if applied {
		e.state = e.state.codeSent(sent.DevCode)
	}
	e.mu.Unlock()

	if !applied {
		e.log.Debug(ctx, "otp result dropped after state change")
		return Notice{}, nil
	}
	if sent.DevCode != "" {
		return success(fmt.Sprintf("OTP sent! (Dev: %s)", sent.DevCode)), nil
	}
	return success("OTP sent!"), nil
}

// VerifyOTP exchanges the entered code for a session. It is only reachable
// from ModeOTPSent; a wrong code leaves the state in ModeOTPSent.
func (e *Exchange) VerifyOTP(ctx context.Context) (Notice, error) {
	s, err := e.begin(func(s State) error {
		if s.Mode != ModeOTPSent {
			return ErrActionUnavailable
		}
		if !s.CanVerifyOTP(e.otpLength) {
			return fmt.Errorf("%w: code must be %d digits", ErrValidation, e.otpLength)
		}
		return nil
	})
	if err != nil {
		return failure(err.Error()), err
	}
	defer e.end()

	tok, err := e.auth.VerifyOTP(ctx, s.Phone, s.Code, s.Name)
	if err != nil {
		e.log.Info(ctx, "otp verification failed", "error", err.Error())
		return failure(detailOr(err, "OTP verification failed")), err
	}
	if err := e.establish(ctx, tok); err != nil {
		return failure("OTP verification failed"), err
	}
	return success("Welcome!"), nil
}

// BeginOAuth fetches the provider URL and performs a full navigation to it.
// The exchange is finished out of process; CompleteOAuth handles the return.
func (e *Exchange) BeginOAuth(ctx context.Context) (Notice, error) {
	if _, err := e.begin(func(State) error { return nil }); err != nil {
		return failure(err.Error()), err
	}
	defer e.end()

	target, err := e.auth.GoogleURL(ctx)
	if err != nil {
		e.log.Info(ctx, "google url unavailable", "error", err.Error())
		return failure("Google login unavailable"), err
	}
	e.nav.Redirect(target)
	return success("Continue sign-in with Google"), nil
}

// CompleteOAuth finishes the redirect flow with the code returned by the
// identity provider.
func (e *Exchange) CompleteOAuth(ctx context.Context, code string) (Notice, error) {
	if code == "" {
		err := fmt.Errorf("%w: authorization code is required", ErrValidation)
		return failure(err.Error()), err
	}
	if _, err := e.begin(func(State) error { return nil }); err != nil {
		return failure(err.Error()), err
	}
	defer e.end()

	tok, err := e.auth.GoogleCallback(ctx, code)
	if err != nil {
		e.log.Info(ctx, "google callback failed", "error", err.Error())
		return failure(detailOr(err, "Google login failed")), err
	}
	if err := e.establish(ctx, tok); err != nil {
		return failure("Google login failed"), err
	}
	return success("Welcome!"), nil
}

// begin checks guard against the current state and marks the exchange busy.
// It returns the state snapshot the call works on.
func (e *Exchange) begin(guard func(State) error) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.busy {
		return State{}, fmt.Errorf("%w: another sign-in is in progress", ErrActionUnavailable)
	}
	if err := guard(e.state); err != nil {
		return State{}, err
	}
	e.busy = true
	return e.state, nil
}

func (e *Exchange) end() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.busy = false
}

// establish hands the issued pair to the session store and leaves the
// exchange for the main view.
func (e *Exchange) establish(ctx context.Context, tok *services.TokenResponse) error {
	if err := e.sessions.Login(ctx, tok.AccessToken, tok.User); err != nil {
		e.log.Error(ctx, "could not store session", "error", err.Error())
		return err
	}
	e.Reset()
	e.nav.Navigate(client.HomePath)
	return nil
}

// detailOr returns the backend's detail text for err, or fallback.
func detailOr(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
