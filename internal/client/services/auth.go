// Package services contains the typed backend calls used by the console.
// This file defines the authentication service: email/password login,
// phone one-time codes, the Google redirect flow and the identity probe.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/nestify/internal/client/client"
	"github.com/dmitrijs2005/nestify/internal/client/models"
)

// ErrCredentialRejected is returned when the backend refuses the presented
// credential (wrong password, invalid or expired code). It wraps the
// backend's *client.APIError so the detail text stays reachable.
var ErrCredentialRejected = errors.New("credentials rejected")

const (
	loginPath          = "/auth/login"
	otpSendPath        = "/auth/otp/send"
	otpVerifyPath      = "/auth/otp/verify"
	googleURLPath      = "/auth/google/url"
	googleCallbackPath = "/auth/google/callback"
	mePath             = "/auth/me"
)

// API is the JSON transport the service depends on. *client.APIClient
// satisfies it.
type API interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, in, out any) error
}

// TokenResponse is what every successful credential exchange returns.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	User        models.User `json:"user"`
}

// OTPSent is the reply to a code request. DevCode is a non-production echo
// of the generated code and may be empty.
type OTPSent struct {
	Message string `json:"message"`
	DevCode string `json:"otp_dev"`
}

// AuthService defines the authentication calls.
//
// Contract:
//   - Login, VerifyOTP and GoogleCallback exchange a credential for a token
//     and user; a refusal is reported as ErrCredentialRejected and never
//     ends the current session.
//   - SendOTP asks the backend to deliver a one-time code to phone.
//   - GoogleURL returns the identity provider URL to send the user to.
//   - Me returns the identity bound to the current bearer token.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*TokenResponse, error)
	SendOTP(ctx context.Context, phone string) (*OTPSent, error)
	VerifyOTP(ctx context.Context, phone, otp, name string) (*TokenResponse, error)
	GoogleURL(ctx context.Context) (string, error)
	GoogleCallback(ctx context.Context, code string) (*TokenResponse, error)
	Me(ctx context.Context) (*models.User, error)
}

type authService struct {
	api API
}

func NewAuthService(api API) AuthService {
	return &authService{api: api}
}

func (a *authService) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out TokenResponse
	if err := a.api.PostJSON(client.WithCredentialExchange(ctx), loginPath, req, &out); err != nil {
		return nil, credentialError(err)
	}
	return checkToken(&out)
}

func (a *authService) SendOTP(ctx context.Context, phone string) (*OTPSent, error) {
	req := struct {
		Phone string `json:"phone"`
	}{Phone: phone}

	var out OTPSent
	if err := a.api.PostJSON(client.WithCredentialExchange(ctx), otpSendPath, req, &out); err != nil {
		return nil, credentialError(err)
	}
	return &out, nil
}

func (a *authService) VerifyOTP(ctx context.Context, phone, otp, name string) (*TokenResponse, error) {
	req := struct {
		Phone string `json:"phone"`
		OTP   string `json:"otp"`
		Name  string `json:"name,omitempty"`
	}{Phone: phone, OTP: otp, Name: name}

	var out TokenResponse
	if err := a.api.PostJSON(client.WithCredentialExchange(ctx), otpVerifyPath, req, &out); err != nil {
		return nil, credentialError(err)
	}
	return checkToken(&out)
}

func (a *authService) GoogleURL(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := a.api.GetJSON(client.WithCredentialExchange(ctx), googleURLPath, nil, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: empty authorization url", client.ErrTransport)
	}
	return out.URL, nil
}

func (a *authService) GoogleCallback(ctx context.Context, code string) (*TokenResponse, error) {
	var out TokenResponse
	q := url.Values{"code": {code}}
	if err := a.api.GetJSON(client.WithCredentialExchange(ctx), googleCallbackPath, q, &out); err != nil {
		return nil, credentialError(err)
	}
	return checkToken(&out)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := a.api.GetJSON(ctx, mePath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// credentialError maps a 400/401 from a credential endpoint to
// ErrCredentialRejected. Other failures are returned unchanged.
func credentialError(err error) error {
	switch client.StatusOf(err) {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return fmt.Errorf("%w: %w", ErrCredentialRejected, err)
	}
	return err
}

func checkToken(t *TokenResponse) (*TokenResponse, error) {
	if t.AccessToken == "" {
		return nil, fmt.Errorf("%w: response without access token", client.ErrTransport)
	}
	if t.User.ID == 0 {
		return nil, fmt.Errorf("%w: response without user", client.ErrTransport)
	}
	return t, nil
}
