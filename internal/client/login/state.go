// Package login implements the credential exchange: the email/password,
// phone one-time code and Google redirect paths that end in a session.
//
// State is a plain value with pure transitions; Exchange owns the current
// State and performs the backend calls that move it forward.
package login

import "strings"

// Mode is the step of the exchange the user is in.
type Mode int

const (
	ModeEmail   Mode = iota
	ModePhone        // phone entered, no code requested yet
	ModeOTPSent      // code requested for Phone, awaiting verification
)

func (m Mode) String() string {
	switch m {
	case ModeEmail:
		return "email"
	case ModePhone:
		return "phone"
	case ModeOTPSent:
		return "otp-sent"
	}
	return "unknown"
}

// Tab is the credential path the user picked.
type Tab string

const (
	TabEmail Tab = "email"
	TabPhone Tab = "phone"
)

const (
	DefaultEmail     = "admin@nestify.com"
	DefaultPassword  = "admin123"
	DefaultOTPLength = 6
)

// State is the transient form state. It is never persisted.
type State struct {
	Mode     Mode
	Email    string
	Password string
	Phone    string

	// Code, Name and DevCode only carry meaning in ModeOTPSent.
	Code    string
	Name    string
	DevCode string
}

// New returns the initial state: the email form with the demo credentials.
func New() State {
	return State{Mode: ModeEmail, Email: DefaultEmail, Password: DefaultPassword}
}

func (s State) Tab() Tab {
	if s.Mode == ModeEmail {
		return TabEmail
	}
	return TabPhone
}

// SwitchMode changes the credential path. Any pending code is discarded and
// the phone flow restarts from the number entry step.
func (s State) SwitchMode(t Tab) State {
	s = s.dropCode()
	switch t {
	case TabEmail:
		s.Mode = ModeEmail
	case TabPhone:
		s.Mode = ModePhone
	}
	return s
}

func (s State) EditEmail(email string) State {
	if s.Mode == ModeEmail {
		s.Email = strings.TrimSpace(email)
	}
	return s
}

func (s State) EditPassword(password string) State {
	if s.Mode == ModeEmail {
		s.Password = password
	}
	return s
}

// EditPhone is ignored once a code was sent; use ChangeNumber first.
func (s State) EditPhone(phone string) State {
	if s.Mode == ModePhone {
		s.Phone = strings.TrimSpace(phone)
	}
	return s
}

func (s State) EditCode(code string) State {
	if s.Mode == ModeOTPSent {
		s.Code = strings.TrimSpace(code)
	}
	return s
}

func (s State) EditName(name string) State {
	if s.Mode == ModeOTPSent {
		s.Name = strings.TrimSpace(name)
	}
	return s
}

// ChangeNumber returns from ModeOTPSent to number entry, discarding the
// pending code.
func (s State) ChangeNumber() State {
	if s.Mode != ModeOTPSent {
		return s
	}
	s = s.dropCode()
	s.Mode = ModePhone
	return s
}

// codeSent is applied when the backend accepted a code request for Phone.
func (s State) codeSent(devCode string) State {
	if s.Mode != ModePhone {
		return s
	}
	s = s.dropCode()
	s.Mode = ModeOTPSent
	s.DevCode = devCode
	return s
}

func (s State) dropCode() State {
	s.Code, s.Name, s.DevCode = "", "", ""
	return s
}

func (s State) CanSubmitEmail() bool {
	return s.Mode == ModeEmail && s.Email != "" && s.Password != ""
}

func (s State) CanSendOTP() bool {
	return s.Mode == ModePhone && s.Phone != ""
}

// CanVerifyOTP reports whether a code of exactly length characters was
// entered after a successful code request.
func (s State) CanVerifyOTP(length int) bool {
	return s.Mode == ModeOTPSent && s.Phone != "" && len(s.Code) == length
}
