// Package client is the console's outbound transport to the Nestify backend.
//
// # Overview
//
//  1. Gateway decorates any Transport (an *http.Client in production) with
//     two hooks. beforeRequest attaches the bearer token of the current
//     session and a request id; afterResponse turns a 401 into a forced
//     logout plus a full navigation to the login view, and drops responses
//     that resolve after the session that issued them has ended.
//  2. APIClient is a small JSON client on top of the Gateway that joins
//     paths onto the API base URL and maps statuses to errors.
//
// # Forced logout
//
// The forced logout is keyed on the session generation captured when the
// request was issued. Of any number of concurrent requests rejected for the
// same session, only the first one to resolve clears it and redirects; the
// rest observe the cleared session and return ErrUnauthorized quietly.
//
// Requests made while exchanging credentials (context marked with
// WithCredentialExchange) are exempt: a 401 there means "wrong password",
// not "session expired", and is returned to the caller as an APIError.
//
// # Error Handling
//
// Sentinels for errors.Is: ErrUnauthorized, ErrUnavailable, ErrTransport,
// ErrStaleSession. Other non-2xx statuses surface as *APIError.
package client
