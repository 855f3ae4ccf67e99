package types

import "fmt"

// FetchError is a network or parse failure from an exchange collaborator.
// It is non-fatal: the affected fetch degrades to an empty result and the
// pipeline continues with whatever data is available.
type FetchError struct {
	Exchange string
	Op       string // "events", "markets" or "odds"
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch %s: %v", e.Exchange, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AuthError is an authorization failure from an exchange. It triggers at
// most one re-authentication and retry of the failing fetch; a second
// failure degrades to an empty result.
type AuthError struct {
	Exchange string
	Err      error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authorization failed: %v", e.Exchange, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
