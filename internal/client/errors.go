// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrLoginRejected means the server refused the supplied password.
	ErrLoginRejected = errors.New("login rejected")

	// ErrUnauthenticated means the session cookie is missing, expired, or
	// was destroyed server-side. The TUI returns to the login screen.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrCSRFRejected means the server refused the CSRF token. The API
	// client refreshes the token and retries once before surfacing this.
	ErrCSRFRejected = errors.New("csrf token rejected")

	// ErrRateLimited means the server is throttling this client address.
	ErrRateLimited = errors.New("rate limited, try again later")

	// ErrNotFound means the targeted vehicle or lead no longer exists.
	ErrNotFound = errors.New("record not found")

	// ErrValidation wraps field-level rejections reported by the server.
	ErrValidation = errors.New("validation failed")

	// ErrServer covers upload failures and other server-side errors the
	// client cannot resolve.
	ErrServer = errors.New("server error")
)
