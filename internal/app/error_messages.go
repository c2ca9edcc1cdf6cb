// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// autolot server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgValidationFailed is returned when a mutation carries one or more
	// rejected field values; the response body lists every failing field.
	MsgValidationFailed = "validation failed"

	// MsgUnauthorized is returned when the request has no valid admin
	// session, or a login attempt presented the wrong password. The two
	// cases share one message so the response never reveals which it was.
	MsgUnauthorized = "unauthorized"

	// MsgCSRFInvalid is returned when a mutation carries a missing or
	// unverifiable CSRF token. Paired with the csrf_invalid code it tells
	// the admin client to fetch a fresh token and retry once.
	MsgCSRFInvalid = "invalid or missing csrf token"

	// MsgTooManyRequests is returned when the per-address rate limiter
	// rejects a login or contact attempt.
	MsgTooManyRequests = "too many requests"

	// MsgNotFound is returned when the targeted vehicle or lead does not
	// exist.
	MsgNotFound = "not found"

	// MsgUploadFailed is returned when the image host rejects an upload;
	// the whole mutation is rolled back before this reaches the caller.
	MsgUploadFailed = "image upload failed"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"
)
