// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// errBadJSON is returned when a request body cannot be decoded.
	errBadJSON = errors.New("invalid JSON body")

	// errBadMultipart is returned when a mutation request's multipart form
	// cannot be parsed or exceeds the size ceiling.
	errBadMultipart = errors.New("invalid multipart form")

	// errBadID is returned when a path id parameter is not a positive
	// integer.
	errBadID = errors.New("invalid id")

	// errSessionMissingFromContext signals a session-protected handler that
	// ran without the sessionAuth middleware. This is a routing bug, not a
	// client error.
	errSessionMissingFromContext = errors.New("no session in request context")
)
