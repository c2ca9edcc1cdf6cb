// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the admin-side API client for the autolot
// server.
//
// It bundles the resty transport with cookie-based session handling and a
// single CSRF refresh-and-retry, detection of the row shape the read API
// currently serves, normalization of heterogeneous image representations
// into flat display URL lists, and a sequence-tagged inventory fetcher that
// discards stale list responses.
package client
