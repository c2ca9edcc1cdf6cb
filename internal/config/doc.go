// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads and merges the autolot configuration from environment
// variables, command-line flags and an optional JSON file.
//
// The server entry point is [GetStructuredConfig]; the admin TUI uses
// [GetClientConfig]. Sources are merged with mergo so that the first source
// to set a field wins (env over flags over JSON), after which operational
// defaults are applied and the result is validated.
package config
