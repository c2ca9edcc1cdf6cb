// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the autolot
// server. It aggregates all sub-configurations and is populated by merging
// values from environment variables, command-line flags, and an optional
// JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: the admin credential, token
	// signing keys and session lifetimes.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// ImageHost holds the remote image-hosting service settings used by the
	// image store adapter.
	ImageHost ImageHost `envPrefix:"IMAGE_HOST_"`

	// Uploads holds the upload ceilings enforced by the mutation service.
	Uploads Uploads `envPrefix:"UPLOADS_"`

	// RateLimit holds the login and contact-form rate limiting windows.
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`

	// Mail holds outbound SMTP settings for lead notifications. Lead email
	// is disabled when SMTPHost is empty.
	Mail Mail `envPrefix:"MAIL_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values controlling admin
// authentication and CSRF token lifecycle.
type App struct {
	// AdminPassword is the plain admin panel password. Ignored when
	// AdminPasswordBcrypt is set. Must be kept confidential.
	// Env: APP_ADMIN_PASSWORD
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// AdminPasswordBcrypt is an optional bcrypt hash of the admin password.
	// When set it takes precedence over AdminPassword.
	// Env: APP_ADMIN_PASSWORD_BCRYPT
	AdminPasswordBcrypt string `env:"ADMIN_PASSWORD_BCRYPT"`

	// CSRFSignKey is the secret key used to sign and verify CSRF tokens.
	// Must be kept confidential.
	// Env: APP_CSRF_SIGN_KEY
	CSRFSignKey string `env:"CSRF_SIGN_KEY"`

	// HashKey is the HMAC key used when digesting the configured admin
	// password for constant-time comparison. Distinct from CSRFSignKey.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// SessionTTL is the rolling session lifetime; the deadline is refreshed
	// on every authenticated request (e.g. "24h").
	// Env: APP_SESSION_TTL
	SessionTTL time.Duration `env:"SESSION_TTL"`

	// CSRFTokenTTL specifies how long an issued CSRF token remains valid.
	// Env: APP_CSRF_TOKEN_TTL
	CSRFTokenTTL time.Duration `env:"CSRF_TOKEN_TTL"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for the persistence backend.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN selects and configures the backend: a "postgres://" URI opens
	// PostgreSQL via pgx, anything else is treated as a SQLite file path
	// (e.g. "./autolot.db").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PublicOrigin is the origin of the public website
	// (e.g. "https://lot.example.com"). Contact submissions whose
	// browser-sent Origin or Referer points at a different host are
	// silently dropped. Empty disables the check.
	// Env: SERVER_PUBLIC_ORIGIN
	PublicOrigin string `env:"PUBLIC_ORIGIN"`
}

// ImageHost holds the remote image-hosting service connection settings.
type ImageHost struct {
	// BaseURL is the root endpoint of the image-hosting service API.
	// Env: IMAGE_HOST_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// APIKey authenticates upload and delete calls.
	// Env: IMAGE_HOST_API_KEY
	APIKey string `env:"API_KEY"`

	// Folder is the logical folder under which all listing images are stored.
	// Env: IMAGE_HOST_FOLDER
	Folder string `env:"FOLDER"`

	// RequestTimeout bounds every outbound call to the image host.
	// Env: IMAGE_HOST_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Uploads holds the ceilings applied to multipart image uploads.
type Uploads struct {
	// MaxFileBytes is the per-file size ceiling in bytes.
	// Env: UPLOADS_MAX_FILE_BYTES
	MaxFileBytes int64 `env:"MAX_FILE_BYTES"`

	// MaxFiles is the maximum number of files accepted in one mutation.
	// Env: UPLOADS_MAX_FILES
	MaxFiles int `env:"MAX_FILES"`
}

// RateLimit holds the per-IP rolling-window limits for failed logins and
// public contact submissions.
type RateLimit struct {
	// LoginWindow is the rolling window over which failed login attempts
	// are counted (e.g. "15m").
	// Env: RATE_LIMIT_LOGIN_WINDOW
	LoginWindow time.Duration `env:"LOGIN_WINDOW"`

	// LoginMax is the number of failed attempts per window after which all
	// further attempts from that address are rejected, correct password
	// included.
	// Env: RATE_LIMIT_LOGIN_MAX
	LoginMax int `env:"LOGIN_MAX"`

	// ContactWindow is the rolling window for public contact submissions.
	// Env: RATE_LIMIT_CONTACT_WINDOW
	ContactWindow time.Duration `env:"CONTACT_WINDOW"`

	// ContactMax is the number of contact submissions allowed per window.
	// Env: RATE_LIMIT_CONTACT_MAX
	ContactMax int `env:"CONTACT_MAX"`
}

// Mail holds outbound SMTP settings for fire-and-forget lead notifications.
type Mail struct {
	// SMTPHost enables lead email when non-empty.
	// Env: MAIL_SMTP_HOST
	SMTPHost string `env:"SMTP_HOST"`

	// SMTPPort is the SMTP server port (e.g. 587).
	// Env: MAIL_SMTP_PORT
	SMTPPort int `env:"SMTP_PORT"`

	// Username and Password authenticate against the SMTP server.
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// From is the sender address; To is the dealership inbox that receives
	// lead notifications.
	From string `env:"FROM"`
	To   string `env:"TO"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (first source
// wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
