// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// ClientConfig is the configuration container for the admin TUI binary.
// It is populated from environment variables only; the TUI takes no flags
// beyond the config file path.
type ClientConfig struct {
	// Adapter holds the connection settings for the autolot API server.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`

	// App holds client-side application settings.
	App ClientApp `envPrefix:"APP_"`
}

// ClientAdapter holds the API server connection settings for the admin client.
type ClientAdapter struct {
	// HTTPAddress is the address of the autolot API server,
	// in "host:port" or full URL form.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every API call issued by the client.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientApp holds client-side application settings.
type ClientApp struct {
	// PublicBaseURL is the public website root, used to compose the listing
	// URL that the TUI copies to the clipboard (e.g. "https://lot.example.com").
	// Env: APP_PUBLIC_BASE_URL
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// UploadsRoot is the path prefix applied to bare image filenames when
	// normalizing rows for display (e.g. "/uploads/").
	// Env: APP_UPLOADS_ROOT
	UploadsRoot string `env:"UPLOADS_ROOT"`
}

// GetClientConfig loads and validates the admin client configuration from
// environment variables.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, cfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = 30 * time.Second
	}
	if cfg.App.UploadsRoot == "" {
		cfg.App.UploadsRoot = "/uploads/"
	}
}
