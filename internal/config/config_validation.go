// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// applyDefaults fills in operational defaults for fields no source set.
// Secrets are never defaulted; validate rejects their absence instead.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "./autolot.db"
	}
	if cfg.App.SessionTTL == 0 {
		cfg.App.SessionTTL = 24 * time.Hour
	}
	if cfg.App.CSRFTokenTTL == 0 {
		cfg.App.CSRFTokenTTL = time.Hour
	}
	if cfg.ImageHost.RequestTimeout == 0 {
		cfg.ImageHost.RequestTimeout = 30 * time.Second
	}
	if cfg.Uploads.MaxFileBytes == 0 {
		cfg.Uploads.MaxFileBytes = 10 << 20 // 10 MiB
	}
	if cfg.Uploads.MaxFiles == 0 {
		cfg.Uploads.MaxFiles = 12
	}
	if cfg.RateLimit.LoginWindow == 0 {
		cfg.RateLimit.LoginWindow = 15 * time.Minute
	}
	if cfg.RateLimit.LoginMax == 0 {
		cfg.RateLimit.LoginMax = 5
	}
	if cfg.RateLimit.ContactWindow == 0 {
		cfg.RateLimit.ContactWindow = time.Hour
	}
	if cfg.RateLimit.ContactMax == 0 {
		cfg.RateLimit.ContactMax = 10
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.AdminPassword == "" && cfg.App.AdminPasswordBcrypt == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.CSRFSignKey == "" || cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.ImageHost.BaseURL == "" {
		return ErrInvalidImageHostConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
