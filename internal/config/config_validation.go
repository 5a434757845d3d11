// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] can run a server.
func (cfg *StructuredConfig) validate() error {
	app := cfg.App
	switch {
	case app.SecretKey == "":
		return fmt.Errorf("%w: secret key is required", ErrInvalidAppConfigs)
	case app.TokenIssuer == "":
		return fmt.Errorf("%w: token issuer is required", ErrInvalidAppConfigs)
	case app.TokenTTL <= 0:
		return fmt.Errorf("%w: token ttl must be positive", ErrInvalidAppConfigs)
	case app.MaxUploadSize <= 0:
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidAppConfigs)
	}

	db := cfg.Storage.DB
	if db.Driver != DriverPostgres && db.Driver != DriverSQLite {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, db.Driver)
	}
	if db.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Files.Dir == "" {
		return fmt.Errorf("%w: files dir is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
