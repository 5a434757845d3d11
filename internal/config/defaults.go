package config

import "time"

const (
	defaultTokenIssuer    = "cryptpix"
	defaultTokenTTL       = 5 * time.Minute
	defaultBleedPasses    = 1
	defaultMaxUploadSize  = 20 << 20
	defaultDBDriver       = DriverSQLite
	defaultSQLiteDSN      = "file:cryptpix.db?_foreign_keys=on"
	defaultFilesDir       = "media"
	defaultHTTPAddress    = "localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultClientTimeout  = 30 * time.Second
)

func defaults() *StructuredConfig {
	useSplit, useDistortion := true, true

	return &StructuredConfig{
		App: App{
			TokenIssuer:          defaultTokenIssuer,
			TokenTTL:             defaultTokenTTL,
			BleedPasses:          defaultBleedPasses,
			MaxUploadSize:        defaultMaxUploadSize,
			DefaultUseSplit:      &useSplit,
			DefaultUseDistortion: &useDistortion,
		},
		Storage: Storage{
			DB:    DB{Driver: defaultDBDriver},
			Files: Files{Dir: defaultFilesDir},
		},
		Server: Server{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultHTTPAddress,
			RequestTimeout: defaultClientTimeout,
		},
	}
}

// fillDerived sets defaults that depend on other merged values.
func (cfg *StructuredConfig) fillDerived() {
	if cfg.Storage.DB.DSN == "" && cfg.Storage.DB.Driver == DriverSQLite {
		cfg.Storage.DB.DSN = defaultSQLiteDSN
	}
}
