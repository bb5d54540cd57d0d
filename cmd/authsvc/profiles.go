package main

import (
	"errors"
	"fmt"
)

// ErrUnknownEnvironment is returned for an Environment value with no profile.
var ErrUnknownEnvironment = errors.New("unknown environment")

// Environment profiles, each binding a storage location. The secret key and
// every other setting stay overridable through the environment; profiles only
// fill in values the operator left blank.
const (
	envDevelopment = "development"
	envTesting     = "testing"
	envProduction  = "production"
)

//nolint:gochecknoglobals
var profileDatabasePaths = map[string]string{
	envDevelopment: "var/storage/authsvc-development.db",
	envTesting:     "var/storage/authsvc-test.db",
	envProduction:  "var/storage/authsvc.db",
}

// applyProfile resolves cfg.Environment to a named profile and applies its
// defaults to fields that were not set explicitly.
func applyProfile(cfg *Config) error {
	databasePath, ok := profileDatabasePaths[cfg.Environment]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEnvironment, cfg.Environment)
	}

	if cfg.User.DatabasePath == "" {
		cfg.User.DatabasePath = databasePath
	}

	return nil
}
