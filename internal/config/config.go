// Package config loads connection and credential settings for a Poznote
// instance from the dotenv-style file at ~/.poznote.conf. Values already
// present in the process environment take precedence over file values.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

const (
	defaultConfigFilename = ".poznote.conf"
	defaultUserID         = "1"
	defaultWorkspace      = "Poznote"
)

// Keys recognized in the configuration file and environment.
const (
	keyURL              = "POZNOTE_URL"
	keyUser             = "POZNOTE_USER"
	keyPass             = "POZNOTE_PASS"
	keyUserID           = "POZNOTE_USER_ID"
	keyWorkspace        = "POZNOTE_WORKSPACE"
	keyAdvancedFeatures = "POZNOTE_ADVANCED_FEATURES"
)

// Reason discriminates configuration failures.
type Reason int

const (
	// MissingCredentials means POZNOTE_URL, POZNOTE_USER or POZNOTE_PASS
	// was absent from both the config file and the environment.
	MissingCredentials Reason = iota
	// AdvancedFeaturesDisabled means an advanced action was requested
	// while POZNOTE_ADVANCED_FEATURES is not "true".
	AdvancedFeaturesDisabled
)

// Error is returned for any invalid or insufficient configuration.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Config holds all settings for a single invocation. Immutable after Load.
type Config struct {
	BaseURL          string
	User             string
	Password         string
	UserID           string
	Workspace        string
	AdvancedFeatures bool
}

// DefaultPath returns the well-known config file location in the
// invoking user's home directory.
func DefaultPath() string {
	usr, err := user.Current()
	if err != nil {
		return defaultConfigFilename
	}
	return path.Join(usr.HomeDir, defaultConfigFilename)
}

// Load reads the config file at cfgPath (when present) and resolves every
// key against the process environment. A missing file is fine as long as
// the environment supplies the required keys.
func Load(fs afero.Fs, cfgPath string) (Config, error) {
	vals := map[string]string{}
	f, err := fs.Open(cfgPath)
	if err == nil {
		defer f.Close()
		vals, err = godotenv.Parse(f)
		if err != nil {
			return Config{}, &Error{
				Reason:  MissingCredentials,
				Message: fmt.Sprintf("cannot parse %s: %v", cfgPath, err),
			}
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("cannot open %s: %w", cfgPath, err)
	}

	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v, ok := vals[key]; ok && v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		BaseURL:   strings.TrimRight(get(keyURL, ""), "/"),
		User:      get(keyUser, ""),
		Password:  get(keyPass, ""),
		UserID:    get(keyUserID, defaultUserID),
		Workspace: get(keyWorkspace, defaultWorkspace),
		// Fail closed: only the literal "true" enables advanced actions.
		AdvancedFeatures: strings.EqualFold(get(keyAdvancedFeatures, ""), "true"),
	}

	if cfg.BaseURL == "" || cfg.User == "" || cfg.Password == "" {
		return Config{}, &Error{
			Reason:  MissingCredentials,
			Message: fmt.Sprintf("credentials missing in %s", cfgPath),
		}
	}
	return cfg, nil
}
