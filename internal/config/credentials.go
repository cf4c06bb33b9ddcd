package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSecretsPath is where the credentials file is looked up when
// CATALOG_SECRETS is not set. The file must never be committed.
const DefaultSecretsPath = ".catalog/secrets.yaml"

// ErrNoCredentials is returned when the secrets file has no
// connections.catalog section.
var ErrNoCredentials = errors.New("secrets file has no connections.catalog section")

// Credentials describes how to reach the catalog database.
type Credentials struct {
	Dialect  string `yaml:"dialect"`  // postgres, mysql or sqlite
	Host     string `yaml:"host"`     // server host (ignored for sqlite)
	Port     int    `yaml:"port"`     // server port (ignored for sqlite)
	Database string `yaml:"database"` // database name, or file path for sqlite
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"` // postgres only, defaults to disable
}

type secretsFile struct {
	Connections struct {
		Catalog *Credentials `yaml:"catalog"`
	} `yaml:"connections"`
}

// LoadCredentials reads the YAML secrets file at path. A missing file, a
// malformed document or a missing connections.catalog section is an error;
// callers treat all of them as fatal.
func LoadCredentials(path string) (Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("read secrets file %s: %w", path, err)
	}
	var f secretsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Credentials{}, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	if f.Connections.Catalog == nil {
		return Credentials{}, fmt.Errorf("%s: %w", path, ErrNoCredentials)
	}
	c := *f.Connections.Catalog
	c.Dialect = strings.ToLower(strings.TrimSpace(c.Dialect))
	switch c.Dialect {
	case "", "postgresql":
		c.Dialect = "postgres"
	}
	if err := c.Validate(); err != nil {
		return Credentials{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Validate checks that the fields required by the dialect are present.
func (c Credentials) Validate() error {
	switch c.Dialect {
	case "sqlite":
		if c.Database == "" {
			return errors.New("connections.catalog.database is required")
		}
		return nil
	case "postgres", "mysql":
	default:
		return fmt.Errorf("connections.catalog.dialect %q is not supported", c.Dialect)
	}
	var missing []string
	if c.Host == "" {
		missing = append(missing, "host")
	}
	if c.Port <= 0 {
		missing = append(missing, "port")
	}
	if c.Database == "" {
		missing = append(missing, "database")
	}
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if len(missing) > 0 {
		return fmt.Errorf("connections.catalog is missing %s", strings.Join(missing, ", "))
	}
	return nil
}
