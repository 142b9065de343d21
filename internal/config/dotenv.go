package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// DotEnvPath returns the absolute path to pandora's dotenv file
// (~/.pandora/.env).
func DotEnvPath() (string, error) {
	dir, err := PandoraDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".env"), nil
}

// LoadDotEnv reads ~/.pandora/.env and returns its key/value pairs. A missing
// file yields an empty map.
func LoadDotEnv() (map[string]string, error) {
	p, err := DotEnvPath()
	if err != nil {
		return nil, err
	}
	m, err := godotenv.Read(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("cannot read dotenv file %s: %w", p, err)
	}
	return m, nil
}

// GetConfigValue returns the effective value for key, using process
// environment variables first and falling back to ~/.pandora/.env.
func GetConfigValue(key string) (string, error) {
	vals, err := GetConfigValues(key)
	if err != nil {
		return "", err
	}
	return vals[key], nil
}

// GetConfigValues is GetConfigValue for several keys, reading the dotenv file
// at most once.
func GetConfigValues(keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	var dotenv map[string]string
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			out[k] = v
			continue
		}
		if dotenv == nil {
			m, err := LoadDotEnv()
			if err != nil {
				return nil, err
			}
			dotenv = m
		}
		out[k] = strings.TrimSpace(dotenv[k])
	}
	return out, nil
}

// EnsureDotEnvTemplate creates ~/.pandora/.env if it does not already exist.
// The template lists every override key with an empty value. created reports
// whether a file was written.
func EnsureDotEnvTemplate() (created bool, err error) {
	p, err := DotEnvPath()
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(p); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("cannot stat dotenv file %s: %w", p, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return false, fmt.Errorf("cannot create %s: %w", filepath.Dir(p), err)
	}

	var b strings.Builder
	b.WriteString("# Overrides for ~/.pandora/pandora.yaml. Process environment wins.\n")
	for _, k := range EnvKeys {
		b.WriteString(k)
		b.WriteString("=\n")
	}
	if err := os.WriteFile(p, []byte(b.String()), 0o600); err != nil {
		return false, fmt.Errorf("cannot write dotenv template %s: %w", p, err)
	}
	return true, nil
}
