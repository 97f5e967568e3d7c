// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Cipher CipherConfig `toml:"cipher"`
	Attack AttackConfig `toml:"attack"`
	Bench  BenchConfig  `toml:"bench"`
	Server ServerConfig `toml:"server"`
}

// CipherConfig maps encrypt/decrypt defaults.
type CipherConfig struct {
	Key       *string `toml:"key"`
	A         *int    `toml:"a"`
	B         *int    `toml:"b"`
	MinKeyLen *int    `toml:"min-key-len"`
}

// AttackConfig maps cryptanalysis defaults.
type AttackConfig struct {
	MaxKeyLen  *int     `toml:"max-key-len"`
	Top        *int     `toml:"top"`
	Threshold  *float64 `toml:"threshold"`
	Dictionary *string  `toml:"dictionary"`
}

// BenchConfig maps efficiency harness defaults.
type BenchConfig struct {
	Sizes   []int `toml:"sizes"`
	Repeats *int  `toml:"repeats"`
}

// ServerConfig maps HTTP API settings.
type ServerConfig struct {
	Addr         *string  `toml:"addr"`
	AllowOrigins []string `toml:"allow-origins"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	return cfg, nil
}
