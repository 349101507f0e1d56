package web

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the HTTP shell's settings. The engine itself takes no
// configuration; everything here concerns the I/O boundary only.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `toml:"addr"`
	// MaxUploadBytes caps the accepted request body size.
	MaxUploadBytes int64 `toml:"max_upload_bytes"`
	// DefaultDesignLevel and DefaultContentLevel apply when the request
	// does not specify levels.
	DefaultDesignLevel  int `toml:"default_design_level"`
	DefaultContentLevel int `toml:"default_content_level"`
}

// DefaultConfig returns the server defaults: port 8080, 50 MB uploads,
// both dials at 7.
func DefaultConfig() Config {
	return Config{
		Addr:                ":8080",
		MaxUploadBytes:      50 << 20,
		DefaultDesignLevel:  7,
		DefaultContentLevel: 7,
	}
}

// LoadConfig reads a TOML config file over the defaults, so a partial
// file only overrides the keys it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config %s: %w", path, err)
	}
	return cfg, nil
}
