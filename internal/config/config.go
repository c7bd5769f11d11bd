// Package config loads the module's TOML configuration file: where to
// find a Polyglot opening book, where to keep its Badger-backed cache,
// and the default log level for tools that embed this module.
package config

import "github.com/BurntSushi/toml"

// Config holds every setting the board core's sibling tools (book
// loading, the fencheck CLI) read from disk rather than a flag.
type Config struct {
	BookPath string `toml:"book_path"`
	CacheDir string `toml:"cache_dir"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in configuration used when no file is
// supplied or found.
func Default() *Config {
	return &Config{
		BookPath: "book.bin",
		CacheDir: "book-cache",
		LogLevel: "NOTICE",
	}
}

// Load reads and decodes a TOML config file, filling in defaults for any
// field the file leaves unset.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
