// Package config loads typed configuration structs from environment
// variables using struct tags, with optional .env file support.
//
// Configuration is parsed once per struct type and cached for the process
// lifetime, so independent components can load the same config without
// re-reading the environment:
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	config.MustLoad(&cfg)
//
// Supported tags follow github.com/caarlos0/env: `env:"NAME"`,
// `envDefault:"value"`, `env:"NAME,required"`, `envSeparator:","`.
package config
