// Package config handles cutter's own settings.
// Tool settings are layered with koanf from embedded defaults, the user's
// config file and CUTTER_* environment variables. Individual templates may
// carry a .cutter.toml that overrides a subset of them.
package config
