package config

import (
	"github.com/spf13/viper"
)

// Defaults reproduce the tool's historical fixed paths: the manifest at
// the repo root, declarations under types/.
const (
	DefaultManifest       = "Cargo.toml"
	DefaultOutput         = "types"
	DefaultTimeoutSeconds = 30
)

// SetDefaults applies configuration defaults to a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("manifest", DefaultManifest)
	v.SetDefault("output", DefaultOutput)
	v.SetDefault("http.timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("log.json", false)
}
