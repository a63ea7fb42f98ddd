// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"os"
	"strings"
)

// EnvStore is a store of the OS's ENV (the "system properties" of the process).
// Variables are read when the store is populated.
// Names following the "@tag." form are bound to that tag.
func EnvStore(opts ...EnvStoreOption) Store {
	var cfg envStoreConfig

	// apply options, if any.
	for _, opt := range opts {
		opt(&cfg)
	}

	return StoreFunc(func() ([]Entry, error) {
		return entriesFromMap(cfg.configMap(os.Environ()))
	})
}

// configMap transforms "name=value" env pairs into a configuration map.
func (cfg envStoreConfig) configMap(envs []string) map[string]any {
	configMap := make(map[string]any, len(envs))
	const kvSeparator = '='
	for _, env := range envs {
		for i := range len(env) {
			if env[i] == kvSeparator {
				if i == 0 { // Windows "=C:=C:\dir" like entries
					break
				}
				if key, ok := cfg.key(env[:i]); ok {
					configMap[key] = env[i+1:]
				}

				break
			}
		}
	}

	return configMap
}

// envStoreConfig holds EnvStore's options.
type envStoreConfig struct {
	// prefix, if not empty, restricts the variables to those having it.
	prefix string
}

// key returns the configuration key for an env name, and whether the env is eligible.
func (cfg envStoreConfig) key(envName string) (string, bool) {
	if cfg.prefix == "" {
		return envName, true
	}
	if !strings.HasPrefix(envName, cfg.prefix) || len(envName) == len(cfg.prefix) {
		return "", false
	}

	return envName[len(cfg.prefix):], true
}

// EnvStoreOption defines optional function for configuring an EnvStore.
type EnvStoreOption func(*envStoreConfig)

// EnvStoreWithPrefix keeps only the variables having the given prefix,
// and strips the prefix from their names.
//
// Example: with prefix "APP_", "APP_DB_HOST" becomes "DB_HOST", while "HOME" is ignored.
func EnvStoreWithPrefix(prefix string) EnvStoreOption {
	return func(cfg *envStoreConfig) {
		cfg.prefix = prefix
	}
}
