// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

// EnvConfigMap exposes EnvStore's env pairs parsing to tests.
func EnvConfigMap(envs []string, opts ...EnvStoreOption) map[string]any {
	var cfg envStoreConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg.configMap(envs)
}
