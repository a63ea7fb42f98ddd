// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLFileStore is a store of a YAML configuration file.
// Nested mappings are flattened, and top-level "@tag" mappings hold
// the keys bound to that tag.
func YAMLFileStore(filePath string) Store {
	return StoreFunc(func() ([]Entry, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return YAMLReaderStore(f).Entries()
	})
}

// YAMLReaderStore is a store of YAML configuration from an io.Reader.
func YAMLReaderStore(reader io.Reader) Store {
	return decodedStore(reader, func(r io.Reader, configMap *map[string]any) error {
		return yaml.NewDecoder(r).Decode(configMap)
	})
}
