// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TOMLFileStore is a store of a TOML configuration file.
// Tables are flattened, and top-level "@tag" tables (quoted: ["@prod"]) hold
// the keys bound to that tag.
func TOMLFileStore(filePath string) Store {
	return StoreFunc(func() ([]Entry, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return TOMLReaderStore(f).Entries()
	})
}

// TOMLReaderStore is a store of TOML configuration from an io.Reader.
func TOMLReaderStore(reader io.Reader) Store {
	return decodedStore(reader, func(r io.Reader, configMap *map[string]any) error {
		return toml.NewDecoder(r).Decode(configMap)
	})
}
