// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"encoding/json"
	"io"
	"os"
)

// JSONFileStore is a store of a JSON configuration file.
// Nested objects are flattened ("db": {"host": "x"} becomes "db.host"),
// and top-level "@tag" objects hold the keys bound to that tag.
func JSONFileStore(filePath string) Store {
	return StoreFunc(func() ([]Entry, error) {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		return JSONReaderStore(f).Entries()
	})
}

// JSONReaderStore is a store of JSON configuration from an [io.Reader].
func JSONReaderStore(reader io.Reader) Store {
	return decodedStore(reader, func(r io.Reader, configMap *map[string]any) error {
		return json.NewDecoder(r).Decode(configMap)
	})
}

// decodedStore returns a store of a nested configuration decoded from reader.
func decodedStore(reader io.Reader, decode func(io.Reader, *map[string]any) error) Store {
	return StoreFunc(func() ([]Entry, error) {
		if seekReader, ok := reader.(io.Seeker); ok {
			_, _ = seekReader.Seek(0, io.SeekStart) // move to the beginning in case of a re-read.
		}
		var configMap map[string]any
		if err := decode(reader, &configMap); err != nil {
			return nil, err
		}

		return entriesFromMap(flattenConfigMap(configMap))
	})
}
