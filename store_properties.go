// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"os"

	"github.com/magiconair/properties"
)

// PropertiesFileStore is a store of .properties configuration files.
// If the same key is found in more files, the later file wins.
// Keys of the form "@tag.key" are bound to that tag.
func PropertiesFileStore(filePaths ...string) Store {
	return StoreFunc(func() ([]Entry, error) {
		contents := make([][]byte, 0, len(filePaths))
		for _, filePath := range filePaths {
			content, err := os.ReadFile(filePath)
			if err != nil {
				return nil, err
			}
			contents = append(contents, content)
		}

		return PropertiesBytesStore(contents...).Entries()
	})
}

// PropertiesBytesStore is a store of .properties configuration contents.
// If the same key is found in more contents, the later content wins.
// Each content is parsed on its own, "${key}" expansion is applied.
func PropertiesBytesStore(contents ...[]byte) Store {
	return StoreFunc(func() ([]Entry, error) {
		loader := properties.Loader{
			Encoding:         properties.UTF8,
			DisableExpansion: false,
		}

		configMap := make(map[string]any)
		for _, content := range contents {
			props, err := loader.LoadBytes(content)
			if err != nil {
				return nil, err
			}
			for _, key := range props.Keys() {
				value, _ := props.Get(key)
				configMap[key] = value
			}
		}

		return entriesFromMap(configMap)
	})
}
