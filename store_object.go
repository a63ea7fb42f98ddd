// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// taggedObject binds an object's keys to a tag.
type taggedObject struct {
	tag    string
	object any
}

// Tagged binds all the keys of an object passed to ObjectStore to the given tag.
func Tagged(tag string, object any) any {
	return taggedObject{tag: tag, object: object}
}

// ObjectStore is a store of in-memory objects: structs (or pointers to structs) and maps.
// Objects are decoded with mapstructure, so field names can be customized with
// `mapstructure:"name"` tags. Nested structs / maps are flattened with "." separator.
// Objects are read when the store gets populated.
//
// Usage example:
//
//	type DB struct {
//		Host string `mapstructure:"host"`
//		Port int    `mapstructure:"port"`
//	}
//	type App struct {
//		DB DB `mapstructure:"db"`
//	}
//	store := tagconf.ObjectStore(
//		App{DB: DB{Host: "localhost", Port: 5432}},
//		tagconf.Tagged("prod", App{DB: DB{Host: "db.example.com", Port: 5432}}),
//	)
func ObjectStore(objects ...any) Store {
	return StoreFunc(func() ([]Entry, error) {
		entries := make([]Entry, 0)
		for _, object := range objects {
			tag := ""
			if tagged, ok := object.(taggedObject); ok {
				tag, object = tagged.tag, tagged.object
			}

			configMap, err := decodeObject(object)
			if err != nil {
				return nil, err
			}
			objectEntries, err := entriesFromMap(flattenConfigMap(configMap))
			if err != nil {
				return nil, err
			}
			if tag != "" {
				for idx := range objectEntries {
					if !objectEntries[idx].IsTagged() {
						objectEntries[idx].Tag = tag
					}
				}
			}
			entries = append(entries, objectEntries...)
		}

		return entries, nil
	})
}

// decodeObject decodes a struct / map into a nested configuration map.
// Struct values found at any level get decoded too.
func decodeObject(object any) (map[string]any, error) {
	var configMap map[string]any
	if err := mapstructure.Decode(object, &configMap); err != nil {
		return nil, err
	}

	for key, value := range configMap {
		if _, isMap := value.(map[string]any); !isMap && !isStructValue(value) {
			continue
		}
		nested, err := decodeObject(value)
		if err != nil {
			return nil, err
		}
		configMap[key] = nested
	}

	return configMap, nil
}

// isStructValue checks if value is a struct or a pointer to a struct, time.Time excepted.
func isStructValue(value any) bool {
	if _, isTime := value.(time.Time); isTime {
		return false
	}
	rv := reflect.Indirect(reflect.ValueOf(value))

	return rv.Kind() == reflect.Struct
}
