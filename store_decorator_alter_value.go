// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"slices"
	"strings"
)

// AlterValueFunc is a function that manipulates an entry's raw value.
type AlterValueFunc func(value string) string

// AlterValueStore decorates another store to manipulate entries' values.
// The transformation function is applied to all entries of passed keys, whatever their tag is.
func AlterValueStore(store Store, transformation AlterValueFunc, keys ...string) Store {
	return StoreFunc(func() ([]Entry, error) {
		entries, err := store.Entries()
		if err != nil {
			return entries, err
		}

		for idx := range entries {
			if slices.Contains(keys, entries[idx].Key) {
				entries[idx].Value = transformation(entries[idx].Value)
			}
		}

		return entries, nil
	})
}

// TrimSpaceValue removes leading and trailing white space from a value.
//
// Example: "  localhost\t" => "localhost".
func TrimSpaceValue() AlterValueFunc {
	return strings.TrimSpace
}

// NormalizeListSeparator rewrites a list, who's items are separated by
// given separator parameter, into a comma separated list (the form list
// values of structured files get).
// Items are trimmed.
//
// Example: "bread; eggs; milk" => "bread,eggs,milk".
func NormalizeListSeparator(sep string) AlterValueFunc {
	return func(value string) string {
		items := strings.Split(value, sep)
		for idx, item := range items {
			items[idx] = strings.TrimSpace(item)
		}

		return strings.Join(items, ",")
	}
}
