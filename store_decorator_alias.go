// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import "errors"

// ErrAliasPairBroken is an error returned by AliasStore when the variadic list of aliases
// and their keys consists of odd no. of elements.
var ErrAliasPairBroken = errors.New("alias - missing key")

// AliasStore decorates another store to set aliases for keys.
// For every entry of an aliased key, an entry with the same value and tag is added under
// the alias, after all the original entries. An alias is not added for a tag the store
// already has an entry of the alias key for, so existing keys keep their priority.
// The second parameter represents a list of alias and keys they're for
// under the form "aliasForKey1, key1, aliasForKey2, key2".
func AliasStore(store Store, aliasKeyKey ...string) Store {
	return StoreFunc(func() ([]Entry, error) {
		if len(aliasKeyKey)%2 == 1 {
			return nil, ErrAliasPairBroken
		}

		entries, err := store.Entries()
		if err != nil {
			return entries, err
		}

		aliases := make(map[string][]string, len(aliasKeyKey)/2)
		for i := 0; i < len(aliasKeyKey); i += 2 {
			aliases[aliasKeyKey[i+1]] = append(aliases[aliasKeyKey[i+1]], aliasKeyKey[i])
		}

		type tagKey struct{ tag, key string }
		existing := make(map[tagKey]struct{}, len(entries))
		for _, entry := range entries {
			existing[tagKey{entry.Tag, entry.Key}] = struct{}{}
		}

		result := make([]Entry, len(entries), len(entries)+len(aliasKeyKey)/2)
		copy(result, entries)
		for _, entry := range entries {
			for _, alias := range aliases[entry.Key] {
				aliasTagKey := tagKey{entry.Tag, alias}
				if _, found := existing[aliasTagKey]; found {
					continue
				}
				existing[aliasTagKey] = struct{}{}
				result = append(result, Entry{Key: alias, Value: entry.Value, Tag: entry.Tag})
			}
		}

		return result, nil
	})
}
