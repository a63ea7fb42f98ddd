// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// tagPrefix marks a tagged key, like "@prod.db.host".
const tagPrefix = "@"

// Entry is a single key-value fact contributed by a Store.
type Entry struct {
	// Key is the configuration key, without any tag information.
	Key string
	// Value is the raw, not yet converted, value.
	Value string
	// Tag is the environment the entry is bound to.
	// An empty Tag means the entry is not bound to any environment.
	Tag string
}

// IsTagged returns true if the entry is bound to an environment tag.
func (entry Entry) IsTagged() bool {
	return entry.Tag != ""
}

// ParseTaggedKey splits a key of the form "@tag.key" into its tag and key.
// A key not following this form is returned as is, with an empty tag.
//
// Example: "@prod.db.host" => ("prod", "db.host").
func ParseTaggedKey(key string) (tag, plainKey string) {
	if !strings.HasPrefix(key, tagPrefix) {
		return "", key
	}
	rest := key[len(tagPrefix):]
	idx := strings.IndexByte(rest, keySeparator[0])
	if idx <= 0 || idx == len(rest)-1 {
		return "", key
	}

	return rest[:idx], rest[idx+1:]
}

// entriesFromMap transforms a (flat) configuration map into a list of entries,
// sorted by the original map key. Tagged keys are recognized.
func entriesFromMap(configMap map[string]any) ([]Entry, error) {
	keys := make([]string, 0, len(configMap))
	for key := range configMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		value, err := stringValue(configMap[key])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		tag, plainKey := ParseTaggedKey(key)
		entries = append(entries, Entry{Key: plainKey, Value: value, Tag: tag})
	}

	return entries, nil
}

// stringValue renders a decoded value as a raw configuration string.
// Lists are joined with comma.
func stringValue(value any) (string, error) {
	switch val := value.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	case []any, []string, []int:
		items, err := cast.ToStringSliceE(val)
		if err != nil {
			return "", err
		}

		return strings.Join(items, ","), nil
	}

	return cast.ToStringE(value)
}
