// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"slices"
	"strings"
)

// FilterType is just an alias for byte.
type FilterType byte

const (
	// FilterTypeWhitelist represents a whitelist filter.
	FilterTypeWhitelist FilterType = 1
	// FilterTypeBlacklist represents a blacklist filter.
	FilterTypeBlacklist FilterType = 2
)

// EntryFilter is the contract for an entry filter.
type EntryFilter interface {
	// IsAllowed returns true if an entry is eligible to be returned by the store.
	IsAllowed(entry Entry) bool

	// Type returns filter's type (FilterTypeWhitelist / FilterTypeBlacklist).
	Type() FilterType
}

// The EntryWhitelistFunc type is an adapter to allow the use of
// ordinary functions as EntryFilter of "whitelist" type.
// fn should return true if the entry is whitelisted.
//
// Example:
//
//	tagconf.EntryWhitelistFunc(func(entry tagconf.Entry) bool {
//		return entry.Key == "KEEP_ME_1" || entry.Key == "KEEP_ME_2"
//	})
type EntryWhitelistFunc func(entry Entry) bool

// IsAllowed returns true if an entry is whitelisted.
func (filter EntryWhitelistFunc) IsAllowed(entry Entry) bool {
	return filter(entry)
}

// Type returns filter's type (FilterTypeWhitelist).
func (filter EntryWhitelistFunc) Type() FilterType {
	return FilterTypeWhitelist
}

// The EntryBlacklistFunc type is an adapter to allow the use of
// ordinary functions as EntryFilter of "blacklist" type.
// fn should return true if the entry is blacklisted.
type EntryBlacklistFunc func(entry Entry) bool

// IsAllowed returns false if an entry is blacklisted.
func (filter EntryBlacklistFunc) IsAllowed(entry Entry) bool {
	return !filter(entry)
}

// Type returns filter's type (FilterTypeBlacklist).
func (filter EntryBlacklistFunc) Type() FilterType {
	return FilterTypeBlacklist
}

// FilterStore decorates another store to whitelist/blacklist entries.
//
// A blacklist filter has more weight than a whitelist filter, as if a blacklist denies an entry
// and a whitelist allows it, that entry will not be returned.
//
// If there are only whitelist filters, an entry is returned if at least one filter allows it.
//
// If there are only blacklist filters, an entry is returned if no filter denies it.
func FilterStore(store Store, filters ...EntryFilter) Store {
	// make 2 buckets of filters.
	var (
		blacklistFilters = make([]EntryFilter, 0, len(filters))
		whitelistFilters = make([]EntryFilter, 0, len(filters))
	)
	for _, filter := range filters {
		switch filter.Type() {
		case FilterTypeWhitelist:
			whitelistFilters = append(whitelistFilters, filter)
		case FilterTypeBlacklist:
			blacklistFilters = append(blacklistFilters, filter)
		}
	}

	return StoreFunc(func() ([]Entry, error) {
		entries, err := store.Entries()
		if err != nil {
			return entries, err
		}

		return slices.DeleteFunc(entries, func(entry Entry) bool {
			for _, blFilter := range blacklistFilters {
				if !blFilter.IsAllowed(entry) {
					return true
				}
			}
			if len(whitelistFilters) == 0 {
				return false
			}
			for _, wlFilter := range whitelistFilters {
				if wlFilter.IsAllowed(entry) {
					return false
				}
			}

			return true
		}), nil
	})
}

// FilterKeyWithPrefix returns true if an entry's key has given prefix.
// It can be used as an EntryFilter like:
//
//	tagconf.EntryWhitelistFunc(tagconf.FilterKeyWithPrefix(prefix))
//	tagconf.EntryBlacklistFunc(tagconf.FilterKeyWithPrefix(prefix))
func FilterKeyWithPrefix(prefix string) func(entry Entry) bool {
	return func(entry Entry) bool {
		return strings.HasPrefix(entry.Key, prefix)
	}
}

// FilterKeyWithSuffix returns true if an entry's key has given suffix.
func FilterKeyWithSuffix(suffix string) func(entry Entry) bool {
	return func(entry Entry) bool {
		return strings.HasSuffix(entry.Key, suffix)
	}
}

// FilterExactKeys returns true if an entry's key is present in the provided list.
func FilterExactKeys(keys ...string) func(entry Entry) bool {
	return func(entry Entry) bool {
		return slices.Contains(keys, entry.Key)
	}
}

// FilterTags returns true if an entry is bound to one of the provided tags.
// Pass an empty tag to match untagged entries.
func FilterTags(tags ...string) func(entry Entry) bool {
	return func(entry Entry) bool {
		return slices.Contains(tags, entry.Tag)
	}
}

// FilterEmptyValue returns true if an entry's value is "".
// It can be used as an EntryFilter like:
//
//	tagconf.EntryBlacklistFunc(tagconf.FilterEmptyValue)
func FilterEmptyValue(entry Entry) bool {
	return entry.Value == ""
}
