// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"errors"
)

// IgnoreErrorStore decorates another store so that a failure matching (by [errors.Is])
// one of errs is treated as a store with no entries.
// Optional files are the usual case: ignore [fs.ErrNotExist] for a file based store.
func IgnoreErrorStore(store Store, errs ...error) Store {
	return StoreFunc(func() ([]Entry, error) {
		entries, err := store.Entries()
		if err != nil {
			for _, ignoreErr := range errs {
				if errors.Is(err, ignoreErr) {
					return []Entry{}, nil
				}
			}
		}

		return entries, err
	})
}
