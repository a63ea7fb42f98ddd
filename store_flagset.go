// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"errors"
	"flag"
)

// ErrFlagSetNotParsed is returned by [FlagSetStore] if flags were not parsed yet.
var ErrFlagSetNotParsed = errors.New("flag set is not parsed")

// FlagSetStore is a store of command line flags.
// The first parameter is the [flag.FlagSet] holding flags; it must be parsed
// by the time the store gets populated.
// The second, optional, parameter indicates if all flags (even those not explicitly set)
// should be taken into consideration; by default, is true.
func FlagSetStore(flgSet *flag.FlagSet, visitAll ...bool) Store {
	all := true
	if len(visitAll) > 0 {
		all = visitAll[0]
	}

	return StoreFunc(func() ([]Entry, error) {
		if !flgSet.Parsed() {
			return nil, ErrFlagSetNotParsed
		}

		configMap := make(map[string]any)
		storeFlagIntoMap := func(f *flag.Flag) {
			configMap[f.Name] = f.Value.String()
		}
		if all {
			flgSet.VisitAll(storeFlagIntoMap)
		} else {
			flgSet.Visit(storeFlagIntoMap)
		}

		return entriesFromMap(configMap)
	})
}
