// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

// Package tagconf aggregates key-value configuration from multiple stores
// (environment, properties, encrypted properties, ini, dotenv, json, yaml, toml, flags,
// in-memory objects), resolves keys according to an ordered list of environment tags
// and converts raw string values into the requested Go types.
//
// A value is tagged either through the "@tag." key prefix (for example "@prod.db.url")
// or, for ini files, through the section it is declared under.
// Given the active tags, a key is resolved by looking first for entries tagged with
// the most specific tag (scanning stores in registration order), then with the next tag,
// and so on; untagged entries are the fallback.
package tagconf
