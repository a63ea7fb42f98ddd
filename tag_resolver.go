// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"os"
	"strings"
)

// DefaultTagsEnvName is the environment variable the default TagResolver reads
// the active tags from, comma separated, most specific first.
const DefaultTagsEnvName = "TAGCONF_TAGS"

// TagResolver provides the initial active tags, most specific first.
type TagResolver interface {
	// Tags returns the active tags.
	Tags() []string
}

// The TagResolverFunc type is an adapter to allow the use of
// ordinary functions as TagResolvers.
type TagResolverFunc func() []string

// Tags calls fn().
func (fn TagResolverFunc) Tags() []string {
	return fn()
}

// EnvTagResolver reads the tags from the given environment variable,
// as a comma separated list.
func EnvTagResolver(envName string) TagResolver {
	return TagResolverFunc(func() []string {
		return SplitTags(os.Getenv(envName))
	})
}

// StaticTagResolver returns always the given tags.
func StaticTagResolver(tags ...string) TagResolver {
	return TagResolverFunc(func() []string {
		return append([]string(nil), tags...)
	})
}

// SplitTags splits a comma separated list of tags.
// Tags are trimmed, and empty ones are dropped.
//
// Example: " prod, eu-west,," => ["prod", "eu-west"].
func SplitTags(tags string) []string {
	result := make([]string, 0)
	for _, tag := range strings.Split(tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			result = append(result, tag)
		}
	}

	return result
}
