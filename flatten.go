// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import "github.com/spf13/cast"

// keySeparator separates the levels of a nested configuration key.
const keySeparator = "."

// flattenConfigMap returns a new configuration map holding only leaves of
// the given nested configuration, under their flat keys.
//
// Example, given the configuration:
//
//	{
//	  "mysql": {
//	    "host": "127.0.0.1",
//	    "port": 3306
//	  },
//	  "@prod": {
//	    "mysql": {
//	      "host": "10.0.0.7"
//	    }
//	  }
//	}
//
// the result is: "mysql.host", "mysql.port", "@prod.mysql.host".
func flattenConfigMap(configMap map[string]any) map[string]any {
	flatConfigMap := make(map[string]any, len(configMap))
	flattenInto(0, "", configMap, flatConfigMap)

	return flatConfigMap
}

// flattenInto appends flat keys of currConfigMap to finalConfigMap.
func flattenInto(lvl uint, prevKey string, currConfigMap, finalConfigMap map[string]any) {
	for key, value := range currConfigMap {
		flatKey := key
		if lvl > 0 {
			flatKey = prevKey + keySeparator + key
		}

		switch val := value.(type) {
		case map[string]any:
			flattenInto(lvl+1, flatKey, val, finalConfigMap)
		case map[any]any:
			flattenInto(lvl+1, flatKey, cast.ToStringMap(val), finalConfigMap)
		default:
			finalConfigMap[flatKey] = value
		}
	}
}
