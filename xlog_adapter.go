// Copyright The ActForGood Authors.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://github.com/actforgood/tagconf/blob/main/LICENSE.

package tagconf

import (
	"github.com/actforgood/xlog"
)

// LogLevelProvider provides a level read from a Configuration.
// It can be used to configure log level for a xlog.Logger.
// If the level configuration key is not found, or it holds an unknown level label,
// the default provided level is returned.
func LogLevelProvider(
	config *Configuration,
	lvlKey string,
	defaultLvl string,
	levelLabels map[xlog.Level]string,
) xlog.LevelProvider {
	labeledLevels := flipLevelLabels(levelLabels)

	return func() xlog.Level {
		lvl, err := EvaluateToWithDefault(config, lvlKey, defaultLvl)
		if err != nil {
			lvl = defaultLvl
		}
		if level, found := labeledLevels[lvl]; found {
			return level
		}

		return labeledLevels[defaultLvl]
	}
}

// flipLevelLabels flips level labels map.
func flipLevelLabels(levelLabels map[xlog.Level]string) map[string]xlog.Level {
	flippedLevelLabels := make(map[string]xlog.Level, len(levelLabels))
	for lvl, label := range levelLabels {
		flippedLevelLabels[label] = lvl
	}

	return flippedLevelLabels
}

// LogErrorHandler is a handler which can be used in a Builder
// as error handler. It logs the error with a xlog.Logger.
// Passed parameter is a function that returns the logger (Logger and Configuration may depend
// one of each other, this way we can instantiate them separately...)
func LogErrorHandler(loggerGetter func() xlog.Logger) func(error) {
	return func(err error) {
		loggerGetter().Error(
			xlog.MessageKey, "[tagconf] could not build configuration",
			xlog.ErrorKey, xlog.StackErr(err),
		)
	}
}
