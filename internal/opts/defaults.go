/*
 * Copyright 2022 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package opts

import (
	"io"
	"log/slog"
	"os"
	"strconv"
)

const (
	_DefaultMaxRounds = 4 // cutoff at 4 rounds over the whole function
)

var (
	MaxRounds = parseOrDefault("LICM_MAX_ROUNDS", _DefaultMaxRounds, 1)
	Verify    = parseBoolOrDefault("LICM_VERIFY", false)
	Debug     = parseBoolOrDefault("LICM_DEBUG", false)
)

// Logger is the default logger of the pass. It discards everything unless
// LICM_DEBUG is set, in which case debug records go to stderr as JSON.
var Logger = newLogger(Debug)

func parseOrDefault(key string, def int, min int) int {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseUint(env, 0, 64); err != nil {
		panic("licm: invalid value for " + key)
	} else if ret := int(val); ret < min {
		panic("licm: value too small for " + key)
	} else {
		return ret
	}
}

func parseBoolOrDefault(key string, def bool) bool {
	if env := os.Getenv(key); env == "" {
		return def
	} else if val, err := strconv.ParseBool(env); err != nil {
		panic("licm: invalid value for " + key)
	} else {
		return val
	}
}

func newLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
