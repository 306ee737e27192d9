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

package licm

import (
	"fmt"
	"log/slog"

	"github.com/cloudwego/licm/internal/opts"
)

// Option is the property setter function for opts.Options.
type Option func(*opts.Options)

// WithMaxRounds sets the maximum number of rounds over the whole function.
//
// Every round visits each loop once, innermost loops first, and the pass stops
// early once a round hoists nothing.
//
// Set this option to "0" disables this limit, which means running until
// nothing changes.
//
// The default value of this option is "4".
func WithMaxRounds(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("licm: invalid max rounds: %d", n))
	} else {
		return func(o *opts.Options) { o.MaxRounds = n }
	}
}

// WithVerify checks the function after optimizing, and panics if it is no
// longer well-formed.
//
// The default value of this option is "false".
func WithVerify(v bool) Option {
	return func(o *opts.Options) { o.Verify = v }
}

// WithLogger sets the logger that receives a debug record for every hoisted
// instruction and every skipped loop.
//
// A nil logger restores the default one.
func WithLogger(l *slog.Logger) Option {
	return func(o *opts.Options) {
		if l != nil {
			o.Logger = l
		} else {
			o.Logger = opts.Logger
		}
	}
}

// SetMaxRounds sets the default maximum number of rounds for all functions
// from now on.
//
// This value can also be configured with the `LICM_MAX_ROUNDS` environment
// variable.
//
// The default value of this option is "4".
//
// Returns the old opts.MaxRounds value.
func SetMaxRounds(n int) int {
	n, opts.MaxRounds = opts.MaxRounds, n
	return n
}

// SetVerify turns verification on or off for all functions from now on.
//
// This value can also be configured with the `LICM_VERIFY` environment
// variable.
//
// Returns the old opts.Verify value.
func SetVerify(v bool) bool {
	v, opts.Verify = opts.Verify, v
	return v
}
