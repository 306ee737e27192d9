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
	"log/slog"
)

type Options struct {
	MaxRounds int
	Verify    bool
	Logger    *slog.Logger
}

// CanRun reports whether another round may start after n rounds have run.
// A zero MaxRounds removes the limit.
func (self *Options) CanRun(n int) bool {
	return self.MaxRounds > n || self.MaxRounds == 0
}

func GetDefaultOptions() Options {
	return Options{
		MaxRounds: MaxRounds,
		Verify:    Verify,
		Logger:    Logger,
	}
}
