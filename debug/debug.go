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

package debug

import (
	"sync/atomic"

	"github.com/cloudwego/licm/internal/licm"
)

// A Stats records statistics about the loop optimizer.
type Stats struct {
	Loops   LoopStats
	Hoisted int
	Rounds  int
}

// A LoopStats records how the optimizer dealt with the loops it visited.
type LoopStats struct {
	Visited int
	Skipped int
	Changed int
}

// GetStats returns statistics of the loop optimizer since the process started.
func GetStats() Stats {
	return Stats{
		Loops: LoopStats{
			Visited: int(atomic.LoadUint64(&licm.LoopCount)),
			Skipped: int(atomic.LoadUint64(&licm.SkipCount)),
			Changed: int(atomic.LoadUint64(&licm.ChangeCount)),
		},
		Hoisted: int(atomic.LoadUint64(&licm.HoistCount)),
		Rounds:  int(atomic.LoadUint64(&licm.RoundCount)),
	}
}
