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
	"log/slog"
	"sync/atomic"

	"github.com/cloudwego/licm/internal/opts"
	"github.com/cloudwego/licm/internal/ssa"
)

var (
	LoopCount   uint64 = 0
	SkipCount   uint64 = 0
	ChangeCount uint64 = 0
	HoistCount  uint64 = 0
	RoundCount  uint64 = 0
)

// Optimize runs loop-invariant code motion over every loop of fn, innermost
// loops first, and repeats until a round changes nothing or the round limit
// is reached. Loops without a preheader are skipped.
func Optimize(fn *ssa.Func, o opts.Options) bool {
	log := o.Logger
	if log == nil {
		log = opts.Logger
	}

	/* analyze the function, hoisting never changes the CFG edges */
	dt := ssa.BuildDominatorTree(fn)
	lf := ssa.FindLoops(fn, dt)
	iv := ssa.NewInvariance()

	/* build the environment */
	env := &Env{
		Loops:       lf,
		Dom:         dt,
		Invariance:  iv,
		Speculation: ssa.Speculation{},
		OnHoist: func(ins *ssa.Instr, from *ssa.BasicBlock) {
			atomic.AddUint64(&HoistCount, 1)
			log.Debug("hoist",
				"Func", fn.Name,
				"Instr", ins.String(),
				"From", from.String(),
				"To", ins.Block.String(),
			)
		},
	}

	/* run the rounds */
	changed := false
	for n := 0; o.CanRun(n); n++ {
		atomic.AddUint64(&RoundCount, 1)
		if !optimizeRound(env, lf, iv, log) {
			log.Debug("converged", "Func", fn.Name, slog.Int("Rounds", n+1))
			break
		}
		changed = true
	}

	/* a broken function here is a bug of the pass */
	if o.Verify {
		if err := ssa.Verify(fn); err != nil {
			panic("licm: " + err.Error())
		}
	}
	return changed
}

func optimizeRound(env *Env, lf *ssa.LoopForest, iv *ssa.Invariance, log *slog.Logger) bool {
	changed := false
	for _, l := range lf.PostOrder() {
		atomic.AddUint64(&LoopCount, 1)

		/* preheader insertion is someone else's job */
		if l.Preheader() == nil {
			atomic.AddUint64(&SkipCount, 1)
			log.Debug("skip", "Loop", l.String(), "Reason", "no preheader")
			continue
		}

		/* cached facts are stale once anything moved */
		if ProcessLoop(env, l) {
			changed = true
			iv.Invalidate()
			atomic.AddUint64(&ChangeCount, 1)
		}
	}
	return changed
}
