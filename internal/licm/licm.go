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

// Package licm hoists loop-invariant instructions into loop preheaders.
package licm

import (
	"fmt"

	"github.com/cloudwego/licm/internal/ssa"
)

// LoopForest maps a block to the innermost loop containing it.
type LoopForest interface {
	LoopFor(bb *ssa.BasicBlock) *ssa.Loop
}

// Dominance answers whether every path to b passes through a.
type Dominance interface {
	Dominates(a *ssa.BasicBlock, b *ssa.BasicBlock) bool
}

// Invariance decides whether an instruction computes the same value on every
// iteration of a loop.
type Invariance interface {
	IsLoopInvariant(ins *ssa.Instr, l *ssa.Loop) bool
}

// Speculation decides whether an instruction can execute on paths where it
// originally would not have executed.
type Speculation interface {
	IsSafeToSpeculate(ins *ssa.Instr) bool
}

// Env is the read-only analysis environment shared by every loop of a
// function. OnHoist, when set, is called after each hoist with the block the
// instruction was moved out of.
type Env struct {
	Loops       LoopForest
	Dom         Dominance
	Invariance  Invariance
	Speculation Speculation
	OnHoist     func(ins *ssa.Instr, from *ssa.BasicBlock)
}

type _LoopContext struct {
	env       *Env
	loop      *ssa.Loop
	preheader *ssa.BasicBlock
	exits     []*ssa.BasicBlock
	changed   bool
}

// ProcessLoop hoists every invariant instruction of l that is safe to move
// into the preheader of l, and reports whether anything was hoisted.
// Instructions of nested loops are left alone, they are handled when their
// own loop is processed. The loop must have a preheader.
func ProcessLoop(env *Env, l *ssa.Loop) bool {
	ctx := &_LoopContext{
		env:       env,
		loop:      l,
		preheader: l.Preheader(),
		exits:     l.UniqueExitBlocks(),
	}

	/* the preheader is the only place to hoist into */
	if ctx.preheader == nil {
		panic(fmt.Sprintf("licm: loop %s has no preheader", l.Header))
	}

	/* only the blocks that belong to this loop directly */
	for _, bb := range l.Blocks() {
		if env.Loops.LoopFor(bb) == l {
			ctx.processBlock(bb)
		}
	}
	return ctx.changed
}

func (self *_LoopContext) processBlock(bb *ssa.BasicBlock) {
	ins := make([]*ssa.Instr, len(bb.Ins))
	copy(ins, bb.Ins)

	/* hoisting mutates the list, so walk the snapshot */
	for _, v := range ins {
		if self.env.Invariance.IsLoopInvariant(v, self.loop) && self.safeToHoist(v) {
			self.hoist(v)
		}
	}
}

// safeToHoist reports whether moving ins to the preheader cannot introduce a
// fault or side effect that the original program would not have had.
func (self *_LoopContext) safeToHoist(ins *ssa.Instr) bool {
	if self.env.Speculation.IsSafeToSpeculate(ins) {
		return true
	}

	/* the instruction must execute on every path that leaves the loop */
	for _, bb := range self.exits {
		if !self.env.Dom.Dominates(ins.Block, bb) {
			return false
		}
	}

	/* a loop without exits never leaves, so nothing is ever skipped */
	return true
}

func (self *_LoopContext) hoist(ins *ssa.Instr) {
	from := ins.Block
	ssa.MoveBefore(ins, self.preheader.Term)
	self.changed = true

	/* notify the observer if any */
	if self.env.OnHoist != nil {
		self.env.OnHoist(ins, from)
	}
}
