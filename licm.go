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

// Package licm moves loop-invariant computations out of loops.
//
// Functions are built in SSA form with a Builder, and Optimize hoists every
// instruction that computes the same value on each iteration, and is safe to
// execute once before the loop, into the preheader of its loop.
package licm

import (
	"github.com/cloudwego/licm/internal/licm"
	"github.com/cloudwego/licm/internal/opts"
	"github.com/cloudwego/licm/internal/ssa"
)

type (
	Func       = ssa.Func
	BasicBlock = ssa.BasicBlock
	Instr      = ssa.Instr
	Builder    = ssa.Builder
	Loop       = ssa.Loop
	Op         = ssa.Op
	Trace      = ssa.Trace
)

// Binary operators accepted by (*Builder).Binary.
const (
	OpAdd = ssa.OpAdd
	OpSub = ssa.OpSub
	OpMul = ssa.OpMul
	OpDiv = ssa.OpDiv
	OpRem = ssa.OpRem
	OpAnd = ssa.OpAnd
	OpOr  = ssa.OpOr
	OpXor = ssa.OpXor
	OpShl = ssa.OpShl
	OpShr = ssa.OpShr
	OpEq  = ssa.OpEq
	OpNe  = ssa.OpNe
	OpLt  = ssa.OpLt
	OpLe  = ssa.OpLe
	OpGt  = ssa.OpGt
	OpGe  = ssa.OpGe
)

// CreateBuilder starts a new function, the builder is positioned at the entry
// block.
func CreateBuilder(name string) *Builder {
	return ssa.CreateBuilder(name)
}

// Optimize hoists loop-invariant instructions of fn into the preheaders of
// their loops, and reports whether fn was changed.
//
// Loops without a preheader are left untouched. fn is modified in place.
func Optimize(fn *Func, options ...Option) bool {
	o := opts.GetDefaultOptions()
	for _, opt := range options {
		opt(&o)
	}
	return licm.Optimize(fn, o)
}

// Verify checks that fn is well-formed, it returns a *VerifyError describing
// the first problem found.
func Verify(fn *Func) error {
	return ssa.Verify(fn)
}

// Dot renders the control flow graph of fn in Graphviz DOT format.
func Dot(fn *Func) ([]byte, error) {
	return ssa.Dot(fn)
}

// Interpret executes fn with the given arguments on a copy of mem, and gives
// up after fuel steps.
func Interpret(fn *Func, args []int64, mem []int64, fuel int) (*Trace, error) {
	return ssa.Interpret(fn, args, mem, fuel)
}
