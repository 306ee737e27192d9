/*
 * Copyright 2022 ByteDance Inc.
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

package ssa

import (
    `fmt`
)

type Op uint8

const (
    OpInvalid Op = iota
    OpConst
    OpParam
    OpCopy
    OpNeg
    OpNot
    OpAdd
    OpSub
    OpMul
    OpDiv
    OpRem
    OpAnd
    OpOr
    OpXor
    OpShl
    OpShr
    OpEq
    OpNe
    OpLt
    OpLe
    OpGt
    OpGe
    OpLoad
    OpStore
    OpPrint
    OpPhi
    OpJump
    OpBranch
    OpReturn
)

const (
    _F_pure = 1 << iota
    _F_trap
    _F_read
    _F_write
    _F_output
    _F_pinned
    _F_term
)

type _OpInfo struct {
    name  string
    argc  int
    flags uint8
}

var _OpTab = [...]_OpInfo {
    OpInvalid : { name: "invalid" , argc:  0, flags: _F_pinned },
    OpConst   : { name: "const"   , argc:  0, flags: _F_pure },
    OpParam   : { name: "param"   , argc:  0, flags: _F_pure },
    OpCopy    : { name: "copy"    , argc:  1, flags: _F_pure },
    OpNeg     : { name: "neg"     , argc:  1, flags: _F_pure },
    OpNot     : { name: "not"     , argc:  1, flags: _F_pure },
    OpAdd     : { name: "add"     , argc:  2, flags: _F_pure },
    OpSub     : { name: "sub"     , argc:  2, flags: _F_pure },
    OpMul     : { name: "mul"     , argc:  2, flags: _F_pure },
    OpDiv     : { name: "div"     , argc:  2, flags: _F_trap },
    OpRem     : { name: "rem"     , argc:  2, flags: _F_trap },
    OpAnd     : { name: "and"     , argc:  2, flags: _F_pure },
    OpOr      : { name: "or"      , argc:  2, flags: _F_pure },
    OpXor     : { name: "xor"     , argc:  2, flags: _F_pure },
    OpShl     : { name: "shl"     , argc:  2, flags: _F_pure },
    OpShr     : { name: "shr"     , argc:  2, flags: _F_pure },
    OpEq      : { name: "eq"      , argc:  2, flags: _F_pure },
    OpNe      : { name: "ne"      , argc:  2, flags: _F_pure },
    OpLt      : { name: "lt"      , argc:  2, flags: _F_pure },
    OpLe      : { name: "le"      , argc:  2, flags: _F_pure },
    OpGt      : { name: "gt"      , argc:  2, flags: _F_pure },
    OpGe      : { name: "ge"      , argc:  2, flags: _F_pure },
    OpLoad    : { name: "load"    , argc:  1, flags: _F_trap | _F_read },
    OpStore   : { name: "store"   , argc:  2, flags: _F_trap | _F_write },
    OpPrint   : { name: "print"   , argc: -1, flags: _F_output },
    OpPhi     : { name: "phi"     , argc: -1, flags: _F_pinned },
    OpJump    : { name: "jump"    , argc:  0, flags: _F_pinned | _F_term },
    OpBranch  : { name: "branch"  , argc:  1, flags: _F_pinned | _F_term },
    OpReturn  : { name: "ret"     , argc: -1, flags: _F_pinned | _F_term },
}

func (self Op) info() *_OpInfo {
    if int(self) >= len(_OpTab) {
        panic(fmt.Sprintf("invalid op: %d", self))
    } else {
        return &_OpTab[self]
    }
}

func (self Op) String() string {
    return self.info().name
}

// Argc returns the fixed operand count of the op, or -1 if it is variadic.
func (self Op) Argc() int {
    return self.info().argc
}

// IsPure reports whether the op computes a value without any possibility of
// trapping or touching memory.
func (self Op) IsPure() bool {
    return self.info().flags & _F_pure != 0
}

// MayTrap reports whether executing the op can fault.
func (self Op) MayTrap() bool {
    return self.info().flags & _F_trap != 0
}

func (self Op) ReadsMemory() bool {
    return self.info().flags & _F_read != 0
}

func (self Op) WritesMemory() bool {
    return self.info().flags & _F_write != 0
}

// HasSideEffects reports whether the op has an externally visible effect,
// that is a memory write or an output.
func (self Op) HasSideEffects() bool {
    return self.info().flags & (_F_write | _F_output) != 0
}

// IsPinned reports whether instructions of this op can never be relocated.
func (self Op) IsPinned() bool {
    return self.info().flags & _F_pinned != 0
}

func (self Op) IsTerminator() bool {
    return self.info().flags & _F_term != 0
}
