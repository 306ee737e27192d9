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

// Invariance decides loop invariance from def-use chains. A value is
// invariant in a loop when it is computed only from values defined outside
// the loop, so instructions that have already been hoisted out of the loop
// count as defined outside.
type Invariance struct {
    writes map[*Loop]bool
}

func NewInvariance() *Invariance {
    return &Invariance{writes: make(map[*Loop]bool)}
}

func (self *Invariance) IsLoopInvariant(ins *Instr, l *Loop) bool {
    if ins.Op.IsPinned() || ins.Op.HasSideEffects() {
        return false
    }

    /* every operand must come from outside the loop */
    for _, v := range ins.Args {
        if l.Contains(v.Block) {
            return false
        }
    }

    /* memory reads also depend on every store inside the loop */
    return !ins.Op.ReadsMemory() || !self.loopWritesMemory(l)
}

// Invalidate drops every cached loop summary. It must be called after the
// instructions of any loop have been moved.
func (self *Invariance) Invalidate() {
    for l := range self.writes {
        delete(self.writes, l)
    }
}

func (self *Invariance) loopWritesMemory(l *Loop) bool {
    if v, ok := self.writes[l]; ok {
        return v
    }

    /* scan every block, nested loops included */
    for _, bb := range l.Blocks() {
        for _, v := range bb.Ins {
            if v.Op.WritesMemory() {
                self.writes[l] = true
                return true
            }
        }
    }

    /* no stores at all */
    self.writes[l] = false
    return false
}

// Speculation classifies instructions by whether they can be executed on
// paths where the original program would not have executed them.
type Speculation struct{}

func (Speculation) IsSafeToSpeculate(ins *Instr) bool {
    switch op := ins.Op; {
        case op.IsPinned()       : return false
        case op.HasSideEffects() : return false
        case op.IsPure()         : return true
        case op == OpDiv         : return isNonZeroConst(ins.Args[1])
        case op == OpRem         : return isNonZeroConst(ins.Args[1])
        default                  : return false
    }
}

func isNonZeroConst(v *Instr) bool {
    return v.Op == OpConst && v.Imm != 0
}
