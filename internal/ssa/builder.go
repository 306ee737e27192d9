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

// Builder constructs a Func block by block. Instructions are emitted into the
// current block until it is terminated.
type Builder struct {
    fn *Func
    bb *BasicBlock
}

func CreateBuilder(name string) *Builder {
    fn := NewFunc(name)
    return &Builder{fn: fn, bb: fn.CreateBlock()}
}

// Block creates a new block without switching to it.
func (self *Builder) Block() *BasicBlock {
    return self.fn.CreateBlock()
}

// At switches the insertion point to the end of bb.
func (self *Builder) At(bb *BasicBlock) {
    if bb.Func != self.fn {
        panic(fmt.Sprintf("%s does not belong to function %s", bb, self.fn.Name))
    } else {
        self.bb = bb
    }
}

func (self *Builder) Current() *BasicBlock {
    return self.bb
}

func (self *Builder) Entry() *BasicBlock {
    return self.fn.Entry
}

func (self *Builder) emit(op Op, imm int64, args ...*Instr) *Instr {
    if self.bb.Term != nil {
        panic(fmt.Sprintf("%s is already terminated", self.bb))
    }

    /* check the operand count */
    if n := op.Argc(); n >= 0 && n != len(args) {
        panic(fmt.Sprintf("%s takes %d operands, got %d", op, n, len(args)))
    }

    /* every operand must define a value */
    for _, v := range args {
        if !v.HasValue() {
            panic(fmt.Sprintf("%s does not define a value", v))
        }
    }

    /* create the instruction */
    ins := self.fn.newInstr(op, imm, args)
    ins.Block = self.bb

    /* attach to the proper list */
    switch {
        case op == OpPhi        : self.bb.Phi = append(self.bb.Phi, ins)
        case op.IsTerminator()  : self.bb.Term = ins
        default                 : self.bb.Ins = append(self.bb.Ins, ins)
    }
    return ins
}

func (self *Builder) Const(v int64) *Instr          { return self.emit(OpConst, v) }
func (self *Builder) Param(i int) *Instr            { return self.emit(OpParam, int64(i)) }
func (self *Builder) Copy(x *Instr) *Instr          { return self.emit(OpCopy, 0, x) }
func (self *Builder) Neg(x *Instr) *Instr           { return self.emit(OpNeg, 0, x) }
func (self *Builder) Not(x *Instr) *Instr           { return self.emit(OpNot, 0, x) }
func (self *Builder) Add(x *Instr, y *Instr) *Instr { return self.emit(OpAdd, 0, x, y) }
func (self *Builder) Sub(x *Instr, y *Instr) *Instr { return self.emit(OpSub, 0, x, y) }
func (self *Builder) Mul(x *Instr, y *Instr) *Instr { return self.emit(OpMul, 0, x, y) }
func (self *Builder) Div(x *Instr, y *Instr) *Instr { return self.emit(OpDiv, 0, x, y) }
func (self *Builder) Rem(x *Instr, y *Instr) *Instr { return self.emit(OpRem, 0, x, y) }
func (self *Builder) Lt(x *Instr, y *Instr) *Instr  { return self.emit(OpLt, 0, x, y) }
func (self *Builder) Eq(x *Instr, y *Instr) *Instr  { return self.emit(OpEq, 0, x, y) }
func (self *Builder) Load(addr *Instr) *Instr       { return self.emit(OpLoad, 0, addr) }
func (self *Builder) Print(v ...*Instr) *Instr      { return self.emit(OpPrint, 0, v...) }

// Binary emits any two-operand op.
func (self *Builder) Binary(op Op, x *Instr, y *Instr) *Instr {
    if op.Argc() != 2 || op.ReadsMemory() || op.HasSideEffects() {
        panic("not a binary expression: " + op.String())
    } else {
        return self.emit(op, 0, x, y)
    }
}

// Store writes val to memory at addr.
func (self *Builder) Store(addr *Instr, val *Instr) *Instr {
    return self.emit(OpStore, 0, addr, val)
}

// Phi creates an empty Phi node in the current block, operands are added
// with Incoming once the predecessors are known.
func (self *Builder) Phi() *Instr {
    return self.emit(OpPhi, 0)
}

func (self *Builder) Incoming(phi *Instr, from *BasicBlock, v *Instr) {
    if phi.Op != OpPhi {
        panic("not a Phi node: " + phi.String())
    } else if !v.HasValue() {
        panic(fmt.Sprintf("%s does not define a value", v))
    } else {
        phi.Args = append(phi.Args, v)
        phi.From = append(phi.From, from)
    }
}

func (self *Builder) Jump(to *BasicBlock) *Instr {
    ins := self.emit(OpJump, 0)
    self.link(ins, to)
    return ins
}

func (self *Builder) Branch(cond *Instr, t *BasicBlock, f *BasicBlock) *Instr {
    ins := self.emit(OpBranch, 0, cond)
    self.link(ins, t, f)
    return ins
}

func (self *Builder) Return(v ...*Instr) *Instr {
    return self.emit(OpReturn, 0, v...)
}

func (self *Builder) link(term *Instr, to ...*BasicBlock) {
    bb := term.Block
    term.Succs = to

    /* add the predecessor edges, once per distinct successor */
    for i, p := range to {
        if indexBlock(to[:i], p) < 0 {
            p.Pred = append(p.Pred, bb)
        }
    }
}

// Build checks that the function is complete and returns it.
func (self *Builder) Build() *Func {
    for _, bb := range self.fn.Blocks {
        if bb.Term == nil {
            panic(fmt.Sprintf("basic block %d does not terminate", bb.Id))
        }

        /* Phi nodes must cover every predecessor */
        for _, v := range bb.Phi {
            if len(v.Args) != len(bb.Pred) {
                panic(fmt.Sprintf("%s has %d operands but %s has %d predecessors", v.Name(), len(v.Args), bb, len(bb.Pred)))
            }
        }
    }
    return self.fn
}
