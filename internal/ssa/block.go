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
    `strings`
)

type BasicBlock struct {
    Id   int
    Phi  []*Instr
    Ins  []*Instr
    Term *Instr
    Pred []*BasicBlock
    Func *Func
}

func (self *BasicBlock) String() string {
    return fmt.Sprintf("bb_%d", self.Id)
}

// Succ returns the successors of the block, in terminator order.
func (self *BasicBlock) Succ() []*BasicBlock {
    if self.Term == nil {
        return nil
    } else {
        return self.Term.Succs
    }
}

func (self *BasicBlock) indexOf(ins *Instr) int {
    for i, v := range self.Ins {
        if v == ins {
            return i
        }
    }
    return -1
}

func (self *BasicBlock) remove(ins *Instr) {
    if i := self.indexOf(ins); i < 0 {
        panic(fmt.Sprintf("instruction %s is not in %s", ins.Name(), self))
    } else {
        self.Ins = append(self.Ins[:i], self.Ins[i + 1:]...)
    }
}

func (self *BasicBlock) insert(i int, ins *Instr) {
    self.Ins = append(self.Ins, nil)
    copy(self.Ins[i + 1:], self.Ins[i:])
    self.Ins[i] = ins
    ins.Block = self
}

type Func struct {
    Name   string
    Entry  *BasicBlock
    Blocks []*BasicBlock
    nins   int
}

func NewFunc(name string) *Func {
    return &Func{Name: name}
}

// CreateBlock allocates a new empty block. The first block created becomes
// the entry block.
func (self *Func) CreateBlock() *BasicBlock {
    bb := &BasicBlock {
        Id   : len(self.Blocks) + 1,
        Func : self,
    }

    /* the first block is the entry */
    if self.Entry == nil {
        self.Entry = bb
    }

    /* add to block list */
    self.Blocks = append(self.Blocks, bb)
    return bb
}

func (self *Func) MaxBlock() int {
    return len(self.Blocks)
}

func (self *Func) newInstr(op Op, imm int64, args []*Instr) *Instr {
    self.nins++
    return &Instr {
        Id   : self.nins,
        Op   : op,
        Imm  : imm,
        Args : args,
    }
}

func (self *Func) String() string {
    buf := make([]string, 0, len(self.Blocks) * 4)
    buf = append(buf, fmt.Sprintf("func %s {", self.Name))

    /* dump every block */
    for _, bb := range self.Blocks {
        pred := make([]string, 0, len(bb.Pred))
        for _, p := range bb.Pred {
            pred = append(pred, p.String())
        }

        /* block header */
        if len(pred) == 0 {
            buf = append(buf, fmt.Sprintf("%s:", bb))
        } else {
            buf = append(buf, fmt.Sprintf("%s: ; preds = %s", bb, strings.Join(pred, ", ")))
        }

        /* block body */
        for _, v := range bb.Phi { buf = append(buf, "    " + v.String()) }
        for _, v := range bb.Ins { buf = append(buf, "    " + v.String()) }

        /* block terminator */
        if bb.Term != nil {
            buf = append(buf, "    " + bb.Term.String())
        }
    }

    /* join them together */
    buf = append(buf, "}")
    return strings.Join(buf, "\n")
}

// MoveBefore relocates ins so that it immediately precedes pos, which may be
// a block terminator. Only the position and the containing block change.
func MoveBefore(ins *Instr, pos *Instr) {
    if ins == pos {
        return
    }

    /* phis and terminators never move */
    if ins.Op.IsPinned() {
        panic("cannot move pinned instruction: " + ins.String())
    }

    /* cannot insert in front of Phi nodes */
    if pos.Op == OpPhi {
        panic("cannot insert before Phi node: " + pos.String())
    }

    /* detach from the current block */
    bb := pos.Block
    ins.Block.remove(ins)

    /* the terminator is not part of the instruction list */
    if pos == bb.Term {
        bb.insert(len(bb.Ins), ins)
    } else if i := bb.indexOf(pos); i >= 0 {
        bb.insert(i, ins)
    } else {
        panic(fmt.Sprintf("instruction %s is not in %s", pos.Name(), bb))
    }
}
