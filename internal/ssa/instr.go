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

// Instr is a single operation in the IR. The pointer is the identity of the
// instruction and of the value it defines, so uses refer to definitions
// directly through Args.
type Instr struct {
    Id    int
    Op    Op
    Imm   int64
    Args  []*Instr
    From  []*BasicBlock
    Succs []*BasicBlock
    Block *BasicBlock
}

func (self *Instr) Name() string {
    return fmt.Sprintf("v%d", self.Id)
}

// HasValue reports whether the instruction defines a value that can be used
// as an operand.
func (self *Instr) HasValue() bool {
    switch self.Op {
        case OpStore, OpPrint : return false
        default               : return !self.Op.IsTerminator()
    }
}

func (self *Instr) String() string {
    var buf []string
    var lhs string

    /* dump the defined value if any */
    if self.HasValue() {
        lhs = self.Name() + " = "
    }

    /* special form instructions */
    switch self.Op {
        case OpConst  : return fmt.Sprintf("%sconst %d", lhs, self.Imm)
        case OpParam  : return fmt.Sprintf("%sparam #%d", lhs, self.Imm)
        case OpJump   : return fmt.Sprintf("jump bb_%d", self.Succs[0].Id)
        case OpBranch : return fmt.Sprintf("branch %s, bb_%d, bb_%d", self.Args[0].Name(), self.Succs[0].Id, self.Succs[1].Id)
    }

    /* phi arguments are paired with predecessors */
    if self.Op == OpPhi {
        for i, v := range self.Args {
            buf = append(buf, fmt.Sprintf("[bb_%d: %s]", self.From[i].Id, v.Name()))
        }
    } else {
        for _, v := range self.Args {
            buf = append(buf, v.Name())
        }
    }

    /* no operands */
    if len(buf) == 0 {
        return lhs + self.Op.String()
    }

    /* join them together */
    return fmt.Sprintf(
        "%s%s %s",
        lhs,
        self.Op,
        strings.Join(buf, ", "),
    )
}

// IncomingFor returns the phi operand flowing in from predecessor bb.
func (self *Instr) IncomingFor(bb *BasicBlock) *Instr {
    for i, p := range self.From {
        if p == bb {
            return self.Args[i]
        }
    }
    return nil
}
