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

// VerifyError describes the first malformed construct found by Verify.
type VerifyError struct {
    Block  *BasicBlock
    Instr  *Instr
    Reason string
}

func (self *VerifyError) Error() string {
    if self.Instr != nil {
        return fmt.Sprintf("VerifyError(%s, %s): %s", self.Block, self.Instr, self.Reason)
    } else {
        return fmt.Sprintf("VerifyError(%s): %s", self.Block, self.Reason)
    }
}

type _Verifier struct {
    fn  *Func
    dt  *DominatorTree
    pos map[*Instr]Pos
}

// Verify checks the structural rules of the IR: every block ends with exactly
// one terminator, every instruction is owned by exactly one block that it
// points back to, Phi nodes match the predecessors, and every operand
// dominates its use.
func Verify(fn *Func) error {
    if fn.Entry == nil {
        return &VerifyError{Reason: "function has no entry block"}
    }

    /* build the verifier */
    vf := &_Verifier {
        fn  : fn,
        dt  : BuildDominatorTree(fn),
        pos : make(map[*Instr]Pos),
    }

    /* Phase 1: Check the ownership of every instruction */
    for _, bb := range fn.Blocks {
        if err := vf.layout(bb); err != nil {
            return err
        }
    }

    /* Phase 2: Check the operands of every reachable instruction */
    for _, bb := range fn.Blocks {
        if vf.dt.Reachable(bb) {
            if err := vf.operands(bb); err != nil {
                return err
            }
        }
    }
    return nil
}

func (self *_Verifier) own(bb *BasicBlock, ins *Instr, i int) error {
    if ins.Block != bb {
        return &VerifyError{bb, ins, "instruction does not point back to its block"}
    } else if p, ok := self.pos[ins]; ok {
        return &VerifyError{bb, ins, fmt.Sprintf("instruction is also listed in %s", p.B)}
    } else {
        self.pos[ins] = pos(bb, i)
        return nil
    }
}

func (self *_Verifier) layout(bb *BasicBlock) error {
    n := 0
    preds := make(map[*BasicBlock]bool, len(bb.Pred))

    /* the block must terminate */
    if bb.Term == nil || !bb.Term.Op.IsTerminator() {
        return &VerifyError{bb, bb.Term, "block does not end with a terminator"}
    }

    /* predecessors must agree with the successor lists */
    for _, p := range bb.Pred {
        preds[p] = true
        if indexBlock(p.Succ(), bb) < 0 {
            return &VerifyError{bb, nil, fmt.Sprintf("predecessor %s does not branch here", p)}
        }
    }

    /* check Phi nodes */
    for _, v := range bb.Phi {
        if v.Op != OpPhi {
            return &VerifyError{bb, v, "non-Phi instruction in the Phi list"}
        } else if len(v.Args) != len(bb.Pred) || len(v.From) != len(v.Args) {
            return &VerifyError{bb, v, "Phi operands do not match the predecessors"}
        }

        /* every incoming block must be a predecessor */
        for _, p := range v.From {
            if !preds[p] {
                return &VerifyError{bb, v, fmt.Sprintf("%s is not a predecessor", p)}
            }
        }

        /* record the position */
        if err := self.own(bb, v, n); err != nil {
            return err
        }
        n++
    }

    /* check ordinary instructions */
    for _, v := range bb.Ins {
        if v.Op.IsPinned() {
            return &VerifyError{bb, v, "pinned instruction in the instruction list"}
        } else if err := self.own(bb, v, n); err != nil {
            return err
        }
        n++
    }

    /* the terminator comes last */
    return self.own(bb, bb.Term, _P_term)
}

func (self *_Verifier) available(def *Instr, use Pos) bool {
    if p, ok := self.pos[def]; !ok {
        return false
    } else if p.B == use.B {
        return p.I < use.I
    } else {
        return self.dt.Dominates(p.B, use.B)
    }
}

func (self *_Verifier) operands(bb *BasicBlock) error {
    ins := make([]*Instr, 0, len(bb.Phi) + len(bb.Ins) + 1)
    ins = append(ins, bb.Phi...)
    ins = append(ins, bb.Ins...)
    ins = append(ins, bb.Term)

    /* check every operand of every instruction */
    for _, v := range ins {
        for i, arg := range v.Args {
            var ok bool
            var at Pos

            /* Phi operands are used at the end of the incoming block */
            if v.Op == OpPhi {
                at = pos(v.From[i], _P_term + 1)
            } else {
                at = self.pos[v]
            }

            /* the operand must be defined and dominate the use */
            if !arg.HasValue() {
                return &VerifyError{bb, v, fmt.Sprintf("operand %s does not define a value", arg.Name())}
            } else if ok = self.available(arg, at); !ok {
                return &VerifyError{bb, v, fmt.Sprintf("operand %s does not dominate its use", arg.Name())}
            }
        }
    }
    return nil
}
