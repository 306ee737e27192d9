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
    `errors`
    `fmt`
)

// ErrOutOfFuel is returned by Interpret when the step budget runs out.
var ErrOutOfFuel = errors.New("ssa: out of fuel")

// TrapError occures when an instruction faults during interpretation.
type TrapError struct {
    Instr  *Instr
    Reason string
}

func (self *TrapError) Error() string {
    return fmt.Sprintf("TrapError(%s): %s", self.Instr, self.Reason)
}

// Trace is the observable outcome of running a function.
type Trace struct {
    Result []int64
    Output []int64
    Memory []int64
    Steps  int
}

type Emulator struct {
    fn   *Func
    arg  []int64
    mem  []int64
    val  map[*Instr]int64
    out  []int64
    fuel int
    step int
}

var dispatchTab = [...]func(e *Emulator, p *Instr) (int64, error) {
    OpConst : (*Emulator).emu_OpConst,
    OpParam : (*Emulator).emu_OpParam,
    OpCopy  : (*Emulator).emu_OpCopy,
    OpNeg   : (*Emulator).emu_OpNeg,
    OpNot   : (*Emulator).emu_OpNot,
    OpAdd   : (*Emulator).emu_OpAdd,
    OpSub   : (*Emulator).emu_OpSub,
    OpMul   : (*Emulator).emu_OpMul,
    OpDiv   : (*Emulator).emu_OpDiv,
    OpRem   : (*Emulator).emu_OpRem,
    OpAnd   : (*Emulator).emu_OpAnd,
    OpOr    : (*Emulator).emu_OpOr,
    OpXor   : (*Emulator).emu_OpXor,
    OpShl   : (*Emulator).emu_OpShl,
    OpShr   : (*Emulator).emu_OpShr,
    OpEq    : (*Emulator).emu_OpEq,
    OpNe    : (*Emulator).emu_OpNe,
    OpLt    : (*Emulator).emu_OpLt,
    OpLe    : (*Emulator).emu_OpLe,
    OpGt    : (*Emulator).emu_OpGt,
    OpGe    : (*Emulator).emu_OpGe,
    OpLoad  : (*Emulator).emu_OpLoad,
    OpStore : (*Emulator).emu_OpStore,
    OpPrint : (*Emulator).emu_OpPrint,
}

func b2i(v bool) int64 {
    if v {
        return 1
    } else {
        return 0
    }
}

func (self *Emulator) x(p *Instr) int64 { return self.val[p.Args[0]] }
func (self *Emulator) y(p *Instr) int64 { return self.val[p.Args[1]] }

func (self *Emulator) emu_OpConst(p *Instr) (int64, error) { return p.Imm, nil }
func (self *Emulator) emu_OpCopy(p *Instr) (int64, error)  { return self.x(p), nil }
func (self *Emulator) emu_OpNeg(p *Instr) (int64, error)   { return -self.x(p), nil }
func (self *Emulator) emu_OpNot(p *Instr) (int64, error)   { return ^self.x(p), nil }
func (self *Emulator) emu_OpAdd(p *Instr) (int64, error)   { return self.x(p) + self.y(p), nil }
func (self *Emulator) emu_OpSub(p *Instr) (int64, error)   { return self.x(p) - self.y(p), nil }
func (self *Emulator) emu_OpMul(p *Instr) (int64, error)   { return self.x(p) * self.y(p), nil }
func (self *Emulator) emu_OpAnd(p *Instr) (int64, error)   { return self.x(p) & self.y(p), nil }
func (self *Emulator) emu_OpOr(p *Instr) (int64, error)    { return self.x(p) | self.y(p), nil }
func (self *Emulator) emu_OpXor(p *Instr) (int64, error)   { return self.x(p) ^ self.y(p), nil }
func (self *Emulator) emu_OpShl(p *Instr) (int64, error)   { return self.x(p) << (uint64(self.y(p)) & 63), nil }
func (self *Emulator) emu_OpShr(p *Instr) (int64, error)   { return self.x(p) >> (uint64(self.y(p)) & 63), nil }
func (self *Emulator) emu_OpEq(p *Instr) (int64, error)    { return b2i(self.x(p) == self.y(p)), nil }
func (self *Emulator) emu_OpNe(p *Instr) (int64, error)    { return b2i(self.x(p) != self.y(p)), nil }
func (self *Emulator) emu_OpLt(p *Instr) (int64, error)    { return b2i(self.x(p) < self.y(p)), nil }
func (self *Emulator) emu_OpLe(p *Instr) (int64, error)    { return b2i(self.x(p) <= self.y(p)), nil }
func (self *Emulator) emu_OpGt(p *Instr) (int64, error)    { return b2i(self.x(p) > self.y(p)), nil }
func (self *Emulator) emu_OpGe(p *Instr) (int64, error)    { return b2i(self.x(p) >= self.y(p)), nil }

func (self *Emulator) emu_OpParam(p *Instr) (int64, error) {
    if p.Imm < 0 || p.Imm >= int64(len(self.arg)) {
        return 0, &TrapError{p, fmt.Sprintf("parameter #%d is not supplied", p.Imm)}
    } else {
        return self.arg[p.Imm], nil
    }
}

func (self *Emulator) emu_OpDiv(p *Instr) (int64, error) {
    if y := self.y(p); y == 0 {
        return 0, &TrapError{p, "integer divide by zero"}
    } else {
        return self.x(p) / y, nil
    }
}

func (self *Emulator) emu_OpRem(p *Instr) (int64, error) {
    if y := self.y(p); y == 0 {
        return 0, &TrapError{p, "integer divide by zero"}
    } else {
        return self.x(p) % y, nil
    }
}

func (self *Emulator) address(p *Instr) (int, error) {
    if a := self.x(p); a < 0 || a >= int64(len(self.mem)) {
        return 0, &TrapError{p, fmt.Sprintf("address %d out of range", a)}
    } else {
        return int(a), nil
    }
}

func (self *Emulator) emu_OpLoad(p *Instr) (int64, error) {
    if a, err := self.address(p); err != nil {
        return 0, err
    } else {
        return self.mem[a], nil
    }
}

func (self *Emulator) emu_OpStore(p *Instr) (int64, error) {
    if a, err := self.address(p); err != nil {
        return 0, err
    } else {
        self.mem[a] = self.y(p)
        return 0, nil
    }
}

func (self *Emulator) emu_OpPrint(p *Instr) (int64, error) {
    for _, v := range p.Args {
        self.out = append(self.out, self.val[v])
    }
    return 0, nil
}

func (self *Emulator) tick() error {
    if self.step++; self.step > self.fuel {
        return ErrOutOfFuel
    } else {
        return nil
    }
}

func (self *Emulator) enter(bb *BasicBlock, from *BasicBlock) error {
    phi := make([]int64, len(bb.Phi))

    /* Phi nodes read their operands simultaneously */
    for i, v := range bb.Phi {
        if arg := v.IncomingFor(from); arg == nil {
            return &TrapError{v, fmt.Sprintf("no operand for %s", from)}
        } else {
            phi[i] = self.val[arg]
        }
    }

    /* then assign them all */
    for i, v := range bb.Phi {
        self.val[v] = phi[i]
    }
    return nil
}

func (self *Emulator) run() (*Trace, error) {
    var err error
    var val int64
    var prev *BasicBlock

    /* execute block by block */
    for bb := self.fn.Entry;; {
        if prev != nil {
            if err = self.enter(bb, prev); err != nil {
                return nil, err
            }
        }

        /* execute the instructions */
        for _, v := range bb.Ins {
            if err = self.tick(); err != nil {
                return nil, err
            } else if val, err = dispatchTab[v.Op](self, v); err != nil {
                return nil, err
            } else {
                self.val[v] = val
            }
        }

        /* the terminator costs a step as well */
        if err = self.tick(); err != nil {
            return nil, err
        }

        /* transfer the control */
        switch t := bb.Term; t.Op {
            case OpJump   : prev, bb = bb, t.Succs[0]
            case OpBranch : if self.x(t) != 0 { prev, bb = bb, t.Succs[0] } else { prev, bb = bb, t.Succs[1] }
            case OpReturn : return self.trace(t), nil
            default       : panic("invalid terminator: " + t.String())
        }
    }
}

func (self *Emulator) trace(ret *Instr) *Trace {
    res := make([]int64, len(ret.Args))
    for i, v := range ret.Args {
        res[i] = self.val[v]
    }
    return &Trace {
        Result : res,
        Output : self.out,
        Memory : self.mem,
        Steps  : self.step,
    }
}

// Interpret runs fn with the given arguments over a private copy of mem,
// executing at most fuel instructions.
func Interpret(fn *Func, args []int64, mem []int64, fuel int) (*Trace, error) {
    emu := &Emulator {
        fn   : fn,
        arg  : args,
        mem  : append([]int64(nil), mem...),
        val  : make(map[*Instr]int64),
        fuel : fuel,
    }
    return emu.run()
}
