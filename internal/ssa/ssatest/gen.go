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

// Package ssatest generates random well-formed functions for property tests.
// Every generated loop is a counted loop with a dedicated preheader, so the
// functions always terminate.
package ssatest

import (
    `fmt`

    `github.com/brianvoe/gofakeit/v6`
    `github.com/cloudwego/licm/internal/ssa`
)

type Config struct {
    MaxDepth int
    MaxStmts int
    MaxTrips int
    Params   int
    Memory   int
}

var DefaultConfig = Config {
    MaxDepth : 3,
    MaxStmts : 5,
    MaxTrips : 4,
    Params   : 3,
    Memory   : 8,
}

var _PureOps = [...]ssa.Op {
    ssa.OpAdd,
    ssa.OpSub,
    ssa.OpMul,
    ssa.OpAnd,
    ssa.OpOr,
    ssa.OpXor,
    ssa.OpShl,
    ssa.OpShr,
    ssa.OpEq,
    ssa.OpNe,
    ssa.OpLt,
    ssa.OpLe,
    ssa.OpGt,
    ssa.OpGe,
}

type _Generator struct {
    cfg Config
    rnd *gofakeit.Faker
    b   *ssa.Builder
}

// Generate builds a random function from seed. The same seed always gives
// the same function.
func Generate(seed int64, cfg Config) *ssa.Func {
    g := &_Generator {
        cfg : cfg,
        rnd : gofakeit.New(seed),
        b   : ssa.CreateBuilder(fmt.Sprintf("gen_%d", seed)),
    }

    /* parameters and a few constants are visible everywhere */
    scope := make([]*ssa.Instr, 0, cfg.Params + 2)
    for i := 0; i < cfg.Params; i++ {
        scope = append(scope, g.b.Param(i))
    }

    /* generate the body */
    scope = append(scope, g.b.Const(0), g.b.Const(1))
    scope = g.region(scope, 0)
    g.b.Return(g.pick(scope), g.pick(scope))
    return g.b.Build()
}

func (self *_Generator) pick(scope []*ssa.Instr) *ssa.Instr {
    return scope[self.rnd.IntRange(0, len(scope) - 1)]
}

// region emits a sequence of statements and nested constructs, and returns
// the values that dominate the end of the sequence.
func (self *_Generator) region(scope []*ssa.Instr, depth int) []*ssa.Instr {
    n := self.rnd.IntRange(1, self.cfg.MaxStmts)
    for i := 0; i < n; i++ {
        switch k := self.rnd.IntRange(0, 9); {
            case k >= 8 && depth < self.cfg.MaxDepth : scope = self.diamond(scope, depth)
            case k >= 6 && depth < self.cfg.MaxDepth : scope = self.loop(scope, depth)
            default                                  : scope = append(scope, self.stmt(scope)...)
        }
    }
    return scope
}

func (self *_Generator) address(scope []*ssa.Instr) *ssa.Instr {
    if self.rnd.IntRange(0, 9) == 0 {
        return self.pick(scope)
    } else {
        return self.b.Binary(ssa.OpAnd, self.pick(scope), self.b.Const(int64(self.cfg.Memory - 1)))
    }
}

func (self *_Generator) divisor(scope []*ssa.Instr) *ssa.Instr {
    if self.rnd.Bool() {
        return self.pick(scope)
    } else {
        return self.b.Const(int64(self.rnd.IntRange(-3, 3)))
    }
}

// stmt emits a single statement and returns the values it defines.
func (self *_Generator) stmt(scope []*ssa.Instr) []*ssa.Instr {
    switch k := self.rnd.IntRange(0, 11); {
        case k < 1: {
            return []*ssa.Instr { self.b.Const(int64(self.rnd.IntRange(-4, 16))) }
        }

        /* pure expressions */
        case k < 6: {
            op := _PureOps[self.rnd.IntRange(0, len(_PureOps) - 1)]
            return []*ssa.Instr { self.b.Binary(op, self.pick(scope), self.pick(scope)) }
        }

        /* trapping arithmetic */
        case k < 7: {
            x := self.pick(scope)
            y := self.divisor(scope)
            if self.rnd.Bool() {
                return []*ssa.Instr { self.b.Div(x, y) }
            } else {
                return []*ssa.Instr { self.b.Rem(x, y) }
            }
        }

        /* memory reads */
        case k < 9: {
            return []*ssa.Instr { self.b.Load(self.address(scope)) }
        }

        /* memory writes */
        case k < 10: {
            self.b.Store(self.address(scope), self.pick(scope))
            return nil
        }

        /* output */
        default: {
            self.b.Print(self.pick(scope))
            return nil
        }
    }
}

// diamond emits an if-then-else that merges with a Phi node.
func (self *_Generator) diamond(scope []*ssa.Instr, depth int) []*ssa.Instr {
    t := self.b.Block()
    e := self.b.Block()
    j := self.b.Block()
    self.b.Branch(self.pick(scope), t, e)

    /* the then arm */
    self.b.At(t)
    ts := self.region(scope, depth + 1)
    tv, tb := self.pick(ts), self.b.Current()
    self.b.Jump(j)

    /* the else arm */
    self.b.At(e)
    es := self.region(scope, depth + 1)
    ev, eb := self.pick(es), self.b.Current()
    self.b.Jump(j)

    /* merge the arms */
    self.b.At(j)
    phi := self.b.Phi()
    self.b.Incoming(phi, tb, tv)
    self.b.Incoming(phi, eb, ev)
    return append(scope, phi)
}

// loop emits a counted loop with a dedicated preheader, the loop runs at most
// MaxTrips iterations and may leave early through a second exit.
func (self *_Generator) loop(scope []*ssa.Instr, depth int) []*ssa.Instr {
    zero := self.b.Const(0)
    trip := self.b.Const(int64(self.rnd.IntRange(0, self.cfg.MaxTrips)))
    start := self.pick(scope)
    pre := self.b.Current()

    /* allocate the blocks */
    header := self.b.Block()
    body := self.b.Block()
    latch := self.b.Block()
    exit := self.b.Block()
    self.b.Jump(header)

    /* the header holds the induction variable and an accumulator */
    self.b.At(header)
    iv := self.b.Phi()
    acc := self.b.Phi()
    hs := append(append([]*ssa.Instr(nil), scope...), zero, trip, iv, acc)

    /* a few statements that run on every entry of the header */
    for i := self.rnd.IntRange(0, 2); i > 0; i-- {
        hs = append(hs, self.stmt(hs)...)
    }

    /* loop condition */
    self.b.Branch(self.b.Lt(iv, trip), body, exit)
    self.b.At(body)
    bs := self.region(hs, depth + 1)

    /* maybe leave the loop early */
    var early *ssa.BasicBlock
    if self.rnd.IntRange(0, 3) == 0 {
        early = self.b.Block()
        cont := self.b.Block()
        self.b.Branch(self.pick(bs), early, cont)
        self.b.At(cont)
    }

    /* the latch advances the induction variable */
    self.b.Jump(latch)
    self.b.At(latch)
    next := self.b.Add(iv, self.b.Const(1))
    accn := self.b.Add(acc, self.pick(bs))
    self.b.Jump(header)

    /* close the Phi nodes */
    self.b.Incoming(iv, pre, zero)
    self.b.Incoming(iv, latch, next)
    self.b.Incoming(acc, pre, start)
    self.b.Incoming(acc, latch, accn)

    /* merge the exits */
    self.b.At(exit)
    if early != nil {
        after := self.b.Block()
        self.b.Jump(after)
        self.b.At(early)
        self.b.Print(iv)
        self.b.Jump(after)
        self.b.At(after)
    }
    return hs
}
