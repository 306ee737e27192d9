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

type _LoopFixture struct {
    fn     *Func
    pre    *BasicBlock
    header *BasicBlock
    body   *BasicBlock
    exit   *BasicBlock
    iv     *Instr
    sum    *Instr
    next   *Instr
}

// buildSimpleLoop creates the following function
//
//  bb_1: a = param #0, b = param #1, n = param #2, jump bb_2
//  bb_2: zero = const 0, one = const 1, jump bb_3
//  bb_3: i = phi [bb_2: zero], [bb_4: next], c = lt i, n, branch c, bb_4, bb_5
//  bb_4: sum = add a, b, print sum, next = add i, one, jump bb_3
//  bb_5: return i
func buildSimpleLoop() *_LoopFixture {
    p := CreateBuilder("simple")
    a := p.Param(0)
    b := p.Param(1)
    n := p.Param(2)
    pre := p.Block()
    header := p.Block()
    body := p.Block()
    exit := p.Block()
    p.Jump(pre)
    p.At(pre)
    zero := p.Const(0)
    one := p.Const(1)
    p.Jump(header)
    p.At(header)
    iv := p.Phi()
    p.Branch(p.Lt(iv, n), body, exit)
    p.At(body)
    sum := p.Add(a, b)
    p.Print(sum)
    next := p.Add(iv, one)
    p.Jump(header)
    p.Incoming(iv, pre, zero)
    p.Incoming(iv, body, next)
    p.At(exit)
    p.Return(iv)
    return &_LoopFixture {
        fn     : p.Build(),
        pre    : pre,
        header : header,
        body   : body,
        exit   : exit,
        iv     : iv,
        sum    : sum,
        next   : next,
    }
}

type _NestFixture struct {
    fn    *Func
    outer *BasicBlock
    ipre  *BasicBlock
    inner *BasicBlock
    body  *BasicBlock
    latch *BasicBlock
    exit  *BasicBlock
    prod  *Instr
}

// buildNestedLoops creates two nested counted loops, the inner body is bb_5
// and computes a * b.
func buildNestedLoops() *_NestFixture {
    p := CreateBuilder("nested")
    a := p.Param(0)
    b := p.Param(1)
    n := p.Param(2)
    zero := p.Const(0)
    one := p.Const(1)
    outer := p.Block()
    ipre := p.Block()
    inner := p.Block()
    body := p.Block()
    latch := p.Block()
    exit := p.Block()
    p.Jump(outer)
    p.At(outer)
    i := p.Phi()
    p.Branch(p.Lt(i, n), ipre, exit)
    p.At(ipre)
    p.Jump(inner)
    p.At(inner)
    j := p.Phi()
    p.Branch(p.Lt(j, n), body, latch)
    p.At(body)
    prod := p.Mul(a, b)
    p.Print(prod)
    jn := p.Add(j, one)
    p.Jump(inner)
    p.At(latch)
    in := p.Add(i, one)
    p.Jump(outer)
    p.At(exit)
    p.Return(i)
    p.Incoming(i, p.Entry(), zero)
    p.Incoming(i, latch, in)
    p.Incoming(j, ipre, zero)
    p.Incoming(j, body, jn)
    return &_NestFixture {
        fn    : p.Build(),
        outer : outer,
        ipre  : ipre,
        inner : inner,
        body  : body,
        latch : latch,
        exit  : exit,
        prod  : prod,
    }
}

func analyze(fn *Func) (*DominatorTree, *LoopForest) {
    dt := BuildDominatorTree(fn)
    return dt, FindLoops(fn, dt)
}
