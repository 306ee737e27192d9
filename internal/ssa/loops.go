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
    `sort`

    `github.com/oleiade/lane`
)

// Loop is a natural loop: a header block that dominates every block of the
// loop body, and the blocks that can reach a back edge into the header
// without passing through it.
type Loop struct {
    Header   *BasicBlock
    Parent   *Loop
    Children []*Loop
    Depth    int
    blocks   []*BasicBlock
    set      map[int]struct{}
    latches  []*BasicBlock
    exits    []*BasicBlock
    prehdr   *BasicBlock
}

func (self *Loop) String() string {
    return fmt.Sprintf("loop(%s)", self.Header)
}

func (self *Loop) Contains(bb *BasicBlock) bool {
    _, ok := self.set[bb.Id]
    return ok
}

// Blocks returns every block of the loop, including those of nested loops,
// in dominator tree preorder. The header always comes first.
func (self *Loop) Blocks() []*BasicBlock {
    return self.blocks
}

// Latches returns the sources of the back edges into the header.
func (self *Loop) Latches() []*BasicBlock {
    return self.latches
}

// Preheader returns the single block outside the loop that branches only to
// the header, or nil if there is no such block.
func (self *Loop) Preheader() *BasicBlock {
    return self.prehdr
}

// UniqueExitBlocks returns the blocks outside the loop that are targets of
// branches inside the loop, without duplicates, in discovery order.
func (self *Loop) UniqueExitBlocks() []*BasicBlock {
    return self.exits
}

// Encloses reports whether other is this loop or is nested somewhere inside it.
func (self *Loop) Encloses(other *Loop) bool {
    for p := other; p != nil; p = p.Parent {
        if p == self {
            return true
        }
    }
    return false
}

// LoopForest is the loop nest of a function.
type LoopForest struct {
    Top   []*Loop
    loops []*Loop
    inner map[int]*Loop
}

// LoopFor returns the innermost loop containing bb, or nil if bb is not part
// of any loop.
func (self *LoopForest) LoopFor(bb *BasicBlock) *Loop {
    return self.inner[bb.Id]
}

// Loops returns every loop of the function, enclosing loops first.
func (self *LoopForest) Loops() []*Loop {
    return self.loops
}

// PostOrder returns every loop of the function, nested loops first.
func (self *LoopForest) PostOrder() []*Loop {
    var walk func(*Loop)
    ret := make([]*Loop, 0, len(self.loops))

    /* children before parents */
    walk = func(l *Loop) {
        for _, c := range l.Children {
            walk(c)
        }
        ret = append(ret, l)
    }

    /* walk every tree */
    for _, l := range self.Top {
        walk(l)
    }
    return ret
}

func FindLoops(fn *Func, dt *DominatorTree) *LoopForest {
    ret := &LoopForest{inner: make(map[int]*Loop)}
    order := dt.PreOrder().Blocks()

    /* Phase 1: Find the back edges and collect the loop bodies */
    for _, h := range order {
        var latches []*BasicBlock

        /* a back edge goes to a block that dominates its source */
        for _, p := range h.Pred {
            if dt.Reachable(p) && dt.Dominates(h, p) {
                latches = append(latches, p)
            }
        }

        /* not a loop header */
        if len(latches) == 0 {
            continue
        }

        /* build the loop */
        ret.loops = append(ret.loops, &Loop {
            Header  : h,
            set     : collectLoopBody(dt, h, latches),
            latches : latches,
        })
    }

    /* Phase 2: Link each loop to the smallest enclosing loop */
    for _, l := range ret.loops {
        for _, p := range ret.loops {
            if p != l && p.Contains(l.Header) && (l.Parent == nil || len(p.set) < len(l.Parent.set)) {
                l.Parent = p
            }
        }
    }

    /* headers are in dominator preorder, so parents are seen before children */
    for _, l := range ret.loops {
        if l.Parent == nil {
            l.Depth = 1
            ret.Top = append(ret.Top, l)
        } else {
            l.Depth = l.Parent.Depth + 1
            l.Parent.Children = append(l.Parent.Children, l)
        }
    }

    /* Phase 3: Map every block to its innermost loop, larger loops first */
    bysize := append([]*Loop(nil), ret.loops...)
    sort.SliceStable(bysize, func(i int, j int) bool { return len(bysize[i].set) > len(bysize[j].set) })

    /* smaller loops overwrite the larger ones */
    for _, l := range bysize {
        for id := range l.set {
            ret.inner[id] = l
        }
    }

    /* Phase 4: Order the blocks, find the exits and the preheader */
    for _, l := range ret.loops {
        for _, bb := range order {
            if l.Contains(bb) {
                l.blocks = append(l.blocks, bb)
            }
        }

        /* exit blocks are outside targets of inside blocks */
        for _, bb := range l.blocks {
            for _, s := range bb.Succ() {
                if !l.Contains(s) && indexBlock(l.exits, s) < 0 {
                    l.exits = append(l.exits, s)
                }
            }
        }

        /* find the preheader */
        l.prehdr = findPreheader(l)
    }
    return ret
}

func collectLoopBody(dt *DominatorTree, h *BasicBlock, latches []*BasicBlock) map[int]struct{} {
    q := lane.NewQueue()
    set := map[int]struct{}{ h.Id: {} }

    /* start from the latches */
    for _, p := range latches {
        if _, ok := set[p.Id]; !ok {
            set[p.Id] = struct{}{}
            q.Enqueue(p)
        }
    }

    /* walk backwards until reaching the header */
    for !q.Empty() {
        bb := q.Dequeue().(*BasicBlock)

        /* add every reachable predecessor */
        for _, p := range bb.Pred {
            if _, ok := set[p.Id]; !ok && dt.Reachable(p) {
                set[p.Id] = struct{}{}
                q.Enqueue(p)
            }
        }
    }
    return set
}

func findPreheader(l *Loop) *BasicBlock {
    var out *BasicBlock

    /* the header must have exactly one predecessor from outside */
    for _, p := range l.Header.Pred {
        if !l.Contains(p) {
            if out != nil {
                return nil
            } else {
                out = p
            }
        }
    }

    /* and that predecessor must branch only to the header */
    if out == nil || len(out.Succ()) != 1 {
        return nil
    } else {
        return out
    }
}
