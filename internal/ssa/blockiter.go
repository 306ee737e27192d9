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
    `github.com/oleiade/lane`
)

// BasicBlockIter walks the dominator tree in preorder, so every block is
// visited after all of its dominators.
type BasicBlockIter struct {
    t *DominatorTree
    b *BasicBlock
    s *lane.Stack
}

func (self *DominatorTree) PreOrder() *BasicBlockIter {
    s := lane.NewStack()
    s.Push(self.Root)
    return &BasicBlockIter{t: self, s: s}
}

func (self *BasicBlockIter) Next() bool {
    if self.s.Empty() {
        self.b = nil
        return false
    }

    /* pop the next block */
    self.b = self.s.Pop().(*BasicBlock)
    sub := self.t.DominatorOf[self.b.Id]

    /* push the children in reverse, so they pop in order */
    for i := len(sub) - 1; i >= 0; i-- {
        self.s.Push(sub[i])
    }
    return true
}

func (self *BasicBlockIter) Block() *BasicBlock {
    return self.b
}

func (self *BasicBlockIter) ForEach(action func(bb *BasicBlock)) {
    for self.Next() {
        action(self.b)
    }
}

// Blocks drains the iterator into a slice.
func (self *BasicBlockIter) Blocks() []*BasicBlock {
    ret := make([]*BasicBlock, 0, len(self.t.enter))
    self.ForEach(func(bb *BasicBlock) { ret = append(ret, bb) })
    return ret
}

// Reversed drains the iterator into a slice in reversed order, so every
// block comes before its dominators.
func (self *BasicBlockIter) Reversed() []*BasicBlock {
    ret := self.Blocks()
    blockreverse(ret)
    return ret
}
