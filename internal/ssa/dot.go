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

    `gonum.org/v1/gonum/graph`
    `gonum.org/v1/gonum/graph/encoding`
    `gonum.org/v1/gonum/graph/encoding/dot`
    `gonum.org/v1/gonum/graph/simple`
)

type _DotNode struct {
    bb *BasicBlock
}

func (self _DotNode) ID() int64 {
    return int64(self.bb.Id)
}

func (self _DotNode) DOTID() string {
    return self.bb.String()
}

func (self _DotNode) Attributes() []encoding.Attribute {
    buf := []string { self.bb.String() + ":" }
    for _, v := range self.bb.Phi { buf = append(buf, v.String()) }
    for _, v := range self.bb.Ins { buf = append(buf, v.String()) }
    buf = append(buf, self.bb.Term.String())
    return []encoding.Attribute {
        { Key: "shape", Value: "box" },
        { Key: "label", Value: strings.Join(buf, "\n") },
    }
}

type _DotEdge struct {
    f     graph.Node
    t     graph.Node
    label string
}

func (self _DotEdge) From() graph.Node         { return self.f }
func (self _DotEdge) To() graph.Node           { return self.t }
func (self _DotEdge) ReversedEdge() graph.Edge { return _DotEdge{f: self.t, t: self.f, label: self.label} }

func (self _DotEdge) Attributes() []encoding.Attribute {
    if self.label == "" {
        return nil
    } else {
        return []encoding.Attribute{{ Key: "label", Value: self.label }}
    }
}

// Dot renders the CFG of fn in Graphviz format.
func Dot(fn *Func) ([]byte, error) {
    g := simple.NewDirectedGraph()
    nodes := make(map[int]_DotNode, len(fn.Blocks))

    /* add every block */
    for _, bb := range fn.Blocks {
        if bb.Term == nil {
            return nil, fmt.Errorf("dot: %s does not terminate", bb)
        }
        nodes[bb.Id] = _DotNode{bb}
        g.AddNode(nodes[bb.Id])
    }

    /* add every edge, branches are labeled by the condition */
    for _, bb := range fn.Blocks {
        for i, s := range bb.Succ() {
            var label string
            if bb.Term.Op == OpBranch {
                label = [...]string{"true", "false"}[i]
            }

            /* simple graphs cannot hold self loops, those are listed in the label */
            if s != bb {
                g.SetEdge(_DotEdge{f: nodes[bb.Id], t: nodes[s.Id], label: label})
            }
        }
    }

    /* marshal the graph */
    return dot.Marshal(g, fn.Name, "", "  ")
}
