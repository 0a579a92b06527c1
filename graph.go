/*
 * Copyright 2023 CloudWeGo Authors
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

package domtree

// Graph is a read-only view of a control-flow graph over basic blocks.
//
// Blocks are numbered from 1 to NumBlocks(), block 1 is the entry block.
// Preds and Succs return the in-edges and out-edges of a block as ordered
// lists of block numbers. An entry of 0 denotes a virtual edge (such as the
// implicit edge into an exception handler), it carries no control flow and
// is skipped by every traversal. Virtual edges may only occur in predecessor
// lists visited by the post-dominator traversal.
//
// The graph must not change while a call on it is in progress.
type Graph interface {
    NumBlocks() int
    Preds(bb int) []int
    Succs(bb int) []int
}

// BlockGraph is a plain adjacency-list Graph that supports edge updates.
type BlockGraph struct {
    preds [][]int
    succs [][]int
}

// NewBlockGraph creates an edgeless graph with n blocks numbered 1 to n.
func NewBlockGraph(n int) *BlockGraph {
    return &BlockGraph {
        preds: make([][]int, n + 1),
        succs: make([][]int, n + 1),
    }
}

func (self *BlockGraph) NumBlocks() int {
    return len(self.succs) - 1
}

func (self *BlockGraph) Preds(bb int) []int {
    return self.preds[bb]
}

func (self *BlockGraph) Succs(bb int) []int {
    return self.succs[bb]
}

// AddEdge adds a control-flow edge from one block to another.
func (self *BlockGraph) AddEdge(from int, to int) {
    self.succs[from] = append(self.succs[from], to)
    self.preds[to] = append(self.preds[to], from)
}

// DeleteEdge removes one occurrence of the edge, if present.
func (self *BlockGraph) DeleteEdge(from int, to int) {
    self.succs[from] = removebb(self.succs[from], to)
    self.preds[to] = removebb(self.preds[to], from)
}

// HasEdge reports whether the edge is present.
func (self *BlockGraph) HasEdge(from int, to int) bool {
    for _, v := range self.succs[from] {
        if v == to {
            return true
        }
    }
    return false
}
