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

// Package domtree computes and incrementally maintains dominator and
// post-dominator trees over a control-flow graph of basic blocks, and
// answers the dominance queries used by SSA construction and other
// optimization passes.
//
// Trees are built with the Semi-NCA algorithm. Single-edge CFG updates go
// through InsertEdge and DeleteEdge. On a DomTree they recompute only the
// affected semidominators whenever the depth-first numbering is still valid,
// on a PostDomTree they always rebuild the forest in full.
//
// A tree is exclusively owned by its caller. Queries on an unchanging tree
// are safe to run concurrently, mutations are not.
package domtree

import (
    `github.com/cloudwego/domtree/internal/opts`
    `github.com/oleiade/lane`
)

type _DomNode struct {
    level    int
    children []int
}

// _TreeCore is the state shared by dominator and post-dominator trees.
//
// idoms is indexed by block number and holds the immediate dominator of
// every block, 0 for roots and unreachable blocks. nodes is indexed by block
// number, children lists are kept sorted in ascending order, levels start at
// 1 for the roots. Scratch buffers persist across updates so that rebuilds
// do not reallocate.
type _TreeCore struct {
    post      bool
    dfs       _DFSTree
    snca      []_SNCAData
    idoms     []int
    nodes     []_DomNode
    ancestors []int
    idomsPre  []int
    pairs     []_CompressPair
}

// DomTree is the dominator tree of a CFG rooted at block 1.
type DomTree struct {
    _TreeCore
}

// PostDomTree is the post-dominator forest of a CFG, computed over the
// reversed graph with a virtual exit node. Every block that reaches an exit
// and whose IDom is 0 is a root of the forest.
type PostDomTree struct {
    _TreeCore
}

// BuildDomTree computes the dominator tree of g.
func BuildDomTree(g Graph) *DomTree {
    t := new(DomTree)
    t.update(g, true, 0)
    return t
}

// BuildPostDomTree computes the post-dominator forest of g.
func BuildPostDomTree(g Graph) *PostDomTree {
    t := new(PostDomTree)
    t.post = true
    t.update(g, true, 0)
    return t
}

/* update recomputes the tree from g, rerunning the DFS if requested.
 * maxPre confines the semidominator recomputation, 0 means everything */
func (self *_TreeCore) update(g Graph, redfs bool, maxPre int) {
    if redfs {
        self.dfs.run(g, self.post)
    }
    if maxPre == 0 {
        maxPre = self.dfs.numReachable()
    }
    self.runSNCA(g, maxPre)
    self.buildNodes(g.NumBlocks())
    if opts.SanityChecks {
        self.sanityCheck(g)
    }
}

/* buildNodes derives the children lists and tree levels from idoms */
func (self *_TreeCore) buildNodes(nb int) {
    self.nodes = grownodes(self.nodes, nb + 1)

    /* ascending block order keeps every children list sorted */
    for bb := 1; bb <= nb; bb++ {
        if idom := self.idoms[bb]; idom != 0 {
            self.nodes[idom].children = append(self.nodes[idom].children, bb)
        }
    }

    /* levels, breadth-first from the roots */
    q := lane.NewQueue()
    if !self.post {
        self.nodes[1].level = 1
        q.Enqueue(1)
    } else {
        for bb := 1; bb <= nb; bb++ {
            if self.dfs.toPre[bb] != 0 && self.idoms[bb] == 0 {
                self.nodes[bb].level = 1
                q.Enqueue(bb)
            }
        }
    }
    for !q.Empty() {
        bb := q.Dequeue().(int)
        for _, c := range self.nodes[bb].children {
            self.nodes[c].level = self.nodes[bb].level + 1
            q.Enqueue(c)
        }
    }
}

func grownodes(buf []_DomNode, n int) []_DomNode {
    if cap(buf) < n {
        buf = make([]_DomNode, n)
    }

    /* reuse the children buffers across rebuilds */
    buf = buf[:n]
    for i := range buf {
        buf[i].level = 0
        buf[i].children = buf[i].children[:0]
    }
    return buf
}
