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

/* virtual exit node of the reversed CFG, it exists only during traversal
 * and is never assigned a number */
const _VirtualExit = -1

type _DFSFrame struct {
    bb     int
    parent int
    pushed bool
}

// _DFSTree carries the preorder and postorder numbering of the reachable
// blocks. Preorder and postorder numbers are 1-based and dense, a block with
// preorder 0 is unreachable. Index 0 of every numbered array is unused.
//
// toPre and toPost are indexed by block number and sized for every block,
// fromPre, fromPost and toParentPre are indexed by preorder or postorder
// number and only cover the reachable blocks. toParentPre maps a preorder
// number to the preorder number of its DFS tree parent, roots map to 0.
type _DFSTree struct {
    toPre       []int
    toPost      []int
    fromPre     []int
    fromPost    []int
    toParentPre []int
    stack       []_DFSFrame
}

func (self *_DFSTree) numReachable() int {
    return len(self.fromPre) - 1
}

func (self *_DFSTree) reset(nb int) {
    self.toPre = intslice(self.toPre, nb + 1)
    self.toPost = intslice(self.toPost, nb + 1)
    self.fromPre = append(self.fromPre[:0], 0)
    self.fromPost = append(self.fromPost[:0], 0)
    self.toParentPre = append(self.toParentPre[:0], 0)
}

/* neighbors to descend into, successors for dominators, predecessors for
 * post-dominators, and every exit block for the virtual exit node */
func (self *_DFSTree) dfsedges(g Graph, bb int, post bool, exits []int) []int {
    if !post {
        return g.Succs(bb)
    } else if bb != _VirtualExit {
        return g.Preds(bb)
    } else {
        return exits
    }
}

// run performs an iterative depth-first traversal and fills in both
// numberings. The start node is block 1 for dominator trees and the virtual
// exit for post-dominator trees. The traversal never recurses, so the stack
// depth does not depend on the shape of the CFG.
func (self *_DFSTree) run(g Graph, post bool) {
    var exits []int
    nb := g.NumBlocks()
    self.reset(nb)

    /* the virtual exit leads to every block without successors */
    if post {
        for bb := 1; bb <= nb; bb++ {
            if len(g.Succs(bb)) == 0 {
                exits = append(exits, bb)
            }
        }
    }

    /* the virtual exit takes preorder slot 0, which is never recorded */
    pre := 1
    pos := 1
    root := 1
    if post {
        pre = 0
        root = _VirtualExit
    }
    self.stack = append(self.stack[:0], _DFSFrame { bb: root })

    for len(self.stack) != 0 {
        n := len(self.stack) - 1
        fr := self.stack[n]

        /* second visit, all children are done, number the node in
         * postorder on the way out */
        if fr.pushed {
            if fr.bb != _VirtualExit {
                self.toPost[fr.bb] = pos
                self.fromPost = append(self.fromPost, fr.bb)
                pos++
            }
            self.stack = self.stack[:n]
            continue
        }

        /* already numbered via a cross or forward edge */
        if fr.bb != _VirtualExit && self.toPre[fr.bb] != 0 {
            self.stack = self.stack[:n]
            continue
        }

        /* first visit, number the node in preorder and record its
         * DFS tree parent */
        if fr.bb != _VirtualExit {
            self.toPre[fr.bb] = pre
            self.fromPre = append(self.fromPre, fr.bb)
            self.toParentPre = append(self.toParentPre, fr.parent)
        }

        /* leave the frame on the stack for the second visit */
        self.stack[n].pushed = true

        /* descend into the neighbors */
        for _, v := range self.dfsedges(g, fr.bb, post, exits) {
            if v != 0 {
                self.stack = append(self.stack, _DFSFrame { bb: v, parent: pre })
            } else if !post {
                panic("domtree: virtual edge in a forward CFG")
            }
        }
        pre++
    }
}
