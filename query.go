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

import (
    `github.com/oleiade/lane`
)

// Dominates reports whether every path from the entry to b passes through
// a. Every block dominates itself.
func (self *DomTree) Dominates(a int, b int) bool {
    return self.treeReaches(a, b)
}

// PostDominates reports whether every path from b to an exit passes through
// a. Every block post-dominates itself.
func (self *PostDomTree) PostDominates(a int, b int) bool {
    return self.treeReaches(a, b)
}

/* a dominates b iff a is an ancestor of b in the tree, checked by walking b
 * up exactly the level difference and comparing */
func (self *_TreeCore) treeReaches(a int, b int) bool {
    if a == b {
        return true
    }

    la := self.nodes[a].level
    lb := self.nodes[b].level
    if la > lb {
        return false
    }

    for ; lb > la; lb-- {
        b = self.idoms[b]
    }
    return a == b
}

// NearestCommonDominator returns the deepest block that dominates both a
// and b, or 0 if either input is 0. For post-dominator forests both blocks
// must live under the same root.
func (self *_TreeCore) NearestCommonDominator(a int, b int) int {
    if a == 0 || b == 0 {
        return 0
    }

    /* align the deeper one first */
    la := self.nodes[a].level
    lb := self.nodes[b].level
    for ; la > lb; la-- {
        a = self.idoms[a]
    }
    for ; lb > la; lb-- {
        b = self.idoms[b]
    }

    /* then walk up in lockstep until they meet, which they must, at the
     * latest at the root */
    for a != b {
        a = self.idoms[a]
        b = self.idoms[b]
        if a == 0 || b == 0 {
            panic("domtree: no common dominator")
        }
    }
    return a
}

// IDom returns the immediate dominator of bb, or 0 when bb is a root or
// unreachable.
func (self *_TreeCore) IDom(bb int) int {
    return self.idoms[bb]
}

// Level returns the depth of bb in the tree. Roots are at level 1, the
// level of an unreachable block is unspecified.
func (self *_TreeCore) Level(bb int) int {
    return self.nodes[bb].level
}

// Children returns the blocks immediately dominated by bb, in ascending
// block order. The returned slice is owned by the tree.
func (self *_TreeCore) Children(bb int) []int {
    return self.nodes[bb].children
}

// Unreachable reports whether bb is unreachable, from the entry for
// dominator trees and from every exit for post-dominator forests.
func (self *_TreeCore) Unreachable(bb int) bool {
    if !self.post {
        return bb != 1 && self.dfs.toPre[bb] == 0
    } else {
        return self.dfs.toPre[bb] == 0
    }
}

// DominatedIter enumerates every block dominated by a given root, each
// exactly once, in unspecified order.
type DominatedIter struct {
    b int
    t *_TreeCore
    s *lane.Stack
}

// Dominated returns an iterator over root and every block transitively
// dominated by it.
func (self *_TreeCore) Dominated(root int) *DominatedIter {
    s := lane.NewStack()
    s.Push(root)
    return &DominatedIter { t: self, s: s }
}

func (self *DominatedIter) Next() bool {
    if self.s.Empty() {
        self.b = 0
        return false
    }

    /* visit the block, then queue up its children */
    self.b = self.s.Pop().(int)
    for _, c := range self.t.nodes[self.b].children {
        self.s.Push(c)
    }
    return true
}

func (self *DominatedIter) Block() int {
    return self.b
}

func (self *DominatedIter) ForEach(action func(bb int)) {
    for self.Next() {
        action(self.b)
    }
}
