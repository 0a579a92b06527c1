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

/** Dynamic Semi-NCA edge updates, following
 *  https://doi.org/10.1137/1.9781611972863.6 (Georgiadis et al.)
 */

package domtree

// InsertEdge updates the tree after the edge from -> to was added to g.
// The graph must already contain the new edge. Nothing happens when from is
// unreachable.
//
// The depth-first numbering stays valid unless to was unreachable or the new
// edge leads into a differently-numbered corner of the DFS tree. When it
// stays valid, only semidominators of preorder numbers up to pre(to) can
// change, and the recomputation is confined to that window.
func (self *DomTree) InsertEdge(g Graph, from int, to int) {
    fp := self.dfs.toPre[from]
    tp := self.dfs.toPre[to]

    if fp == 0 {
        return
    }
    if tp == 0 || (fp < tp && self.dfs.toPost[from] < self.dfs.toPost[to]) {
        self.update(g, true, 0)
    } else {
        self.update(g, false, tp)
    }
}

// DeleteEdge updates the tree after the edge from -> to was removed from g.
// The graph must no longer contain the edge. Nothing happens when from is
// unreachable.
//
// Removing the DFS tree edge into to invalidates the numbering and forces a
// full rebuild. Otherwise the tree can only change if from sat on a
// semidominator path into to, in which case the semidominators up to
// pre(to) are recomputed.
func (self *DomTree) DeleteEdge(g Graph, from int, to int) {
    fp := self.dfs.toPre[from]
    tp := self.dfs.toPre[to]

    if fp == 0 || tp == 0 {
        return
    }
    if fp == self.dfs.toParentPre[tp] {
        self.update(g, true, 0)
    } else if self.onSemiPath(fp, tp) {
        self.update(g, false, tp)
    }
}

// InsertEdge updates the forest after the edge from -> to was added to g.
// Post-dominator updates always rebuild in full.
func (self *PostDomTree) InsertEdge(g Graph, from int, to int) {
    self.update(g, true, 0)
}

// DeleteEdge updates the forest after the edge from -> to was removed from
// g. Post-dominator updates always rebuild in full.
func (self *PostDomTree) DeleteEdge(g Graph, from int, to int) {
    self.update(g, true, 0)
}

/* onSemiPath reports whether the node at preorder fp can lie on a
 * semidominator path from semi(tp) to tp. Every node on such a path is
 * semi(tp) itself or a DFS tree descendant of it, so the walk follows DFS
 * parents. Preorder numbers along the parent chain decrease monotonically,
 * so once the walk drops below semi(tp) it can never get back */
func (self *_TreeCore) onSemiPath(fp int, tp int) bool {
    ts := self.snca[tp].semi
    for cur := fp; cur >= ts; cur = self.dfs.toParentPre[cur] {
        if cur == ts {
            return true
        }
    }
    return false
}
