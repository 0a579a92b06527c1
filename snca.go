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

/** Semi-NCA dominator construction, as described in
 *  https://doi.org/10.1137/S0097539702403514 (Georgiadis & Tarjan)
 */

package domtree

import (
    `github.com/cloudwego/domtree/internal/opts`
)

/* strictly greater than every valid preorder number, 0 would collide with
 * the unreachable marker */
const _SemiInfinity = int(^uint(0) >> 1)

// _SNCAData is the per-node state of the semidominator pass, indexed by
// preorder number. label starts out as the node itself and is the best
// candidate propagated so far by path compression, it settles at semi once
// the node is processed.
type _SNCAData struct {
    semi  int
    label int
}

type _CompressPair struct {
    u int
    v int
}

/* semidominator candidate edges, CFG predecessors for dominators and CFG
 * successors for post-dominators */
func (self *_TreeCore) semiedges(g Graph, bb int) []int {
    if !self.post {
        return g.Preds(bb)
    } else {
        return g.Succs(bb)
    }
}

// runSNCA recomputes semidominators and immediate dominators for preorder
// numbers 1 to maxPre. Passing the reachable-node count recomputes the whole
// tree, a smaller value is the incremental fast path: nodes above maxPre
// keep their semidominators and only refresh their labels.
func (self *_TreeCore) runSNCA(g Graph, maxPre int) {
    dfs := &self.dfs
    nr := dfs.numReachable()

    /* reset the recomputed window */
    self.snca = growsnca(self.snca, nr + 1)
    for w := 1; w <= maxPre; w++ {
        self.snca[w] = _SNCAData { semi: _SemiInfinity, label: w }
    }

    /* nodes above the window are not reprocessed, but compressions from
     * previous runs may have left their labels inconsistent with the current
     * processing order, the final semidominator is a safe floor */
    for w := maxPre + 1; w <= nr; w++ {
        self.snca[w].label = self.snca[w].semi
    }

    /* mutable copy of the DFS parent chain, path compression shortcuts it */
    self.ancestors = append(self.ancestors[:0], dfs.toParentPre...)

    /* the forward entry has no semidominator, post-dominator forests
     * process every node since the root is the virtual exit */
    lo := 2
    if self.post {
        lo = 1
    }

    /* semidominator pass, in decreasing preorder */
    for w := maxPre; w >= lo; w-- {
        semi := self.ancestors[w]
        last := w + 1

        for _, v := range self.semiedges(g, dfs.fromPre[w]) {
            if v == 0 {
                continue
            }

            /* unreachable predecessors contribute nothing */
            vp := dfs.toPre[v]
            if vp == 0 {
                continue
            }

            /* nodes processed earlier in this pass carry their minimum
             * label up the ancestor chain */
            if vp >= last {
                self.compress(vp, last)
            }
            semi = minint(semi, self.snca[vp].label)
        }
        self.snca[w] = _SNCAData { semi: semi, label: semi }
    }

    /* immediate dominator pass, the idom of v is the nearest common
     * ancestor of its semidominator and its DFS parent in the partially
     * built dominator tree, found by walking parents until the preorder
     * drops to the semidominator or below */
    self.idomsPre = append(self.idomsPre[:0], dfs.toParentPre...)
    for v := lo; v <= nr; v++ {
        idom := self.idomsPre[v]
        semi := self.snca[v].semi
        for idom > semi {
            idom = self.idomsPre[idom]
        }
        self.idomsPre[v] = idom
    }

    /* translate to block numbers */
    nb := g.NumBlocks()
    self.idoms = intslice(self.idoms, nb + 1)
    for bb := 1; bb <= nb; bb++ {
        if (!self.post && bb == 1) || dfs.toPre[bb] == 0 {
            self.idoms[bb] = 0
        } else if ip := self.idomsPre[dfs.toPre[bb]]; ip == 0 {
            self.idoms[bb] = 0
        } else {
            self.idoms[bb] = dfs.fromPre[ip]
        }
    }
}

func (self *_TreeCore) compress(v int, last int) {
    if self.dfs.numReachable() <= opts.MaxCompressDepth {
        self.compressrec(v, last)
    } else {
        self.compresswl(v, last)
    }
}

/* recursive variant, the depth is bounded by the ancestor array length */
func (self *_TreeCore) compressrec(v int, last int) {
    u := self.ancestors[v]
    if u >= v {
        panic("domtree: preorder monotonicity violated in path compression")
    }

    /* nodes below last are not linked yet this pass, their labels are
     * final, stop the chain there */
    if u >= last {
        self.compressrec(u, last)
        if lb := self.snca[u].label; lb < self.snca[v].label {
            self.snca[v].label = lb
        }
        self.ancestors[v] = self.ancestors[u]
    }
}

/* worklist variant for deep ancestor chains, emulates the post-order of the
 * recursive variant on an explicit stack of (parent, node) pairs */
func (self *_TreeCore) compresswl(v int, last int) {
    u := self.ancestors[v]
    if u >= v {
        panic("domtree: preorder monotonicity violated in path compression")
    }

    /* TODO: there is a smarter way to do this */
    self.pairs = append(self.pairs[:0], _CompressPair { u: u, v: v })
    for n := len(self.pairs); n != 0; n = len(self.pairs) {
        p := self.pairs[n - 1]

        /* the parent itself needs compressing first */
        if p.u >= last && self.ancestors[p.u] >= last {
            if self.ancestors[p.u] >= p.u {
                panic("domtree: preorder monotonicity violated in path compression")
            }
            self.pairs = append(self.pairs, _CompressPair { u: self.ancestors[p.u], v: p.u })
            continue
        }

        /* parent is fully compressed, fold its label into the node and
         * shortcut the ancestor link */
        if p.u >= last {
            if lb := self.snca[p.u].label; lb < self.snca[p.v].label {
                self.snca[p.v].label = lb
            }
            self.ancestors[p.v] = self.ancestors[p.u]
        }
        self.pairs = self.pairs[:n - 1]
    }
}

func growsnca(buf []_SNCAData, n int) []_SNCAData {
    if cap(buf) >= n {
        return buf[:n]
    }
    ret := make([]_SNCAData, n)
    copy(ret, buf)
    return ret
}
