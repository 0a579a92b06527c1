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
    `github.com/davecgh/go-spew/spew`
)

/* naiveIdoms computes immediate dominators with the textbook iterative
 * dataflow fixpoint, dom(n) = {n} ∪ ⋂ dom(p) over the predecessors of n.
 * It is quadratic at best and exists to certify the Semi-NCA output. The
 * virtual exit of the reversed graph is represented by index 0 */
func naiveIdoms(g Graph, post bool) []int {
    nb := g.NumBlocks()

    /* edges of the traversed graph */
    edges := func(bb int) []int {
        if post {
            return g.Succs(bb)
        } else {
            return g.Preds(bb)
        }
    }

    /* exit blocks are the successors of the virtual exit */
    isexit := make([]bool, nb + 1)
    if post {
        for bb := 1; bb <= nb; bb++ {
            isexit[bb] = len(g.Succs(bb)) == 0
        }
    }

    /* reachability from the root along the traversed direction */
    reach := make([]bool, nb + 1)
    var stack []int
    if post {
        for bb := 1; bb <= nb; bb++ {
            if isexit[bb] {
                reach[bb] = true
                stack = append(stack, bb)
            }
        }
    } else {
        reach[1] = true
        stack = append(stack, 1)
    }
    for len(stack) != 0 {
        bb := stack[len(stack) - 1]
        stack = stack[:len(stack) - 1]
        next := g.Succs(bb)
        if post {
            next = g.Preds(bb)
        }
        for _, v := range next {
            if v != 0 && !reach[v] {
                reach[v] = true
                stack = append(stack, v)
            }
        }
    }

    /* root has only itself, everything else starts at the universe */
    root := 1
    if post {
        root = 0
        reach[0] = true
    }
    dom := make([][]bool, nb + 1)
    for bb := 0; bb <= nb; bb++ {
        if !reach[bb] {
            continue
        }
        dom[bb] = make([]bool, nb + 1)
        if bb == root {
            dom[bb][bb] = true
            continue
        }
        for i := 0; i <= nb; i++ {
            dom[bb][i] = reach[i]
        }
    }

    /* iterate to the fixpoint */
    tmp := make([]bool, nb + 1)
    for changed := true; changed; {
        changed = false
        for bb := 1; bb <= nb; bb++ {
            if !reach[bb] || bb == root {
                continue
            }

            /* intersection over the reachable predecessors */
            for i := range tmp {
                tmp[i] = reach[i]
            }
            for _, p := range edges(bb) {
                if p == 0 || !reach[p] {
                    continue
                }
                for i := range tmp {
                    tmp[i] = tmp[i] && dom[p][i]
                }
            }
            if post && isexit[bb] {
                for i := range tmp {
                    tmp[i] = tmp[i] && dom[0][i]
                }
            }
            tmp[bb] = true

            for i := range tmp {
                if tmp[i] != dom[bb][i] {
                    dom[bb][i] = tmp[i]
                    changed = true
                }
            }
        }
    }

    /* the immediate dominator of n is the strict dominator of n that is
     * dominated by every other strict dominator of n */
    idoms := make([]int, nb + 1)
    for bb := 1; bb <= nb; bb++ {
        if !reach[bb] || bb == root {
            continue
        }
        for d := 0; d <= nb; d++ {
            if d == bb || !dom[bb][d] {
                continue
            }
            pick := true
            for d2 := 0; d2 <= nb; d2++ {
                if d2 != d && d2 != bb && dom[bb][d2] && !dom[d][d2] {
                    pick = false
                    break
                }
            }
            if pick {
                idoms[bb] = d
                break
            }
        }
    }
    return idoms
}

/* sanityCheck certifies the tree against the naive oracle, it runs after
 * every update when DOMTREE_SANITY_CHECKS is set */
func (self *_TreeCore) sanityCheck(g Graph) {
    ref := naiveIdoms(g, self.post)
    for bb := 1; bb <= g.NumBlocks(); bb++ {
        if self.idoms[bb] != ref[bb] {
            panic("domtree: sanity check failed\ngot: " + spew.Sdump(self.idoms) + "want: " + spew.Sdump(ref))
        }
    }
}
