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
    `fmt`
    `os`
    `path/filepath`
    `strings`
    `testing`

    `github.com/oleiade/lane`
    `github.com/stretchr/testify/require`
)

func buildGraph(nb int, edges [][2]int) *BlockGraph {
    g := NewBlockGraph(nb)
    for _, e := range edges {
        g.AddEdge(e[0], e[1])
    }
    return g
}

func TestDomTree_Diamond(t *testing.T) {
    g := buildGraph(4, [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
    dt := BuildDomTree(g)
    require.Equal(t, []int{0, 0, 1, 1, 1}, dt.idoms)
    require.Equal(t, 1, dt.Level(1))
    require.Equal(t, 2, dt.Level(2))
    require.Equal(t, 2, dt.Level(3))
    require.Equal(t, 2, dt.Level(4))
    require.Equal(t, []int{2, 3, 4}, dt.Children(1))
}

func TestDomTree_SideBranch(t *testing.T) {
    g := buildGraph(6, [][2]int{{1, 2}, {2, 3}, {1, 4}, {4, 5}, {5, 6}, {6, 3}})
    dt := BuildDomTree(g)

    /* block 3 merges two paths, neither 2 nor 6 dominates it */
    require.Equal(t, 1, dt.IDom(3))
    require.Equal(t, 1, dt.IDom(2))
    require.Equal(t, 1, dt.IDom(4))
    require.Equal(t, 4, dt.IDom(5))
    require.Equal(t, 5, dt.IDom(6))
    require.False(t, dt.Dominates(2, 3))
    require.False(t, dt.Dominates(6, 3))
    require.True(t, dt.Dominates(1, 3))
}

func TestDomTree_UnreachableBlock(t *testing.T) {
    g := buildGraph(3, [][2]int{{1, 2}})
    dt := BuildDomTree(g)
    require.Equal(t, []int{0, 0, 1, 0}, dt.idoms)
    require.True(t, dt.Unreachable(3))
    require.False(t, dt.Unreachable(1))
    require.False(t, dt.Unreachable(2))
    require.False(t, dt.Dominates(1, 3))
    require.True(t, dt.Dominates(3, 3))
}

func TestDomTree_Shapes(t *testing.T) {
    tests := []struct {
        name  string
        nb    int
        edges [][2]int
        idoms []int
    } {{
        name  : "linear",
        nb    : 5,
        edges : [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 5}},
        idoms : []int{0, 0, 1, 2, 3, 4},
    }, {
        name  : "loop",
        nb    : 4,
        edges : [][2]int{{1, 2}, {2, 3}, {3, 2}, {3, 4}},
        idoms : []int{0, 0, 1, 2, 3},
    }, {
        name  : "nested_loops",
        nb    : 6,
        edges : [][2]int{{1, 2}, {2, 3}, {3, 4}, {4, 3}, {4, 5}, {5, 2}, {5, 6}},
        idoms : []int{0, 0, 1, 2, 3, 4, 5},
    }, {
        name  : "self_loop",
        nb    : 3,
        edges : [][2]int{{1, 2}, {2, 2}, {2, 3}},
        idoms : []int{0, 0, 1, 2},
    }, {
        name  : "irreducible",
        nb    : 4,
        edges : [][2]int{{1, 2}, {1, 3}, {2, 3}, {3, 2}, {2, 4}, {3, 4}},
        idoms : []int{0, 0, 1, 1, 1},
    }, {
        name  : "reentrant_entry",
        nb    : 3,
        edges : [][2]int{{1, 2}, {2, 3}, {3, 1}},
        idoms : []int{0, 0, 1, 2},
    }}
    for _, tc := range tests {
        t.Run(tc.name, func(t *testing.T) {
            g := buildGraph(tc.nb, tc.edges)
            dt := BuildDomTree(g)
            require.Equal(t, tc.idoms, dt.idoms)
            require.Equal(t, naiveIdoms(g, false), dt.idoms)
            checkTreeInvariants(t, &dt._TreeCore)
        })
    }
}

func TestPostDomTree_Diamond(t *testing.T) {
    g := buildGraph(4, [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 4}})
    pt := BuildPostDomTree(g)
    require.Equal(t, 4, pt.IDom(1))
    require.Equal(t, 4, pt.IDom(2))
    require.Equal(t, 4, pt.IDom(3))
    require.Equal(t, 0, pt.IDom(4))
    require.Equal(t, 1, pt.Level(4))
    require.Equal(t, 2, pt.Level(1))
    require.True(t, pt.PostDominates(4, 1))
    require.False(t, pt.PostDominates(2, 1))
}

func TestPostDomTree_MultipleExits(t *testing.T) {
    g := buildGraph(3, [][2]int{{1, 2}, {1, 3}})
    pt := BuildPostDomTree(g)

    /* no single block post-dominates the entry */
    require.Equal(t, 0, pt.IDom(1))
    require.Equal(t, 0, pt.IDom(2))
    require.Equal(t, 0, pt.IDom(3))
    require.Equal(t, naiveIdoms(g, true), pt.idoms)
}

func TestPostDomTree_UnreachableFromExit(t *testing.T) {
    /* block 2 loops forever and never reaches an exit */
    g := buildGraph(3, [][2]int{{1, 2}, {2, 2}, {1, 3}})
    pt := BuildPostDomTree(g)
    require.True(t, pt.Unreachable(2))
    require.False(t, pt.Unreachable(3))
    require.Equal(t, naiveIdoms(g, true), pt.idoms)
}

/* checkTreeInvariants verifies the structural invariants that must hold for
 * every tree: preorder monotonicity of idoms, sorted children lists with
 * exactly one entry per non-root block, and parent-child level deltas */
func checkTreeInvariants(t *testing.T, tr *_TreeCore) {
    nb := len(tr.idoms) - 1
    for bb := 1; bb <= nb; bb++ {
        idom := tr.idoms[bb]
        if idom == 0 {
            continue
        }
        require.NotZero(t, tr.dfs.toPre[idom], "idom of %d is unreachable", bb)
        require.Less(t, tr.dfs.toPre[idom], tr.dfs.toPre[bb], "idom of %d does not precede it", bb)
        require.Equal(t, tr.nodes[idom].level + 1, tr.nodes[bb].level, "level of %d", bb)

        n := 0
        for _, c := range tr.nodes[idom].children {
            if c == bb {
                n++
            }
        }
        require.Equal(t, 1, n, "children of %d must contain %d once", idom, bb)
    }
    for bb := 1; bb <= nb; bb++ {
        children := tr.nodes[bb].children
        for i := 1; i < len(children); i++ {
            require.Less(t, children[i - 1], children[i], "children of %d not sorted", bb)
        }
    }
}

/* domdot renders the dominator tree as a DOT file for eyeballing */
func domdot(dt *DomTree, g Graph, fn string) {
    buf := []string {
        "digraph DomTree {",
        `    node [ fontname = "Fira Code" ]`,
    }
    for from := 1; from <= g.NumBlocks(); from++ {
        for _, to := range g.Succs(from) {
            buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d [ style = "dashed" ]`, from, to))
        }
    }
    q := lane.NewQueue()
    for q.Enqueue(1); !q.Empty(); {
        p := q.Dequeue().(int)
        for _, c := range dt.Children(p) {
            buf = append(buf, fmt.Sprintf(`    bb_%d -> bb_%d [ color = "red" ]`, p, c))
            q.Enqueue(c)
        }
    }
    buf = append(buf, "}")
    err := os.WriteFile(fn, []byte(strings.Join(buf, "\n")), 0644)
    if err != nil {
        panic(err)
    }
}

func TestDomTree_Draw(t *testing.T) {
    g := buildGraph(6, [][2]int{{1, 2}, {2, 3}, {1, 4}, {4, 5}, {5, 6}, {6, 3}})
    dt := BuildDomTree(g)
    fn := filepath.Join(t.TempDir(), "domtree.gv")
    domdot(dt, g, fn)
    t.Logf("DOT file written to %s", fn)
}
