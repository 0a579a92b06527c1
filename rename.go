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

// RenameNodes rewrites the tree after the caller renumbered the blocks of
// the CFG. rename is indexed by old block number (index 0 is unused),
// rename[old] is the new number of the block, or -1 to drop it. Dropped
// blocks must be unreachable, and kept blocks must map to distinct new
// numbers.
//
// The block-indexed state is rewritten under the new numbering. The
// preorder-indexed state keeps its layout, only the block numbers stored in
// it are remapped, so the numbering of the DFS tree and the semidominators
// stay valid and incremental updates keep working after a rename.
func (self *_TreeCore) RenameNodes(rename []int) {
    nb := 0
    for _, bb := range rename[1:] {
        if bb > nb {
            nb = bb
        }
    }

    /* rewrite the block-indexed arrays under the new numbering */
    toPre := make([]int, nb + 1)
    toPost := make([]int, nb + 1)
    idoms := make([]int, nb + 1)
    for old := 1; old < len(rename); old++ {
        bb := rename[old]
        if bb == -1 {
            if self.dfs.toPre[old] != 0 {
                panic("domtree: dropping a reachable block")
            }
            continue
        }
        toPre[bb] = self.dfs.toPre[old]
        toPost[bb] = self.dfs.toPost[old]
        if idom := self.idoms[old]; idom != 0 {
            idoms[bb] = rename[idom]
        }
    }
    self.dfs.toPre = toPre
    self.dfs.toPost = toPost
    self.idoms = idoms

    /* preorder-indexed arrays hold block numbers by value, remap in place */
    for p := 1; p < len(self.dfs.fromPre); p++ {
        self.dfs.fromPre[p] = rename[self.dfs.fromPre[p]]
    }
    for p := 1; p < len(self.dfs.fromPost); p++ {
        self.dfs.fromPost[p] = rename[self.dfs.fromPost[p]]
    }

    /* children lists and levels are derived state, rebuild them */
    self.buildNodes(nb)
}
