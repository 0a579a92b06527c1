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

func minint(a int, b int) int {
    if a < b {
        return a
    } else {
        return b
    }
}

func intslice(buf []int, n int) []int {
    if cap(buf) < n {
        return make([]int, n)
    }

    /* clear the reused prefix */
    buf = buf[:n]
    for i := range buf {
        buf[i] = 0
    }
    return buf
}

func removebb(buf []int, bb int) []int {
    for i, v := range buf {
        if v == bb {
            return append(buf[:i], buf[i + 1:]...)
        }
    }
    return buf
}
