/**
 * Copyright 2025 Adobe. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

package lockbench

import (
	"runtime"
	"sync"
)

// LockBoth acquires both mutexes as one indivisible step: either the
// caller ends up holding both or it holds nothing and retries. Holding
// the first lock it only try-locks the second, backs off completely on
// failure and restarts from the lock it could not get. No partial
// acquisition is ever kept across a blocking wait, so two callers
// passing the locks in opposite order cannot form a circular wait.
func LockBoth(a, b *sync.Mutex) {
	for {
		a.Lock()
		if b.TryLock() {
			return
		}
		a.Unlock()
		// Start the next round from the contended lock
		a, b = b, a
		runtime.Gosched()
	}
}

// UnlockBoth releases a pair taken with LockBoth. Release order does not
// matter for correctness, second-then-first mirrors the acquisition.
func UnlockBoth(a, b *sync.Mutex) {
	b.Unlock()
	a.Unlock()
}
