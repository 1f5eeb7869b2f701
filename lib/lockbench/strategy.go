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
	"fmt"
	"time"

	"github.com/adobe/lockbench/lib/log"
)

// Method selects which lock coordination strategy the two workers run
type Method int

const (
	// MethodSingle - both workers touch only cell A under its own lock
	MethodSingle Method = iota + 1
	// MethodDeadlock - inverted two-lock orders, expected to hang
	MethodDeadlock
	// MethodScoped - both locks taken as one indivisible step
	MethodScoped
	// MethodOrdered - both locks taken in the fixed A-then-B order
	MethodOrdered
)

// Valid tells if the method is one of the four known strategies
func (m Method) Valid() bool {
	return m >= MethodSingle && m <= MethodOrdered
}

func (m Method) String() string {
	switch m {
	case MethodSingle:
		return "single"
	case MethodDeadlock:
		return "deadlock"
	case MethodScoped:
		return "scoped"
	case MethodOrdered:
		return "ordered"
	}
	return fmt.Sprintf("unknown(%d)", int(m))
}

const (
	// Pause per iteration to widen the interleaving window
	workPause = 10 * time.Microsecond
	// Pause while holding the first lock in the deadlock demo, long
	// enough that both workers are all but certain to hold their first
	// lock before trying the second one
	deadlockHoldPause = 100 * time.Millisecond
)

// access runs the strategy body for one worker of the safe methods.
// MethodDeadlock is not driven through here, its two bodies are fixed
// and take no identity or iteration parameters.
func (m Method) access(rs *Resources, id, iters int) {
	switch m {
	case MethodSingle:
		singleAccess(rs, id, iters)
	case MethodScoped:
		scopedAccess(rs, id, iters)
	case MethodOrdered:
		orderedAccess(rs, id, iters)
	}
}

// singleAccess increments only cell A under its own lock. Only one lock
// is ever held, so no deadlock is possible by construction.
func singleAccess(rs *Resources, id, iters int) {
	logger := log.WithFunc("lockbench", "singleAccess")
	for i := 0; i < iters; i++ {
		rs.A.Mu.Lock()
		if i == 0 {
			// Only print first iteration to keep the output readable
			logger.Info(fmt.Sprintf("Thread %d accessing resource A: %d", id, rs.A.Read()))
		}
		rs.A.Add(1)
		rs.A.Mu.Unlock()

		time.Sleep(workPause)
	}
}

// scopedAccess increments both cells while holding both locks, taken
// jointly through LockBoth so the listing order is irrelevant.
func scopedAccess(rs *Resources, id, iters int) {
	logger := log.WithFunc("lockbench", "scopedAccess")
	for i := 0; i < iters; i++ {
		LockBoth(&rs.A.Mu, &rs.B.Mu)
		if i == 0 {
			logger.Info(fmt.Sprintf("Thread %d safely got both resources", id))
		}
		rs.A.Add(1)
		rs.B.Add(1)
		UnlockBoth(&rs.A.Mu, &rs.B.Mu)

		time.Sleep(workPause)
	}
}

// orderedAccess increments both cells holding both locks, always taken
// in the fixed A-then-B order. With every worker obeying the same total
// order no circular wait can form.
func orderedAccess(rs *Resources, id, iters int) {
	logger := log.WithFunc("lockbench", "orderedAccess")
	for i := 0; i < iters; i++ {
		rs.A.Mu.Lock()
		rs.B.Mu.Lock()
		if i == 0 {
			logger.Info(fmt.Sprintf("Thread %d got locks in order", id))
		}
		rs.A.Add(1)
		rs.B.Add(1)
		rs.B.Mu.Unlock()
		rs.A.Mu.Unlock()

		time.Sleep(workPause)
	}
}

// deadlockLockAB is the first half of the deadlock demo: hold A, wait,
// then want B. Together with deadlockLockBA it forms the circular wait,
// the second Lock call is expected to block forever.
func deadlockLockAB(rs *Resources) {
	logger := log.WithFunc("lockbench", "deadlockLockAB")

	logger.Info("Thread 1: Locking A...")
	rs.A.Mu.Lock()
	logger.Info("Thread 1: Got A, now trying B...")

	time.Sleep(deadlockHoldPause)

	rs.B.Mu.Lock()
	logger.Info("Thread 1: Got both!")

	rs.A.Add(10)
	rs.B.Add(10)

	rs.B.Mu.Unlock()
	rs.A.Mu.Unlock()
}

// deadlockLockBA is the mirrored half: hold B, wait, then want A
func deadlockLockBA(rs *Resources) {
	logger := log.WithFunc("lockbench", "deadlockLockBA")

	logger.Info("Thread 2: Locking B...")
	rs.B.Mu.Lock()
	logger.Info("Thread 2: Got B, now trying A...")

	time.Sleep(deadlockHoldPause)

	rs.A.Mu.Lock()
	logger.Info("Thread 2: Got both!")

	rs.A.Add(20)
	rs.B.Add(20)

	rs.A.Mu.Unlock()
	rs.B.Mu.Unlock()
}
