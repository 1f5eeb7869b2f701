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
	"time"

	"golang.org/x/sync/errgroup"
)

// Result of one completed run. Completed is false only for the deadlock
// method, where no elapsed figure is meaningful.
type Result struct {
	Elapsed   time.Duration
	Completed bool
}

// Run executes one of the safe methods: exactly two workers with
// identities 1 and 2, each iterating cfg.Iters times, timed from just
// before spawn until both joined. For MethodDeadlock it does nothing
// and reports a non-completed result - use RunDeadlock for that one,
// its workers are not expected to ever join.
func Run(cfg *Config, rs *Resources) Result {
	if cfg.Method == MethodDeadlock {
		return Result{Completed: false}
	}

	start := time.Now()

	g := &errgroup.Group{}
	for id := 1; id <= 2; id++ {
		id := id
		g.Go(func() error {
			cfg.Method.access(rs, id, cfg.Iters)
			return nil
		})
	}
	// The workers have no failure path, Wait here is just the join
	_ = g.Wait()

	return Result{Elapsed: time.Since(start), Completed: true}
}

// RunDeadlock spawns the two inverted-order bodies of the deadlock demo
// and returns a channel that is closed only if both of them return.
// With the fixed hold pause both workers are all but certain to grab
// their first lock before wanting the second, so the channel is
// expected to stay open forever. This is a best-effort demonstration of
// the circular wait, not a hard guarantee - the caller must not block
// on the channel without telling the user what is going on first.
func RunDeadlock(rs *Resources) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		g := &errgroup.Group{}
		g.Go(func() error {
			deadlockLockAB(rs)
			return nil
		})
		g.Go(func() error {
			deadlockLockBA(rs)
			return nil
		})
		_ = g.Wait()
		close(done)
	}()
	return done
}
