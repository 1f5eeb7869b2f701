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

// Package lockbench implements the lock coordination strategies under
// measurement and the two-goroutine runner that drives them
package lockbench

import "sync"

// Initial values of the two shared cells, restored for every new Resources
const (
	InitValueA = 100
	InitValueB = 200
)

// Resource is one shared integer cell guarded by its own exclusive lock.
// Read and Add are only well-defined while the caller holds Mu - the type
// does not check that, the missing check is exactly the hazard the
// strategies demonstrate.
type Resource struct {
	Mu sync.Mutex

	name  string
	value int
}

// Name returns the cell identifier ("A" or "B")
func (r *Resource) Name() string {
	return r.name
}

// Read returns the current value, caller must hold r.Mu
func (r *Resource) Read() int {
	return r.value
}

// Add mutates the value in place, caller must hold r.Mu
func (r *Resource) Add(delta int) {
	r.value += delta
}

// Resources is the pair of shared cells one run operates on. It is
// constructed once per run and passed down by reference, the lock
// ordering discipline lives in the strategies, not here.
type Resources struct {
	A Resource
	B Resource
}

// NewResources creates the pair with its fixed initial values
func NewResources() *Resources {
	return &Resources{
		A: Resource{name: "A", value: InitValueA},
		B: Resource{name: "B", value: InitValueB},
	}
}

// Snapshot returns both values while briefly holding both locks in the
// global A-then-B order. Used for reporting and tests after the workers
// are done, safe to call concurrently with ordered or joint lockers.
func (rs *Resources) Snapshot() (a, b int) {
	rs.A.Mu.Lock()
	rs.B.Mu.Lock()
	a, b = rs.A.Read(), rs.B.Read()
	rs.B.Mu.Unlock()
	rs.A.Mu.Unlock()
	return a, b
}
