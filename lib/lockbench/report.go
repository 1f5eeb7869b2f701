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

import "fmt"

// DeadlockNotice is emitted for the deadlock method instead of a timing
const DeadlockNotice = "Deadlock occurred, threads did not complete."

// Format renders the final report line: whole milliseconds for a
// completed run, the deadlock notice otherwise
func (r Result) Format() string {
	if !r.Completed {
		return DeadlockNotice
	}
	return fmt.Sprintf("Execution time: %d ms", r.Elapsed.Milliseconds())
}
