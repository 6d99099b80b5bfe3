// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package operation runs the steps of a distribution build in order.

🎯 Purpose:
- Names every step so logs and errors say where a run stopped
- Runs steps one at a time on the calling goroutine
- Stops at the first failure; nothing already written is rolled back

🔄 Flow:
1. The orchestrator builds the step list for the selected mode
2. Runner.Run executes them in order
3. A step may return ErrSkipped when it does not apply

🔍 Example:

	runner := operation.NewRunner(logger)
	err := runner.Run(ctx,
		operation.New("readme", writeReadme),
		operation.New("binaries", transferBinaries),
	)
*/
package operation
