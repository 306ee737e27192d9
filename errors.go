/*
 * Copyright 2022 CloudWeGo Authors
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

package licm

import (
    `github.com/cloudwego/licm/internal/ssa`
)

// VerifyError occures when a function violates a structural rule of the IR.
type VerifyError = ssa.VerifyError

// TrapError occures when an instruction faults during interpretation.
type TrapError = ssa.TrapError

// ErrOutOfFuel is returned by Interpret when the step budget runs out.
var ErrOutOfFuel = ssa.ErrOutOfFuel
