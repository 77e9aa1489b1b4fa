// Copyright 2024 The Cockroach Authors
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

package robintable

import "errors"

// ErrKeyNotFound is returned by At when the requested key is absent. It is
// the only explicit failure the core raises; every other failure mode
// (allocation exhaustion, caller-contract violations) is either propagated
// unchanged from the Go runtime or left as undefined behavior.
var ErrKeyNotFound = errors.New("robintable: key not found")
