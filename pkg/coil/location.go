// Copyright 2015 Google Inc.
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

package coil

import "fmt"

// Location records where in the source a token, node, or error originated.
// Line and Col are both 1's based; Col is 0 if unknown.
type Location struct {
	Path string
	Line int
	Col  int
}

// String renders l in the "path:line:col" form used throughout error
// messages and the CLI.
func (l Location) String() string {
	switch {
	case l.Path == "" && l.Line == 0:
		return "<input>"
	case l.Line == 0:
		return l.Path
	default:
		return fmt.Sprintf("%s:%d:%d", l.Path, l.Line, l.Col)
	}
}
