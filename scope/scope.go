// This file is part of luar-sub001 - https://github.com/Malien/luar-sub001
//
// Copyright 2024 The luar-sub001 Authors
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

package scope

import "github.com/Malien/luar-sub001/value"

type frame map[string]value.Value

// Stack is a call's local-scope stack: one frame per nested block, sitting
// on top of a shared global.Store for names that resolve past the outermost
// frame. A Stack from NewStack has one empty frame ready to go; the zero
// Stack has no frame and no global store.
type Stack struct {
	global globalStore
	frames []frame
}

// globalStore is the minimal surface Stack needs from global.Store, kept
// as an interface so package scope has no import-cycle-prone dependency on
// the concrete store type's full API.
type globalStore interface {
	Get(name string) value.Value
	Set(name string, v value.Value)
}

// NewStack creates a Stack with a single top-level frame, resolving
// fallthrough names against g.
func NewStack(g globalStore) *Stack {
	return &Stack{global: g, frames: []frame{make(frame)}}
}

// Local is a view onto one frame of a Stack, the unit of work every
// evaluator function that needs name resolution is handed.
type Local struct {
	s     *Stack
	depth int
}

// Top returns a Local view of s's outermost (function-level) frame.
func (s *Stack) Top() Local { return Local{s: s, depth: 0} }

// Get resolves ident by searching frames from l's depth outward to the
// top-level frame, then falling back to the global store.
func (l Local) Get(ident string) value.Value {
	for d := l.depth; d >= 0; d-- {
		if v, ok := l.s.frames[d][ident]; ok {
			return v
		}
	}
	return l.s.global.Get(ident)
}

// Set assigns ident wherever it is already bound — searching from l's depth
// outward, then the global store — creating a new global binding only if
// ident is not found anywhere.
func (l Local) Set(ident string, v value.Value) {
	for d := l.depth; d >= 0; d-- {
		if _, ok := l.s.frames[d][ident]; ok {
			l.s.frames[d][ident] = v
			return
		}
	}
	l.s.global.Set(ident, v)
}

// DeclareLocal binds ident in l's own frame, shadowing any outer or global
// binding of the same name for the remainder of this frame's lifetime.
func (l Local) DeclareLocal(ident string, v value.Value) {
	l.s.frames[l.depth][ident] = v
}

// Child returns a Local one level deeper than l, reusing (and clearing) an
// existing frame slot if one is already allocated at that depth.
func (l Local) Child() Local {
	depth := l.depth + 1
	if depth == len(l.s.frames) {
		l.s.frames = append(l.s.frames, make(frame))
	} else {
		clearFrame(l.s.frames[depth])
	}
	return Local{s: l.s, depth: depth}
}

func clearFrame(f frame) {
	for k := range f {
		delete(f, k)
	}
}
