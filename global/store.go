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

package global

import "github.com/Malien/luar-sub001/value"

// CellID is a stable index into a Store's cell table, assigned the first
// time a name is seen and never reused.
type CellID int32

// Store is the set of all global bindings visible to a running module.
// The zero Store is ready to use.
type Store struct {
	names map[string]CellID
	cells []value.Value
}

// NewStore allocates an empty global store.
func NewStore() *Store {
	return &Store{names: make(map[string]CellID)}
}

// CellFor returns the CellID for name, creating a new Nil-valued cell the
// first time name is seen. The returned ID is stable for the lifetime of s.
func (s *Store) CellFor(name string) CellID {
	if s.names == nil {
		s.names = make(map[string]CellID)
	}
	if id, ok := s.names[name]; ok {
		return id
	}
	id := CellID(len(s.cells))
	s.names[name] = id
	s.cells = append(s.cells, value.NilValue)
	return id
}

// LookupCell reports the CellID already assigned to name, without creating
// one if name has never been seen.
func (s *Store) LookupCell(name string) (CellID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// Get reads the named global directly, returning Nil for a name that has
// never been assigned.
func (s *Store) Get(name string) value.Value {
	id, ok := s.names[name]
	if !ok {
		return value.NilValue
	}
	return s.cells[id]
}

// Set assigns a value to name, creating the cell if this is the first
// assignment.
func (s *Store) Set(name string, v value.Value) {
	s.cells[s.CellFor(name)] = v
}

// ValueOf reads the value held in cell id. id must have come from CellFor
// or LookupCell against this same Store.
func (s *Store) ValueOf(id CellID) value.Value {
	return s.cells[id]
}

// SetCell assigns a value directly through a CellID, the fast path the
// register machine uses once a global reference has been resolved at
// compile time.
func (s *Store) SetCell(id CellID, v value.Value) {
	s.cells[id] = v
}

// Len reports how many distinct global names have been seen.
func (s *Store) Len() int { return len(s.cells) }
