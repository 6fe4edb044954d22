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

package hunt

import "sync/atomic"

// 💾 Store holds the current snapshot behind an atomic pointer. One
// writer (the engine) swaps in whole snapshots; any number of readers
// load without blocking the writer or each other.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// 🏭 NewStore creates a store holding an empty snapshot, so readers
// before the first cycle see an empty hunt rather than nil
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{})
	return s
}

// 📖 Read returns the current snapshot. Callers must treat it as
// read-only; it may be shared with any number of other readers.
func (s *Store) Read() *Snapshot {
	return s.current.Load()
}

// 📤 Publish swaps in a new snapshot. Only the engine calls this.
func (s *Store) Publish(snap *Snapshot) {
	s.current.Store(snap)
}
