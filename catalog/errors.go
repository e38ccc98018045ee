// Copyright 2025 Poiesic Systems
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


package catalog

import "errors"

var (
	// ErrStoreClosed is returned by every operation on a closed store, so
	// callers cannot mistake shutdown for an empty catalog.
	ErrStoreClosed = errors.New("catalog store is closed")

	// ErrDuplicateID records a batch item rejected because a material
	// with the same id already exists.
	ErrDuplicateID = errors.New("duplicate material id")

	// ErrFutureCancelled is returned by Wait on a cancelled future.
	ErrFutureCancelled = errors.New("future cancelled")
)
