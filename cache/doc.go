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


// Package cache provides a bounded LRU cache for memoizing search results.
//
// The cache sits in front of the prefix index and holds recently served
// result lists. Capacity is fixed at construction; when full, inserting a
// new key evicts the least-recently-used entry. Recency is tracked by
// access order: both Get and Put promote the touched entry.
//
// Hit and miss counters are exposed through Stats for observability. They
// are never consulted for correctness.
package cache
