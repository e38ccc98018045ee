// Package catalog provides the concurrent catalog of record for materials.
//
// The Store type owns the authoritative id-to-material map, the derived
// prefix index, and a bounded worker pool. It exposes a synchronous API,
// an asynchronous counterpart for every operation (returning a Future),
// and batch operations with independent per-item outcomes.
//
// # Consistency
//
// Per-id reads and writes are linearizable: a FindByID started after an
// Add returns observes that Add. The search index is updated after the
// map mutation, outside the map's lock, so map state and cached search
// results can disagree for a bounded moment. That window is an accepted
// trade for keeping index maintenance off the write-critical path;
// Refresh forces the two back into agreement.
//
// # Lifecycle
//
// A store is Open on construction and Closed after Close. Operations on a
// closed store fail fast with ErrStoreClosed; closing twice is a no-op.
package catalog
