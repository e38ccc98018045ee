// Package index provides prefix search over material titles.
//
// The Trie type indexes materials under every prefix of their lower-cased
// titles, making a prefix query O(prefix length) regardless of catalog
// size. CachedIndex layers a bounded LRU cache over the trie and owns the
// invalidation policy: any mutation drops every cached query the changed
// title could affect.
//
// The index is derived state. The catalog store is authoritative; Refresh
// rebuilds the index from a repository snapshot whenever the two diverge.
package index
