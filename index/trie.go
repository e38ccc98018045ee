package index

import (
	"strings"
	"sync"

	"github.com/poiesic/folio/core"
)

// trieNode is a single node in the prefix trie. Each node exclusively owns
// its children and accumulates a reference to every material whose
// lower-cased title passes through it, in insertion order.
type trieNode struct {
	children  map[rune]*trieNode
	materials []*core.Material
	terminal  bool // marks end of a complete title
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie is a thread-safe character trie keyed by lower-cased material title.
// Because every prefix node carries its full result list, a lookup is O(m)
// in the prefix length with no subtree walk, which keeps lock hold times
// short under concurrent read load. The trade is memory: a material is
// referenced once per character of its title, plus once at the root.
//
// The root node holds every indexed material, so Size and All work without
// traversal.
//
// Duplicate semantics: inserting the same material twice duplicates its
// presence in each node's list, and Remove deletes only the first matching
// occurrence per node. This mirrors the long-standing behavior of the
// catalog this index replaced; callers that double-insert get duplicated
// search results, intentionally.
type Trie struct {
	mu   sync.RWMutex
	root *trieNode
}

// NewTrie creates an empty title trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert indexes a material under every non-empty prefix of its
// lower-cased title, creating nodes on demand. The final node is marked
// terminal. Returns ErrNilMaterial for a nil material.
func (t *Trie) Insert(material *core.Material) error {
	if material == nil {
		return ErrNilMaterial
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	title := strings.ToLower(material.Title)
	node := t.root
	node.materials = append(node.materials, material)

	for _, ch := range title {
		child := node.children[ch]
		if child == nil {
			child = newTrieNode()
			node.children[ch] = child
		}
		child.materials = append(child.materials, material)
		node = child
	}
	node.terminal = true
	return nil
}

// SearchByPrefix returns a copy of the list of materials whose titles
// start with prefix, case-insensitively, in insertion order. A blank
// prefix returns an empty list, not an error.
func (t *Trie) SearchByPrefix(prefix string) []*core.Material {
	p := Normalize(prefix)
	if p == "" {
		return []*core.Material{}
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.walk(p)
	if node == nil {
		return []*core.Material{}
	}
	out := make([]*core.Material, len(node.materials))
	copy(out, node.materials)
	return out
}

// SearchByPrefixWithLimit returns at most limit materials, in the same
// order as SearchByPrefix. A limit of zero or less yields an empty list.
func (t *Trie) SearchByPrefixWithLimit(prefix string, limit int) []*core.Material {
	if limit <= 0 {
		return []*core.Material{}
	}
	matches := t.SearchByPrefix(prefix)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// HasPrefix reports whether any indexed material's title starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	p := Normalize(prefix)
	if p == "" {
		return false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	node := t.walk(p)
	return node != nil && len(node.materials) > 0
}

// Remove walks the insert path of the material's lower-cased title,
// removing one occurrence of the material (matched by Id) from each node
// on the path, root included. Nodes left with no children and no materials
// are pruned bottom-up. Returns true if at least one occurrence was
// removed anywhere on the path.
func (t *Trie) Remove(material *core.Material) bool {
	if material == nil {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := removeFirst(&t.root.materials, material.Id)
	return t.removePath(t.root, []rune(strings.ToLower(material.Title)), 0, material.Id) || removed
}

func (t *Trie) removePath(node *trieNode, title []rune, depth int, id string) bool {
	if depth == len(title) {
		return false
	}
	child := node.children[title[depth]]
	if child == nil {
		return false
	}

	removed := removeFirst(&child.materials, id)
	deeper := t.removePath(child, title, depth+1, id)

	if len(child.materials) == 0 && len(child.children) == 0 {
		delete(node.children, title[depth])
	}
	return removed || deeper
}

// removeFirst deletes the first material with the given id from the list,
// preserving order. Returns true if an element was removed.
func removeFirst(materials *[]*core.Material, id string) bool {
	for i, m := range *materials {
		if m.Id == id {
			*materials = append((*materials)[:i], (*materials)[i+1:]...)
			return true
		}
	}
	return false
}

// Clear resets the trie to empty.
func (t *Trie) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.root = newTrieNode()
}

// Size returns the number of material references held at the root,
// duplicates included.
func (t *Trie) Size() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.root.materials)
}

// All returns a copy of every indexed material in insertion order,
// duplicates included.
func (t *Trie) All() []*core.Material {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*core.Material, len(t.root.materials))
	copy(out, t.root.materials)
	return out
}

// walk follows the normalized prefix from the root. Caller holds t.mu.
func (t *Trie) walk(prefix string) *trieNode {
	node := t.root
	for _, ch := range prefix {
		node = node.children[ch]
		if node == nil {
			return nil
		}
	}
	return node
}

// Normalize lower-cases and trims a search prefix.
func Normalize(prefix string) string {
	return strings.ToLower(strings.TrimSpace(prefix))
}
