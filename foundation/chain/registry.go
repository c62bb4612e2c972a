// File: registry.go
// Title: Root Registry Snapshot
// Description: Immutable, ordered snapshot of registered roots and their
//              compiled chains. Writers build a new snapshot and swap it.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

type registryEntry struct {
	root   *Node
	chains []*Chain
}

// registry is never modified after it has been published
type registry struct {
	entries []registryEntry
}

// with returns a copy with root registered. A root with an equal name is
// replaced in place.
func (r *registry) with(root *Node, chains []*Chain, cmp Comparator) *registry {
	entries := make([]registryEntry, 0, len(r.entries)+1)
	replaced := false
	for _, e := range r.entries {
		if !replaced && cmp.Equal(e.root.name, root.name) {
			entries = append(entries, registryEntry{root: root, chains: chains})
			replaced = true
			continue
		}
		entries = append(entries, e)
	}
	if !replaced {
		entries = append(entries, registryEntry{root: root, chains: chains})
	}
	return &registry{entries: entries}
}

// without returns a copy with the root called name removed
func (r *registry) without(name string, cmp Comparator) (*registry, bool) {
	entries := make([]registryEntry, 0, len(r.entries))
	removed := false
	for _, e := range r.entries {
		if cmp.Equal(e.root.name, name) {
			removed = true
			continue
		}
		entries = append(entries, e)
	}
	return &registry{entries: entries}, removed
}

func (r *registry) chains() []*Chain {
	var out []*Chain
	for _, e := range r.entries {
		out = append(out, e.chains...)
	}
	return out
}

func (r *registry) names() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.root.name
	}
	return out
}
