// File: chain.go
// Title: Compiled Chains
// Description: A chain is one root-to-terminal path through a grammar
//              tree together with its weight vector. Chains ending in a
//              redirect are merged with the target's chains at match time.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	"fmt"
	"strings"
)

// Chain is an immutable node sequence. The nodes are borrowed from the
// grammar tree.
type Chain struct {
	nodes   []*Node
	weights []int
}

func newChain(nodes []*Node) *Chain {
	weights := make([]int, len(nodes))
	for i, n := range nodes {
		weights[i] = n.Weight()
	}
	return &Chain{nodes: nodes, weights: weights}
}

// Len returns the number of nodes
func (c *Chain) Len() int {
	return len(c.nodes)
}

// Node returns the node at index i
func (c *Chain) Node(i int) *Node {
	return c.nodes[i]
}

// Nodes returns a copy of the node sequence
func (c *Chain) Nodes() []*Node {
	out := make([]*Node, len(c.nodes))
	copy(out, c.nodes)
	return out
}

// Weights returns a copy of the weight vector
func (c *Chain) Weights() []int {
	out := make([]int, len(c.weights))
	copy(out, c.weights)
	return out
}

// Last returns the final node
func (c *Chain) Last() *Node {
	return c.nodes[len(c.nodes)-1]
}

// IsRedirect reports whether the chain ends in a redirect
func (c *Chain) IsRedirect() bool {
	return c.Last().kind == KindRedirect
}

// Action returns the terminal action, nil for redirect chains
func (c *Chain) Action() Action {
	return c.Last().action
}

// Format renders the chain: literals by name, arguments as <name> and
// redirects as (name)-> unless skipRedirects is set
func (c *Chain) Format(skipRedirects bool) string {
	return formatNodes(c.nodes, skipRedirects)
}

// String renders the chain, hiding redirects of merged chains
func (c *Chain) String() string {
	return c.Format(c.Action() != nil)
}

func formatNodes(nodes []*Node, skipRedirects bool) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch n.kind {
		case KindLiteral:
			parts = append(parts, n.name)
		case KindRedirect:
			if !skipRedirects {
				parts = append(parts, "("+n.name+")->")
			}
		default:
			parts = append(parts, "<"+n.name+">")
		}
	}
	return strings.Join(parts, " ")
}

// Merge builds the chain of a redirect prefix followed by one of its
// target's chains. The result keeps the redirect node, so its length is
// the sum of both lengths.
func Merge(prefix, target *Chain) (*Chain, error) {
	if prefix == nil || target == nil || prefix.Len() == 0 || target.Len() == 0 {
		return nil, fmt.Errorf("merge needs two non-empty chains")
	}
	if !prefix.IsRedirect() {
		return nil, fmt.Errorf("chain %q does not end in a redirect", prefix.Format(false))
	}
	nodes := make([]*Node, 0, prefix.Len()+target.Len())
	nodes = append(nodes, prefix.nodes...)
	nodes = append(nodes, target.nodes...)
	weights := make([]int, 0, len(nodes))
	weights = append(weights, prefix.weights...)
	weights = append(weights, target.weights...)
	return &Chain{nodes: nodes, weights: weights}, nil
}

// compareChains orders chains for disambiguation: the longer chain wins,
// then weights decide element-wise from the left
func compareChains(a, b *Chain) int {
	if a.Len() != b.Len() {
		if a.Len() > b.Len() {
			return 1
		}
		return -1
	}
	for i := range a.weights {
		if a.weights[i] != b.weights[i] {
			if a.weights[i] > b.weights[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}
