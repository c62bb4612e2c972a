// File: compile.go
// Title: Chain Compiler
// Description: Expands a grammar tree breadth-first into all chains that
//              end in an action or a redirect, and validates the tree
//              before expansion.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package chain

import (
	clerror "github.com/msto63/chainlib/foundation/core/error"
)

type frontierEntry struct {
	node *Node
	path []*Node
}

// Compile expands root into its chains. Redirect targets are not
// expanded; see Node.TargetChains.
func Compile(root *Node) ([]*Chain, error) {
	if root == nil {
		return nil, buildError(clerror.CodeInvalidNode, "root node is nil")
	}
	if err := validateTree(root, make(map[*Node]bool)); err != nil {
		return nil, err
	}

	var chains []*Chain
	frontier := []frontierEntry{{node: root, path: []*Node{root}}}
	for len(frontier) > 0 {
		var next []frontierEntry
		for _, e := range frontier {
			if e.node.action != nil || e.node.kind == KindRedirect {
				if err := checkArgumentNames(e.path); err != nil {
					return nil, err
				}
				chains = append(chains, newChain(e.path))
			} else if len(e.node.children) == 0 {
				return nil, buildError(clerror.CodeUnterminatedChain,
					"chain %q ends without an action", formatNodes(e.path, false)).
					WithDetail("node", e.node.name)
			}
			for _, child := range e.node.children {
				path := make([]*Node, len(e.path)+1)
				copy(path, e.path)
				path[len(e.path)] = child
				next = append(next, frontierEntry{node: child, path: path})
			}
		}
		frontier = next
	}
	return chains, nil
}

func checkArgumentNames(path []*Node) error {
	seen := make(map[string]bool, len(path))
	for _, n := range path {
		if !n.ProvidesArgument() {
			continue
		}
		if seen[n.name] {
			return buildError(clerror.CodeDuplicateArgumentName,
				"argument %q appears twice in chain %q", n.name, formatNodes(path, false)).
				WithDetail("argument", n.name)
		}
		seen[n.name] = true
	}
	return nil
}

// validateTree checks node shapes and rejects cycles. onPath holds the
// ancestors of n.
func validateTree(n *Node, onPath map[*Node]bool) error {
	if n == nil {
		return buildError(clerror.CodeInvalidNode, "nil child node")
	}
	if onPath[n] {
		return buildError(clerror.CodeInvalidNode, "node %q is its own ancestor", n.name)
	}
	if err := validateNode(n); err != nil {
		return err
	}
	onPath[n] = true
	defer delete(onPath, n)
	for _, child := range n.children {
		if err := validateTree(child, onPath); err != nil {
			return err
		}
	}
	return nil
}

func validateNode(n *Node) error {
	invalid := func(reason string) error {
		return buildError(clerror.CodeInvalidNode, "%s node %q: %s", n.kind, n.name, reason).
			WithDetail("node", n.name)
	}
	if n.name == "" {
		return invalid("empty name")
	}
	switch n.kind {
	case KindRedirect:
		switch {
		case n.target == nil:
			return invalid("missing target")
		case len(n.children) > 0:
			return invalid("redirects cannot have children")
		case n.action != nil:
			return invalid("redirects cannot have an action")
		case n.validator != nil, n.completions != nil, n.onError != nil:
			return invalid("redirects only take a guard")
		}
	case KindTyped, KindArray:
		if n.valueType == nil {
			return invalid("missing value type")
		}
	case KindList:
		if n.valueType == nil {
			return invalid("missing value type")
		}
		if len(n.children) > 0 {
			return invalid("lists consume all input and cannot have children")
		}
	case KindRawArgs:
		if len(n.children) > 0 {
			return invalid("raw arguments consume all input and cannot have children")
		}
	}
	return nil
}

// compileRedirects compiles the target chains of every redirect reachable
// from root, following targets into other trees
func compileRedirects(root *Node, visited map[*Node]bool) error {
	if root == nil || visited[root] {
		return nil
	}
	visited[root] = true
	if root.kind == KindRedirect {
		if _, err := root.TargetChains(); err != nil {
			return clerror.Wrapf(err, "redirect %q", root.name)
		}
		if err := compileRedirects(root.target, visited); err != nil {
			return err
		}
	}
	for _, child := range root.children {
		if err := compileRedirects(child, visited); err != nil {
			return err
		}
	}
	return nil
}
