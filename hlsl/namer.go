// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"
)

// namer generates unique identifiers for HLSL output.
// HLSL compares some identifiers case-insensitively, so names are
// tracked in lowercase.
type namer struct {
	usedNames map[string]struct{}
	counter   uint32
}

func newNamer() *namer {
	return &namer{usedNames: make(map[string]struct{})}
}

// call returns a unique, escaped name based on base.
func (n *namer) call(base string) string {
	if base == "" {
		base = UnnamedIdentifier
	}
	return n.unique(Escape(base))
}

// callWithPrefix is call for prefix+base. The prefix itself is not
// escaped.
func (n *namer) callWithPrefix(prefix, base string) string {
	return n.unique(Escape(prefix + base))
}

func (n *namer) unique(escaped string) string {
	lower := strings.ToLower(escaped)
	if !n.isUsedLower(lower) {
		n.usedNames[lower] = struct{}{}
		return escaped
	}
	for {
		n.counter++
		candidate := fmt.Sprintf("%s_%d", escaped, n.counter)
		lower := strings.ToLower(candidate)
		if !n.isUsedLower(lower) {
			n.usedNames[lower] = struct{}{}
			return candidate
		}
	}
}

// isUsed checks if a name has already been used (case-insensitive).
func (n *namer) isUsed(name string) bool {
	return n.isUsedLower(strings.ToLower(name))
}

func (n *namer) isUsedLower(lowerName string) bool {
	_, used := n.usedNames[lowerName]
	return used
}

// reserve marks a name as used without returning it.
func (n *namer) reserve(name string) {
	n.usedNames[strings.ToLower(name)] = struct{}{}
}
