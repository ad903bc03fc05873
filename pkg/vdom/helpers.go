package vdom

import (
	"fmt"
	"sort"
)

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// Range maps items to nodes, skipping nil results.
func Range[T any](items []T, fn func(int, T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(i, item); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedAttrKeys returns the attribute names of v in ascending order.
func (v *VNode) SortedAttrKeys() []string {
	return sortedKeys(v.Attrs)
}

// SortedEventNames returns the bound event names of v in ascending order.
func (v *VNode) SortedEventNames() []string {
	return sortedKeys(v.Events)
}
