// Package core defines the syntax tree shared by the parser and the
// renderers.
//
// The tree is a closed sum type: every node implements the sealed Node
// interface and reports a NodeKind, so renderers can switch over the
// complete variant set. Nodes hold no source positions; two trees parsed
// from differently formatted but equivalent text compare equal.
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
package core
