// Package markup owns XML generation primitives.
//
// Ownership boundary:
// - element tree with insertion-ordered attributes and children
// - text escaping, attribute escaping, URI percent-encoding
// - document serialization (declaration, processing instructions, root)
//
// It generates markup only; it never parses.
package markup
