// Package langtag owns structural validation of BCP 47 language tags.
//
// Ownership boundary:
// - subtag grammar walk (language, script, region, variants, extensions, private use)
// - whole-string acceptance only; no canonicalization, no registry lookups
package langtag
