// Package document defines the declarative page model shared by the binding
// resolver, the validator and the schema migrator. A Document is an ordered
// list of zones, each holding rows, columns and finally elements. Elements are
// a tagged union discriminated by Kind: field, record, markup and structure in
// the current type system, plus the legacy display/input categories accepted
// by the migrator.
//
// Element settings and data are kept as plain nested records (Values) so a
// document round-trips through JSON or YAML without loss and validators can
// report shape mismatches such as a binding that is not an object. Variant
// settings live under `settings.<kind>`: `settings.field`, `settings.record`,
// `settings.markup` and `settings.structure`.
package document
