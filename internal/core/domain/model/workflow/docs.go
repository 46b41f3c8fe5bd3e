// Package workflow contains the tenant-configurable side of the engine: the
// transition policy (which status changes are legal) and the quality-gate
// rule sets guarding entry into specific statuses.
//
// A Policy always comes from exactly one source, an active tenant settings
// row or the compiled-in default matrix, resolved by Resolver in the order
// (tenant, category) -> (tenant, default) -> system default. Sources are
// never merged.
package workflow
