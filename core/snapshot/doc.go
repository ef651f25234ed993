// Package snapshot builds the immutable membership sets served by the filter.
//
// A Snapshot is created once from a Source (a file, an object in a bucket or a
// database column), sorted, and never modified afterwards. Lookups use binary
// search and need no locking.
//
// # Source Format
//
// Plain text. Tokens are decimal non-negative integers separated by any mix of
// whitespace and commas:
//
//	1001, 1002
//	7 42,9
//
// Tokens that do not parse are dropped and counted (see Snapshot.Skipped); they
// never fail the load. Duplicates are kept.
//
// # Errors
//
// Load returns a *ConfigError when the source cannot be opened or read. Use
// errors.Is(err, snapshot.ErrIOFailure) to test for it.
package snapshot
