// Package rules decides which files are subject to header enforcement.
//
// A ruleset is an ordered list of glob rules evaluated as a left-to-right
// fold over a boolean accumulator. Every file starts out covered; each
// matching rule overwrites the verdict, so later rules win over earlier
// ones.
//
// # Pattern Conventions
//
// Rules use doublestar glob patterns:
//
//   - `Cargo.toml` - Exact path match (relative to the scan root)
//   - `*.sh` - Glob within a single path segment
//   - `**/*.toml` - Glob across path segments
//   - `!**/Cargo.toml` - Re-inclusion override (leading !)
//
// # Configuration
//
// The excludes list in the config is the usual source of rulesets:
//
//	excludes = [
//	  "**/*.toml",
//	  "!**/Cargo.toml",
//	]
//
// excludes all TOML files, then re-admits Cargo.toml. Order is significant
// and is preserved exactly as declared.
package rules
