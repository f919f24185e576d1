// Package checker defines the storeaudit page-checking framework.
//
// Architecture overview:
//
//   - Phases implement the Phase interface (Run + Name) for the four check
//     groups run against every page: accessibility, navigation, functionality,
//     and error handling.
//   - Every phase issues plain GET requests through the Fetcher interface,
//     classifies what it sees into PASS/WARN/FAIL/INFO results, and tallies
//     severity-weighted findings. Network failures are converted into test
//     results at the phase boundary and never propagate.
//   - Client is the production Fetcher: per-call timeouts, capped body reads,
//     no retries.
//   - Thresholds and keyword tables live in thresholds.go so classification
//     policy stays in one place instead of scattering literals through the
//     phases.
//
// This layout keeps check logic internal while the orchestrator in
// application/audit simply sequences phases and records checkpoints.
package checker
