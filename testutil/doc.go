// Package testutil provides shared test helpers for datastor packages:
// bounded polling for archival outcomes, tar.gz extraction, and binary
// segment read-back. Test-only; never imported by production code.
package testutil
