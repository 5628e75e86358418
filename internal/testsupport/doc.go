// Package testsupport synthesizes minimal DVD volume trees for tests: a VMG
// IFO with a table of titles, per-title-set VTS IFOs, and VOB parts filled
// with deterministic sector payloads.
package testsupport
