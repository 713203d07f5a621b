// Package safety evaluates snapshots of vehicle readings against fixed limits.
//
// A Monitor is a pure function of its Limits and the Readings it is given.
// Every rule is evaluated on every call and all that fire are returned; the
// monitor keeps no history, so deduplication and rate limiting belong to the
// caller.
package safety
