// Package throttle implements call-site keyed deduplication and rate
// limiting.
//
// A Key is a hash of a source file and line (KeyOf, CallerKey) or of any
// caller-chosen identity (KeyString). CheckAndMarkOnce backs "log once";
// CheckEvery backs "log at most every interval". The once set and the every
// map have separate locks so the two never contend with each other.
//
// Storage is growth-only by default. Programs that derive keys from
// unbounded data should call Prune periodically or use fixed call sites.
package throttle
