// Package kv implements the synchronous key/value store that every other
// browserstore package is built on.
//
// A [Store] wraps one backing [Area] (the persistent "local" area or the
// per-process "session" area) and stores values as JSON text:
//   - Set resolves a [Value] and writes its JSON form; falsy values
//     (nil, false, 0, "", NaN) remove the key instead of being written
//   - Get returns the decoded value or the resolved default
//   - Has reports whether Get yields a truthy value, so a stored false, 0
//     or "" is indistinguishable from an absent key
//   - Pull is Get followed by Remove
//
// A Store without an Area behaves as if no storage facility exists: writes
// are no-ops and reads return the default.
package kv
