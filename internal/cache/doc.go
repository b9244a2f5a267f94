// Package cache implements a time-to-live cache on top of the durable
// storage role.
//
// Goals for this package:
//   - One read and at most one write per call; no background goroutines
//   - Lazy expiration: an expired entry stays in storage until the next read
//     of its key recomputes and overwrites it
//   - Storage is advisory: read and write failures never reach the caller,
//     they degrade to the initial value and are logged
//   - TTL <= 0 recomputes and overwrites on every call, so storage always
//     holds the last computed value
package cache
