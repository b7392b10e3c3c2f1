// Package kv provides the durable key-value backends the vault persists to.
//
// Two implementations satisfy Repository:
//
//   - SQLiteRepository: the primary backend, a single kv table with a
//     configurable quota; usage is measured from stored bytes.
//   - FileRepository: a synchronous fallback keeping every key in one JSON
//     document rewritten atomically; it has no real quota, so usage is
//     approximated as UTF-16 code units × 2 against a nominal 5 MiB.
//
// A missing key is not an error: Get returns (nil, nil).
package kv
