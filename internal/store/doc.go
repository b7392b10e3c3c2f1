// Package store holds the in-memory vault and the operations callers use to
// change it. Every mutation is serialized, applied in memory first and then
// written through to storage before the call returns.
package store
