// Package session provides the Redis key-value backend and the JSON record codec
// used by the cookieless session store.
//
// # Storage format
//
// A session record is a map of JSON-compatible values stored under its session
// identifier as plain UTF-8 JSON text. There is no version envelope and no
// checksum: whatever [Decode] cannot turn into an object is reported as
// [ErrRecordCorrupt].
//
// # Architecture boundaries
//
// This package owns the Redis round-trips ([Store.Get], [Store.Set], [Store.Del])
// and the record encoding. It does NOT generate identifiers, inspect requests,
// or decide what happens when a session is missing or corrupt. That policy
// belongs to the root store.
//
// # What this package must NOT do
//
//   - Import cookieless or middleware (no upward imports).
//   - Cache entries locally; every call round-trips to Redis.
//   - Retry failed commands.
package session
