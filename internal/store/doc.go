// Package store provides the persistence side of the contact manager.
//
// It has two layers:
//
//   - KV backends: opaque, synchronous string key-value stores with
//     enumerate/get/set/remove semantics. SQLite is the durable default,
//     Memory serves tests and throwaway sessions, Redis allows a shared
//     server-side store.
//   - Records: the Record Store Adapter that turns a KV into typed
//     contact records. Each stored value is a JSON object tagged on load
//     with its key as the record ID.
//
// # Ordering
//
// Every backend enumerates keys in first-insertion order. Overwriting an
// existing key keeps its position, matching how a browser key-value store
// behaves, so the record view does not reshuffle after an edit.
//
// # SQLite configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// There are no cross-key transactions. A multi-record submit is a series of
// independent writes and may leave a partially-written store if interrupted.
package store
