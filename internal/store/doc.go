// Package store implements the in-memory identity store.
//
// # Layout
//
// Records live in a primary index keyed by the case-folded normalized user
// name. A reverse index maps each immutable user id to its primary key, so
// FindByID costs two map lookups instead of a scan. Claims, roles and logins
// sit in a per-id detail bundle; authenticator keys and recovery codes sit in
// their own per-id side tables.
//
// # Copies
//
// Nothing handed out by the store aliases store memory. Create and Update
// store a clone of the caller's record; every read returns a clone. The field
// accessors (SetPasswordHash, IncrementAccessFailedCount, ...) only touch the
// record passed to them: the change becomes visible to other callers once that
// record is written back with Update.
//
// # Concurrency
//
// Each index and table has its own lock and offers atomic single-key
// operations. Update additionally takes the store-wide structural lock
// exclusively, so a rename (insert new key, drop old key, repoint the reverse
// entry) is observed by readers either entirely or not at all. Create, Delete
// and the lookups take the structural lock shared.
//
// Update is last-write-wins: ConcurrencyStamp is never compared.
//
// Bundle mutations are atomic per user id but not ordered against Update or
// Delete of the same user.
package store
