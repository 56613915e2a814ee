// Package permissions provides an in-memory permissions registry:
// users and groups hold sets of hierarchical permission paths, users
// belong to groups (transitively, cycles tolerated), and a default
// permission set plus default groups apply to every user.
//
// The registry is generic over the caller's identity type. Two converter
// functions supplied at construction map ids to and from their canonical
// string form; NewStringRegistry covers the common string-keyed case.
//
// Permission strings follow the permpath syntax: dot-separated segments
// with an optional ":argument" suffix. Granting a path implicitly grants
// all of its descendants, and the most specific covering entry decides a
// query. A leading "-" assigns an explicit negation, denying the path
// even when a broader grant exists elsewhere.
//
// Basic usage:
//
//	reg := permissions.NewStringRegistry()
//
//	_ = reg.AssignGroupPermission("admins", "server.manage")
//	_ = reg.AssignUserPermission("doot", "-server.manage.shutdown")
//	reg.AssignGroupToUser("doot", "admins")
//
//	ok, _ := reg.UserHasPermission("doot", "server.manage.restart") // true, via admins
//	ok, _ = reg.UserHasPermission("doot", "server.manage.shutdown") // false, negated
//
// Resolution precedence for a user query: the user's own entries, then
// every transitively reachable group's entries (default groups included),
// then the default permission set as final fallback. The most specific
// covering entry across the user and its groups wins; ties go to the
// earlier source (own entries first, then groups in breadth-first
// membership assignment order).
//
// Mutating operations notify registered change handlers synchronously in
// registration order; ChangeStream adapts those callbacks into buffered
// channels for consumers that prefer to receive changes asynchronously.
//
// The core registry performs no locking. SyncedRegistry decorates it
// with a single mutex around every operation for shared use:
//
//	shared := permissions.NewSyncedStringRegistry()
package permissions
