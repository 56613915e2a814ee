package permissions

import (
	"github.com/c-massie/PermissionsSystem-sub001/pkg/permpath"
)

// NegationPrefix marks a permission string as an explicit denial when
// passed to the registry's assign and revoke operations. A negating entry
// overrides any less specific grant during resolution.
const NegationPrefix = "-"

// Match describes the permission-set entry that decided a query: the
// covering entry's path, its argument if any, and whether the entry is an
// explicit negation rather than a grant.
type Match struct {
	// Path is the covering entry's path (not the queried path).
	Path permpath.Path

	// Argument is the argument attached to the entry, if present.
	Argument string

	// HasArgument reports whether the entry carries an argument.
	HasArgument bool

	// Negated is true when the entry explicitly denies the permission.
	Negated bool
}

// TargetKind identifies what part of a registry a change applies to.
type TargetKind uint8

const (
	// TargetUser marks a change to a single user's permissions or memberships.
	TargetUser TargetKind = iota

	// TargetGroup marks a change to a single group's permissions or memberships.
	TargetGroup

	// TargetDefaults marks a change to the default permission set or default groups.
	TargetDefaults

	// TargetAll marks a change affecting the entire registry (clear).
	TargetAll
)

// String returns the canonical name of the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetUser:
		return "USER"
	case TargetGroup:
		return "GROUP"
	case TargetDefaults:
		return "DEFAULT_PERMISSIONS"
	case TargetAll:
		return "ALL"
	default:
		return "UNKNOWN"
	}
}

// Change is the immutable value passed to change handlers after a
// mutating registry operation commits. Pointer fields are nil when the
// field does not apply to the change; pointed-to values are copies and
// safe to retain.
type Change[T comparable] struct {
	// Target identifies what the operation applied to.
	Target TargetKind

	// User is the targeted user id, if the operation targeted a user.
	User *T

	// Group is the targeted group id, if the operation targeted a group.
	Group *T

	// Permission is the permission string involved, including the
	// negation prefix if one was given. Empty for membership changes.
	Permission string

	// MemberGroup is the group id involved in a membership change:
	// the group assigned to or revoked from the target.
	MemberGroup *T
}

// ChangeHandler receives a Change after the mutation it describes has
// been committed. Handlers run synchronously in registration order.
type ChangeHandler[T comparable] func(Change[T])
