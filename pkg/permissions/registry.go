package permissions

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/c-massie/PermissionsSystem-sub001/pkg/permpath"
)

// Registry is an in-memory store mapping users and groups to hierarchical
// permissions, with group membership relations and a default permission
// set applied to every user. It is generic over the caller's identity
// type; two converter functions supplied at construction map ids to and
// from their canonical string form for diagnostics and for surrounding
// persistence layers.
//
// Entities are created lazily by mutating operations only; queries never
// create anything, and a subject whose last permission and membership are
// revoked has its storage entry reclaimed.
//
// Registry is not safe for concurrent use. Wrap it in a SyncedRegistry
// when it is shared between goroutines.
type Registry[T comparable] struct {
	idToString   func(T) string
	idFromString func(string) (T, error)

	users    map[T]*Set
	groups   map[T]*Set
	defaults *Set
	graph    membershipGraph[T]
	notifier notifier[T]
}

// New creates a registry for the identity type T. toString and
// fromString convert ids to and from their canonical string form; both
// must be non-nil, otherwise New returns ErrInvalidOperation.
func New[T comparable](toString func(T) string, fromString func(string) (T, error)) (*Registry[T], error) {
	if toString == nil || fromString == nil {
		return nil, errors.Join(ErrInvalidOperation, errors.New("identity converters cannot be nil"))
	}
	return &Registry[T]{
		idToString:   toString,
		idFromString: fromString,
		users:        make(map[T]*Set),
		groups:       make(map[T]*Set),
		defaults:     NewSet(),
		graph:        newMembershipGraph[T](),
	}, nil
}

// NewStringRegistry creates a registry keyed by plain strings, with
// identity converters.
func NewStringRegistry() *Registry[string] {
	r, err := New(
		func(id string) string { return id },
		func(s string) (string, error) { return s, nil },
	)
	if err != nil {
		// Converters above are non-nil; New cannot fail.
		panic(err)
	}
	return r
}

// IDToString converts an id to its canonical string form using the
// converter supplied at construction.
func (r *Registry[T]) IDToString(id T) string {
	return r.idToString(id)
}

// IDFromString converts a canonical string form back to an id using the
// converter supplied at construction. Intended for persistence layers
// built on top of the registry.
func (r *Registry[T]) IDFromString(s string) (T, error) {
	return r.idFromString(s)
}

// parsePermission splits the optional negation prefix off a permission
// string and parses the remainder into a path.
func parsePermission(permission string) (permpath.Path, bool, error) {
	permission = strings.TrimSpace(permission)
	negated := strings.HasPrefix(permission, NegationPrefix)
	if negated {
		permission = permission[len(NegationPrefix):]
	}
	path, err := permpath.Parse(permission)
	return path, negated, err
}

// permissionString is the canonical form reported in change notifications.
func permissionString(path permpath.Path, negated bool) string {
	if negated {
		return NegationPrefix + path.String()
	}
	return path.String()
}

// AssignUserPermission grants the permission directly to the user,
// creating the user's entry if absent. A NegationPrefix on the
// permission string assigns an explicit denial instead. Returns an error
// only when the permission string is malformed.
func (r *Registry[T]) AssignUserPermission(user T, permission string) error {
	path, negated, err := parsePermission(permission)
	if err != nil {
		return err
	}

	set, ok := r.users[user]
	if !ok {
		set = NewSet()
		r.users[user] = set
	}
	if negated {
		set.AssignNegating(path)
	} else {
		set.Assign(path)
	}

	notify(r.notifier.permissionAssigned, Change[T]{
		Target:     TargetUser,
		User:       &user,
		Permission: permissionString(path, negated),
	})
	return nil
}

// AssignGroupPermission grants the permission directly to the group,
// creating the group's entry if absent.
func (r *Registry[T]) AssignGroupPermission(group T, permission string) error {
	path, negated, err := parsePermission(permission)
	if err != nil {
		return err
	}

	set, ok := r.groups[group]
	if !ok {
		set = NewSet()
		r.groups[group] = set
	}
	if negated {
		set.AssignNegating(path)
	} else {
		set.Assign(path)
	}

	notify(r.notifier.permissionAssigned, Change[T]{
		Target:     TargetGroup,
		Group:      &group,
		Permission: permissionString(path, negated),
	})
	return nil
}

// AssignDefaultPermission grants the permission to the implicit default
// set applied to every user.
func (r *Registry[T]) AssignDefaultPermission(permission string) error {
	path, negated, err := parsePermission(permission)
	if err != nil {
		return err
	}

	if negated {
		r.defaults.AssignNegating(path)
	} else {
		r.defaults.Assign(path)
	}

	notify(r.notifier.permissionAssigned, Change[T]{
		Target:     TargetDefaults,
		Permission: permissionString(path, negated),
	})
	return nil
}

// RevokeUserPermission removes the exact-path entry from the user's set.
// Revoking an absent permission is a successful no-op. When the user's
// last permission goes and no memberships remain, the user's storage
// entry is reclaimed.
func (r *Registry[T]) RevokeUserPermission(user T, permission string) error {
	path, _, err := parsePermission(permission)
	if err != nil {
		return err
	}

	if set, ok := r.users[user]; ok {
		set.Revoke(path)
		r.pruneUser(user)
	}

	notify(r.notifier.permissionRevoked, Change[T]{
		Target:     TargetUser,
		User:       &user,
		Permission: path.String(),
	})
	return nil
}

// RevokeGroupPermission removes the exact-path entry from the group's set.
// Revoking an absent permission is a successful no-op.
func (r *Registry[T]) RevokeGroupPermission(group T, permission string) error {
	path, _, err := parsePermission(permission)
	if err != nil {
		return err
	}

	if set, ok := r.groups[group]; ok {
		set.Revoke(path)
		r.pruneGroup(group)
	}

	notify(r.notifier.permissionRevoked, Change[T]{
		Target:     TargetGroup,
		Group:      &group,
		Permission: path.String(),
	})
	return nil
}

// RevokeDefaultPermission removes the exact-path entry from the default
// set. Revoking an absent permission is a successful no-op.
func (r *Registry[T]) RevokeDefaultPermission(permission string) error {
	path, _, err := parsePermission(permission)
	if err != nil {
		return err
	}

	r.defaults.Revoke(path)

	notify(r.notifier.permissionRevoked, Change[T]{
		Target:     TargetDefaults,
		Permission: path.String(),
	})
	return nil
}

// AssignGroupToUser makes the user a direct member of the group, creating
// either entity's entry if absent.
func (r *Registry[T]) AssignGroupToUser(user, group T) {
	if _, ok := r.users[user]; !ok {
		r.users[user] = NewSet()
	}
	if _, ok := r.groups[group]; !ok {
		r.groups[group] = NewSet()
	}
	r.graph.addUserEdge(user, group)

	notify(r.notifier.groupAssigned, Change[T]{
		Target:      TargetUser,
		User:        &user,
		MemberGroup: &group,
	})
}

// AssignGroupToGroup makes child a member of parent, creating either
// entity's entry if absent. Membership cycles are tolerated by the
// cycle-safe traversal but are not validated against; a self-loop
// contributes nothing.
func (r *Registry[T]) AssignGroupToGroup(child, parent T) {
	if _, ok := r.groups[child]; !ok {
		r.groups[child] = NewSet()
	}
	if _, ok := r.groups[parent]; !ok {
		r.groups[parent] = NewSet()
	}
	r.graph.addGroupEdge(child, parent)

	notify(r.notifier.groupAssigned, Change[T]{
		Target:      TargetGroup,
		Group:       &child,
		MemberGroup: &parent,
	})
}

// AssignDefaultGroup adds the group to the implicit membership set every
// user inherits, creating the group's entry if absent.
func (r *Registry[T]) AssignDefaultGroup(group T) {
	if _, ok := r.groups[group]; !ok {
		r.groups[group] = NewSet()
	}
	r.graph.addDefault(group)

	notify(r.notifier.groupAssigned, Change[T]{
		Target:      TargetDefaults,
		MemberGroup: &group,
	})
}

// RevokeGroupFromUser removes the user's direct membership of the group.
// Revoking an absent membership is a successful no-op.
func (r *Registry[T]) RevokeGroupFromUser(user, group T) {
	r.graph.removeUserEdge(user, group)
	r.pruneUser(user)
	r.pruneGroup(group)

	notify(r.notifier.groupRevoked, Change[T]{
		Target:      TargetUser,
		User:        &user,
		MemberGroup: &group,
	})
}

// RevokeGroupFromGroup removes child's membership of parent. Revoking an
// absent membership is a successful no-op.
func (r *Registry[T]) RevokeGroupFromGroup(child, parent T) {
	r.graph.removeGroupEdge(child, parent)
	r.pruneGroup(child)
	r.pruneGroup(parent)

	notify(r.notifier.groupRevoked, Change[T]{
		Target:      TargetGroup,
		Group:       &child,
		MemberGroup: &parent,
	})
}

// RevokeDefaultGroup removes the group from the implicit membership set.
// Revoking an absent default group is a successful no-op.
func (r *Registry[T]) RevokeDefaultGroup(group T) {
	r.graph.removeDefault(group)
	r.pruneGroup(group)

	notify(r.notifier.groupRevoked, Change[T]{
		Target:      TargetDefaults,
		MemberGroup: &group,
	})
}

// Clear resets the registry to empty: no users, no groups, no default
// permissions or groups. Registered change handlers are kept.
func (r *Registry[T]) Clear() {
	r.users = make(map[T]*Set)
	r.groups = make(map[T]*Set)
	r.defaults = NewSet()
	r.graph.clear()

	notify(r.notifier.cleared, Change[T]{Target: TargetAll})
}

// UserHasPermission reports whether the user holds the queried
// permission. Resolution consults, in order of precedence: the user's
// own set, the sets of every group the user transitively belongs to
// (default groups included), and finally the default permission set —
// the defaults apply only when neither the user nor any reachable group
// holds a covering entry.
//
// Across the user's own entries and all reachable groups, the most
// specific covering entry wins; at equal specificity the earlier source
// wins, where the user's own set comes first and groups follow in
// breadth-first membership-edge insertion order. A winning negation
// entry denies the permission even when a less specific grant exists
// elsewhere. Unknown users have empty sets; absence everywhere means not
// permitted. Returns an error only for a malformed permission string.
func (r *Registry[T]) UserHasPermission(user T, permission string) (bool, error) {
	queried, err := permpath.Parse(permission)
	if err != nil {
		return false, err
	}
	match, ok := r.resolveUser(user, queried)
	return ok && !match.Negated, nil
}

// UserPermissionArgument is the argument-returning variant of
// UserHasPermission: it reports the argument attached to the entry that
// granted the permission. The boolean is true only when the permission
// is held; the argument is empty when the granting entry carries none.
func (r *Registry[T]) UserPermissionArgument(user T, permission string) (string, bool, error) {
	queried, err := permpath.Parse(permission)
	if err != nil {
		return "", false, err
	}
	match, ok := r.resolveUser(user, queried)
	if !ok || match.Negated {
		return "", false, nil
	}
	return match.Argument, true, nil
}

// GroupHasPermission reports whether the group holds the queried
// permission via its own set or any group it transitively belongs to.
// Default permissions and default groups apply to users only and are not
// consulted here.
func (r *Registry[T]) GroupHasPermission(group T, permission string) (bool, error) {
	queried, err := permpath.Parse(permission)
	if err != nil {
		return false, err
	}
	match, ok := r.resolveGroup(group, queried)
	return ok && !match.Negated, nil
}

// GroupPermissionArgument is the argument-returning variant of
// GroupHasPermission.
func (r *Registry[T]) GroupPermissionArgument(group T, permission string) (string, bool, error) {
	queried, err := permpath.Parse(permission)
	if err != nil {
		return "", false, err
	}
	match, ok := r.resolveGroup(group, queried)
	if !ok || match.Negated {
		return "", false, nil
	}
	return match.Argument, true, nil
}

func (r *Registry[T]) resolveUser(user T, queried permpath.Path) (Match, bool) {
	var (
		best  Match
		found bool
	)
	if set, ok := r.users[user]; ok {
		best, found = set.Match(queried)
	}

	for _, group := range r.graph.allGroupsOfUser(user) {
		set, ok := r.groups[group]
		if !ok {
			continue
		}
		match, ok := set.Match(queried)
		if !ok {
			continue
		}
		// Strictly more specific replaces; ties keep the earlier source.
		if !found || match.Path.Specificity() > best.Path.Specificity() {
			best, found = match, true
		}
	}

	if found {
		return best, true
	}
	return r.defaults.Match(queried)
}

func (r *Registry[T]) resolveGroup(group T, queried permpath.Path) (Match, bool) {
	var (
		best  Match
		found bool
	)
	if set, ok := r.groups[group]; ok {
		best, found = set.Match(queried)
	}

	for _, parent := range r.graph.allGroupsOfGroup(group) {
		set, ok := r.groups[parent]
		if !ok {
			continue
		}
		match, ok := set.Match(queried)
		if !ok {
			continue
		}
		if !found || match.Path.Specificity() > best.Path.Specificity() {
			best, found = match, true
		}
	}
	return best, found
}

// GroupsOfUser returns the user's direct group memberships in assignment
// order. Default groups are not included.
func (r *Registry[T]) GroupsOfUser(user T) []T {
	return r.graph.groupsOfUser(user)
}

// AllGroupsOfUser returns every group the user transitively belongs to,
// default groups included, in breadth-first assignment order. Each group
// appears at most once regardless of membership cycles.
func (r *Registry[T]) AllGroupsOfUser(user T) []T {
	return r.graph.allGroupsOfUser(user)
}

// GroupsOfGroup returns the group's direct memberships in assignment order.
func (r *Registry[T]) GroupsOfGroup(group T) []T {
	return r.graph.parentsOfGroup(group)
}

// AllGroupsOfGroup returns every group the given group transitively
// belongs to, in breadth-first assignment order.
func (r *Registry[T]) AllGroupsOfGroup(group T) []T {
	return r.graph.allGroupsOfGroup(group)
}

// DefaultGroups returns the groups every user is implicitly a member of,
// in assignment order.
func (r *Registry[T]) DefaultGroups() []T {
	return r.graph.defaultGroups()
}

// UserPermissions returns the paths of the user's direct entries in
// deterministic order. Nil for unknown users.
func (r *Registry[T]) UserPermissions(user T) []permpath.Path {
	set, ok := r.users[user]
	if !ok {
		return nil
	}
	return set.Paths()
}

// GroupPermissions returns the paths of the group's direct entries in
// deterministic order. Nil for unknown groups.
func (r *Registry[T]) GroupPermissions(group T) []permpath.Path {
	set, ok := r.groups[group]
	if !ok {
		return nil
	}
	return set.Paths()
}

// DefaultPermissions returns the paths of the default set's entries in
// deterministic order.
func (r *Registry[T]) DefaultPermissions() []permpath.Path {
	return r.defaults.Paths()
}

// HasUser reports whether the user has a storage entry: at least one
// direct permission or membership. Queries never create entries.
func (r *Registry[T]) HasUser(user T) bool {
	_, ok := r.users[user]
	return ok
}

// HasGroup reports whether the group has a storage entry.
func (r *Registry[T]) HasGroup(group T) bool {
	_, ok := r.groups[group]
	return ok
}

// Describe renders a human-readable dump of the registry's state using
// the id-to-string converter, with subjects sorted by their string form
// for stable output. Intended for diagnostics.
func (r *Registry[T]) Describe() string {
	var b strings.Builder

	b.WriteString("default permissions:\n")
	for _, entry := range r.defaults.strings() {
		fmt.Fprintf(&b, "  %s\n", entry)
	}

	b.WriteString("default groups:\n")
	for _, group := range r.graph.defaultGroups() {
		fmt.Fprintf(&b, "  %s\n", r.idToString(group))
	}

	b.WriteString("users:\n")
	r.describeSubjects(&b, r.users, r.graph.groupsOfUser)

	b.WriteString("groups:\n")
	r.describeSubjects(&b, r.groups, r.graph.parentsOfGroup)

	return b.String()
}

func (r *Registry[T]) describeSubjects(b *strings.Builder, subjects map[T]*Set, memberships func(T) []T) {
	ids := make([]T, 0, len(subjects))
	for id := range subjects {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, c T) int {
		return strings.Compare(r.idToString(a), r.idToString(c))
	})

	for _, id := range ids {
		fmt.Fprintf(b, "  %s:\n", r.idToString(id))
		for _, entry := range subjects[id].strings() {
			fmt.Fprintf(b, "    %s\n", entry)
		}
		for _, group := range memberships(id) {
			fmt.Fprintf(b, "    member of %s\n", r.idToString(group))
		}
	}
}

func (r *Registry[T]) pruneUser(user T) {
	set, ok := r.users[user]
	if !ok || !set.IsEmpty() || r.graph.hasUserEdges(user) {
		return
	}
	delete(r.users, user)
}

func (r *Registry[T]) pruneGroup(group T) {
	set, ok := r.groups[group]
	if !ok || !set.IsEmpty() || r.graph.hasGroupEdges(group) {
		return
	}
	if r.groupReferenced(group) {
		return
	}
	delete(r.groups, group)
}

// groupReferenced reports whether anything still points at the group: a
// user membership, a child group, or the default-group set.
func (r *Registry[T]) groupReferenced(group T) bool {
	if slices.Contains(r.graph.defaults, group) {
		return true
	}
	for _, groups := range r.graph.userEdges {
		if slices.Contains(groups, group) {
			return true
		}
	}
	for _, groups := range r.graph.groupEdges {
		if slices.Contains(groups, group) {
			return true
		}
	}
	return false
}
