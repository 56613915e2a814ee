package permissions

// notifier holds the registered change handlers, one list per mutation
// kind. Handlers are invoked synchronously, in registration order,
// immediately after the mutation they describe has been committed.
type notifier[T comparable] struct {
	permissionAssigned []ChangeHandler[T]
	permissionRevoked  []ChangeHandler[T]
	groupAssigned      []ChangeHandler[T]
	groupRevoked       []ChangeHandler[T]
	cleared            []ChangeHandler[T]
}

func notify[T comparable](handlers []ChangeHandler[T], change Change[T]) {
	for _, handler := range handlers {
		handler(change)
	}
}

// OnPermissionAssigned registers a handler for permission assignments,
// including negating assignments.
func (r *Registry[T]) OnPermissionAssigned(handler ChangeHandler[T]) {
	if handler != nil {
		r.notifier.permissionAssigned = append(r.notifier.permissionAssigned, handler)
	}
}

// OnPermissionRevoked registers a handler for permission revocations.
// Revoking an absent permission still notifies; the operation is a
// successful no-op.
func (r *Registry[T]) OnPermissionRevoked(handler ChangeHandler[T]) {
	if handler != nil {
		r.notifier.permissionRevoked = append(r.notifier.permissionRevoked, handler)
	}
}

// OnGroupAssigned registers a handler for membership assignments: group
// to user, group to group, and default-group additions.
func (r *Registry[T]) OnGroupAssigned(handler ChangeHandler[T]) {
	if handler != nil {
		r.notifier.groupAssigned = append(r.notifier.groupAssigned, handler)
	}
}

// OnGroupRevoked registers a handler for membership revocations.
func (r *Registry[T]) OnGroupRevoked(handler ChangeHandler[T]) {
	if handler != nil {
		r.notifier.groupRevoked = append(r.notifier.groupRevoked, handler)
	}
}

// OnCleared registers a handler invoked after the registry is reset.
func (r *Registry[T]) OnCleared(handler ChangeHandler[T]) {
	if handler != nil {
		r.notifier.cleared = append(r.notifier.cleared, handler)
	}
}
