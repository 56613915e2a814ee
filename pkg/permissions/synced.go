package permissions

import (
	"sync"

	"github.com/c-massie/PermissionsSystem-sub001/pkg/permpath"
)

// SyncedRegistry wraps a Registry with a single mutex acquired around
// every public operation, serializing all reads and writes. The core
// registry stays lock-free; this decorator is the concurrency boundary
// for callers sharing one registry between goroutines.
//
// Change handlers registered through a SyncedRegistry run while the lock
// is held; they must not call back into the same wrapper.
type SyncedRegistry[T comparable] struct {
	mu  sync.Mutex
	reg *Registry[T]
}

// NewSynced wraps the registry in a synchronizing decorator. The wrapped
// registry must not be used directly afterwards, or the lock is bypassed.
func NewSynced[T comparable](reg *Registry[T]) *SyncedRegistry[T] {
	return &SyncedRegistry[T]{reg: reg}
}

// NewSyncedStringRegistry creates a string-keyed registry already wrapped
// in the synchronizing decorator.
func NewSyncedStringRegistry() *SyncedRegistry[string] {
	return NewSynced(NewStringRegistry())
}

func (s *SyncedRegistry[T]) AssignUserPermission(user T, permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AssignUserPermission(user, permission)
}

func (s *SyncedRegistry[T]) AssignGroupPermission(group T, permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AssignGroupPermission(group, permission)
}

func (s *SyncedRegistry[T]) AssignDefaultPermission(permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AssignDefaultPermission(permission)
}

func (s *SyncedRegistry[T]) RevokeUserPermission(user T, permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.RevokeUserPermission(user, permission)
}

func (s *SyncedRegistry[T]) RevokeGroupPermission(group T, permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.RevokeGroupPermission(group, permission)
}

func (s *SyncedRegistry[T]) RevokeDefaultPermission(permission string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.RevokeDefaultPermission(permission)
}

func (s *SyncedRegistry[T]) AssignGroupToUser(user, group T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.AssignGroupToUser(user, group)
}

func (s *SyncedRegistry[T]) AssignGroupToGroup(child, parent T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.AssignGroupToGroup(child, parent)
}

func (s *SyncedRegistry[T]) AssignDefaultGroup(group T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.AssignDefaultGroup(group)
}

func (s *SyncedRegistry[T]) RevokeGroupFromUser(user, group T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.RevokeGroupFromUser(user, group)
}

func (s *SyncedRegistry[T]) RevokeGroupFromGroup(child, parent T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.RevokeGroupFromGroup(child, parent)
}

func (s *SyncedRegistry[T]) RevokeDefaultGroup(group T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.RevokeDefaultGroup(group)
}

func (s *SyncedRegistry[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.Clear()
}

func (s *SyncedRegistry[T]) UserHasPermission(user T, permission string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.UserHasPermission(user, permission)
}

func (s *SyncedRegistry[T]) UserPermissionArgument(user T, permission string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.UserPermissionArgument(user, permission)
}

func (s *SyncedRegistry[T]) GroupHasPermission(group T, permission string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.GroupHasPermission(group, permission)
}

func (s *SyncedRegistry[T]) GroupPermissionArgument(group T, permission string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.GroupPermissionArgument(group, permission)
}

func (s *SyncedRegistry[T]) GroupsOfUser(user T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.GroupsOfUser(user)
}

func (s *SyncedRegistry[T]) AllGroupsOfUser(user T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AllGroupsOfUser(user)
}

func (s *SyncedRegistry[T]) GroupsOfGroup(group T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.GroupsOfGroup(group)
}

func (s *SyncedRegistry[T]) AllGroupsOfGroup(group T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.AllGroupsOfGroup(group)
}

func (s *SyncedRegistry[T]) DefaultGroups() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.DefaultGroups()
}

func (s *SyncedRegistry[T]) UserPermissions(user T) []permpath.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.UserPermissions(user)
}

func (s *SyncedRegistry[T]) GroupPermissions(group T) []permpath.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.GroupPermissions(group)
}

func (s *SyncedRegistry[T]) DefaultPermissions() []permpath.Path {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.DefaultPermissions()
}

func (s *SyncedRegistry[T]) HasUser(user T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.HasUser(user)
}

func (s *SyncedRegistry[T]) HasGroup(group T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.HasGroup(group)
}

func (s *SyncedRegistry[T]) IDToString(id T) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.IDToString(id)
}

func (s *SyncedRegistry[T]) IDFromString(str string) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.IDFromString(str)
}

func (s *SyncedRegistry[T]) Describe() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Describe()
}

func (s *SyncedRegistry[T]) OnPermissionAssigned(handler ChangeHandler[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.OnPermissionAssigned(handler)
}

func (s *SyncedRegistry[T]) OnPermissionRevoked(handler ChangeHandler[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.OnPermissionRevoked(handler)
}

func (s *SyncedRegistry[T]) OnGroupAssigned(handler ChangeHandler[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.OnGroupAssigned(handler)
}

func (s *SyncedRegistry[T]) OnGroupRevoked(handler ChangeHandler[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.OnGroupRevoked(handler)
}

func (s *SyncedRegistry[T]) OnCleared(handler ChangeHandler[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reg.OnCleared(handler)
}
