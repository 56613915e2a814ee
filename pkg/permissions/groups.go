package permissions

import "slices"

// membershipGraph records which groups users and groups are members of.
// Adjacency lists preserve insertion order and hold no duplicates; that
// order is the documented tie-break for permission resolution across
// groups of equal specificity.
type membershipGraph[T comparable] struct {
	userEdges  map[T][]T
	groupEdges map[T][]T
	defaults   []T
}

func newMembershipGraph[T comparable]() membershipGraph[T] {
	return membershipGraph[T]{
		userEdges:  make(map[T][]T),
		groupEdges: make(map[T][]T),
	}
}

func appendEdge[T comparable](edges map[T][]T, member, group T) bool {
	if slices.Contains(edges[member], group) {
		return false
	}
	edges[member] = append(edges[member], group)
	return true
}

func removeEdge[T comparable](edges map[T][]T, member, group T) bool {
	groups := edges[member]
	idx := slices.Index(groups, group)
	if idx < 0 {
		return false
	}
	groups = slices.Delete(groups, idx, idx+1)
	if len(groups) == 0 {
		delete(edges, member)
	} else {
		edges[member] = groups
	}
	return true
}

// addUserEdge records that user is a member of group. Returns false when
// the edge already exists.
func (g *membershipGraph[T]) addUserEdge(user, group T) bool {
	return appendEdge(g.userEdges, user, group)
}

// removeUserEdge removes a user's direct membership. No-op when absent.
func (g *membershipGraph[T]) removeUserEdge(user, group T) bool {
	return removeEdge(g.userEdges, user, group)
}

// addGroupEdge records that child is a member of parent. Self-loops are
// permitted; traversal tolerates them without contributing anything.
func (g *membershipGraph[T]) addGroupEdge(child, parent T) bool {
	return appendEdge(g.groupEdges, child, parent)
}

// removeGroupEdge removes a group-to-group membership. No-op when absent.
func (g *membershipGraph[T]) removeGroupEdge(child, parent T) bool {
	return removeEdge(g.groupEdges, child, parent)
}

// addDefault adds a group every user is implicitly a member of.
func (g *membershipGraph[T]) addDefault(group T) bool {
	if slices.Contains(g.defaults, group) {
		return false
	}
	g.defaults = append(g.defaults, group)
	return true
}

// removeDefault removes a default group. No-op when absent.
func (g *membershipGraph[T]) removeDefault(group T) bool {
	idx := slices.Index(g.defaults, group)
	if idx < 0 {
		return false
	}
	g.defaults = slices.Delete(g.defaults, idx, idx+1)
	return true
}

// groupsOfUser returns the user's direct memberships in insertion order.
// Default groups are not included.
func (g *membershipGraph[T]) groupsOfUser(user T) []T {
	return slices.Clone(g.userEdges[user])
}

// parentsOfGroup returns the group's direct memberships in insertion order.
func (g *membershipGraph[T]) parentsOfGroup(group T) []T {
	return slices.Clone(g.groupEdges[group])
}

// defaultGroups returns the default groups in insertion order.
func (g *membershipGraph[T]) defaultGroups() []T {
	return slices.Clone(g.defaults)
}

// hasUserEdges reports whether the user has any direct memberships.
func (g *membershipGraph[T]) hasUserEdges(user T) bool {
	return len(g.userEdges[user]) > 0
}

// hasGroupEdges reports whether the group is a member of any other group.
func (g *membershipGraph[T]) hasGroupEdges(group T) bool {
	return len(g.groupEdges[group]) > 0
}

// allGroupsOfUser returns every group the user belongs to, directly or
// transitively, with default groups acting as implicit additional roots.
// Traversal is breadth-first in edge insertion order (direct memberships
// before defaults); a visited set guards against cycles, so each group
// appears at most once no matter how many paths reach it.
func (g *membershipGraph[T]) allGroupsOfUser(user T) []T {
	roots := g.userEdges[user]
	if len(g.defaults) > 0 {
		roots = append(slices.Clone(roots), g.defaults...)
	}
	return g.expand(roots)
}

// allGroupsOfGroup returns every group the given group belongs to,
// directly or transitively, in breadth-first insertion order. Default
// groups apply to users only and are not included.
func (g *membershipGraph[T]) allGroupsOfGroup(group T) []T {
	return g.expand(g.groupEdges[group])
}

func (g *membershipGraph[T]) expand(roots []T) []T {
	if len(roots) == 0 {
		return nil
	}

	visited := make(map[T]struct{}, len(roots))
	queue := make([]T, 0, len(roots))
	for _, root := range roots {
		if _, seen := visited[root]; seen {
			continue
		}
		visited[root] = struct{}{}
		queue = append(queue, root)
	}

	result := make([]T, 0, len(queue))
	for len(queue) > 0 {
		group := queue[0]
		queue = queue[1:]
		result = append(result, group)

		for _, parent := range g.groupEdges[group] {
			if _, seen := visited[parent]; seen {
				continue
			}
			visited[parent] = struct{}{}
			queue = append(queue, parent)
		}
	}
	return result
}

// clear drops every edge and default group.
func (g *membershipGraph[T]) clear() {
	g.userEdges = make(map[T][]T)
	g.groupEdges = make(map[T][]T)
	g.defaults = nil
}
