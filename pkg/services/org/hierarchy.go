package org

import (
	"github.com/de-tools/impact-atlas/pkg/models/domain"
)

// Hierarchy is an in-memory arena over the organization tree: id to
// parent id plus a derived children index. Walks are index lookups and
// carry a visited set, so cyclic parent data degrades to a truncated
// walk instead of hanging the request.
type Hierarchy struct {
	byID     map[int64]domain.Organization
	parents  map[int64]int64
	children map[int64][]int64
}

func NewHierarchy(orgs []domain.Organization) *Hierarchy {
	h := &Hierarchy{
		byID:     make(map[int64]domain.Organization, len(orgs)),
		parents:  make(map[int64]int64),
		children: make(map[int64][]int64),
	}
	for _, o := range orgs {
		h.byID[o.ID] = o
		if o.ParentID != 0 {
			h.parents[o.ID] = o.ParentID
			h.children[o.ParentID] = append(h.children[o.ParentID], o.ID)
		}
	}
	return h
}

func (h *Hierarchy) Get(id int64) (domain.Organization, bool) {
	o, ok := h.byID[id]
	return o, ok
}

// Descendants returns the transitive closure over children, unbounded
// depth, excluding the node itself.
func (h *Hierarchy) Descendants(id int64) []domain.Organization {
	visited := map[int64]bool{id: true}
	var out []domain.Organization
	h.walkChildren(id, visited, &out)
	return out
}

func (h *Hierarchy) walkChildren(id int64, visited map[int64]bool, out *[]domain.Organization) {
	for _, childID := range h.children[id] {
		if visited[childID] {
			continue
		}
		visited[childID] = true
		if child, ok := h.byID[childID]; ok {
			*out = append(*out, child)
		}
		h.walkChildren(childID, visited, out)
	}
}

// Ancestors returns the chain from the immediate parent up to the root.
func (h *Hierarchy) Ancestors(id int64) []domain.Organization {
	visited := map[int64]bool{id: true}
	var out []domain.Organization
	current, ok := h.parents[id]
	for ok && !visited[current] {
		visited[current] = true
		if parent, found := h.byID[current]; found {
			out = append(out, parent)
		}
		current, ok = h.parents[current]
	}
	return out
}

// VisibleSet is the node itself plus all descendants and all ancestors,
// the visibility rule for organization management views.
func (h *Hierarchy) VisibleSet(id int64) []domain.Organization {
	var out []domain.Organization
	if self, ok := h.byID[id]; ok {
		out = append(out, self)
	}
	out = append(out, h.Descendants(id)...)
	out = append(out, h.Ancestors(id)...)
	return out
}
