package service

import (
	"vendorhub/internal/model"

	"github.com/google/uuid"
)

// BuildCategoryTree converts a flat category list into a forest of root nodes
// with SubCategories populated recursively. Input order is irrelevant; child
// order under a parent follows input order. Two passes, O(n).
//
// A node whose ParentID does not resolve to a category in the input (or points
// at itself) is promoted to a root rather than dropped.
func BuildCategoryTree(categories []model.Category) []*model.CategoryNode {
	nodes := make(map[uuid.UUID]*model.CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &model.CategoryNode{
			ID:            c.ID,
			Name:          c.Name,
			ParentID:      c.ParentID,
			SubCategories: []*model.CategoryNode{},
		}
	}

	roots := []*model.CategoryNode{}
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID != nil && *c.ParentID != c.ID {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.SubCategories = append(parent.SubCategories, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	return roots
}

// FindCategoryNode walks a forest depth-first and returns the node with the
// given id, or nil.
func FindCategoryNode(forest []*model.CategoryNode, id uuid.UUID) *model.CategoryNode {
	for _, node := range forest {
		if node.ID == id {
			return node
		}
		if found := FindCategoryNode(node.SubCategories, id); found != nil {
			return found
		}
	}
	return nil
}
