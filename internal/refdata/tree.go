package refdata

import (
	"sort"

	"github.com/Radioaktywny/budget-planing-sub001/internal/models"
)

// CategoryOption is one entry of the linearized category forest, ready
// for rendering as a selectable list.
type CategoryOption struct {
	ID    string
	Name  string
	Depth int
}

// Linearize produces a depth-first, indented linearization of the
// category forest: top-level categories first, children immediately
// following their parent, depth proportional to nesting. Siblings are
// ordered by name, then ID, so the result is stable regardless of the
// input order.
func Linearize(categories []models.Category) []CategoryOption {
	children := make(map[string][]models.Category)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID] = true
	}
	for _, c := range categories {
		parent := c.ParentID
		// Orphaned nodes (parent missing from the set) are treated as roots.
		if parent != "" && !known[parent] {
			parent = ""
		}
		children[parent] = append(children[parent], c)
	}
	for _, siblings := range children {
		sort.Slice(siblings, func(i, j int) bool {
			if siblings[i].Name != siblings[j].Name {
				return siblings[i].Name < siblings[j].Name
			}
			return siblings[i].ID < siblings[j].ID
		})
	}

	var out []CategoryOption
	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, c := range children[parentID] {
			out = append(out, CategoryOption{ID: c.ID, Name: c.Name, Depth: depth})
			walk(c.ID, depth+1)
		}
	}
	walk("", 0)
	return out
}

// DescendantIDs returns the set of all descendants of the given
// category, computed by a depth-first walk over the forest.
func DescendantIDs(categories []models.Category, id string) map[string]bool {
	children := make(map[string][]string)
	for _, c := range categories {
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c.ID)
		}
	}

	descendants := make(map[string]bool)
	var walk func(string)
	walk = func(current string) {
		for _, child := range children[current] {
			if descendants[child] {
				continue
			}
			descendants[child] = true
			walk(child)
		}
	}
	walk(id)
	return descendants
}

// ValidParents returns the categories that may become the new parent of
// the given category: everything except the category itself and its
// descendants. This guards the forest invariant against cycles.
func ValidParents(categories []models.Category, id string) []models.Category {
	excluded := DescendantIDs(categories, id)
	excluded[id] = true

	var out []models.Category
	for _, c := range categories {
		if !excluded[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
