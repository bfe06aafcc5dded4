package service

import (
	"testing"

	"vendorhub/internal/model"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestBuildCategoryTreeNesting(t *testing.T) {
	rootID := uuid.New()
	childID := uuid.New()
	grandchildID := uuid.New()
	otherRootID := uuid.New()

	categories := []model.Category{
		{ID: grandchildID, Name: "Gạch mosaic", ParentID: &childID},
		{ID: rootID, Name: "Vật liệu xây dựng", ParentID: nil},
		{ID: otherRootID, Name: "Nội thất", ParentID: nil},
		{ID: childID, Name: "Gạch ốp lát", ParentID: &rootID},
	}

	forest := BuildCategoryTree(categories)

	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}

	root := FindCategoryNode(forest, rootID)
	if root == nil {
		t.Fatal("root node missing from forest")
	}
	if len(root.SubCategories) != 1 || root.SubCategories[0].ID != childID {
		t.Fatalf("child not nested under root: %+v", root.SubCategories)
	}
	child := root.SubCategories[0]
	if len(child.SubCategories) != 1 || child.SubCategories[0].ID != grandchildID {
		t.Fatalf("grandchild not nested under child: %+v", child.SubCategories)
	}

	other := FindCategoryNode(forest, otherRootID)
	if other == nil || len(other.SubCategories) != 0 {
		t.Fatalf("leaf root should have empty children, got %+v", other)
	}
}

func TestBuildCategoryTreeEmptyInput(t *testing.T) {
	forest := BuildCategoryTree(nil)
	if forest == nil {
		t.Fatal("empty input should yield an empty non-nil forest")
	}
	if len(forest) != 0 {
		t.Fatalf("expected empty forest, got %d nodes", len(forest))
	}
}

func TestBuildCategoryTreePromotesOrphans(t *testing.T) {
	missingParent := uuid.New()
	orphanID := uuid.New()
	selfID := uuid.New()

	categories := []model.Category{
		{ID: orphanID, Name: "Mồ côi", ParentID: &missingParent},
		{ID: selfID, Name: "Tự trỏ", ParentID: &selfID},
	}

	forest := BuildCategoryTree(categories)

	if len(forest) != 2 {
		t.Fatalf("orphans and self-parents must become roots, got %d roots", len(forest))
	}
	for _, node := range forest {
		if len(node.SubCategories) != 0 {
			t.Errorf("promoted node %s should have no children", node.Name)
		}
	}
}

func TestBuildCategoryTreeChildrenInitialized(t *testing.T) {
	forest := BuildCategoryTree([]model.Category{{ID: uuid.New(), Name: "Solo"}})
	if forest[0].SubCategories == nil {
		t.Fatal("SubCategories must be an empty slice, not nil, so it serializes as []")
	}
}

// genCategoryForest produces a flat list where each category's parent, when
// set, points at an earlier entry. That mirrors how write-time validation
// shapes real data.
func genCategoryForest() gopter.Gen {
	return gen.SliceOfN(30, gen.IntRange(0, 100)).Map(func(seeds []int) []model.Category {
		categories := make([]model.Category, 0, len(seeds))
		for i, seed := range seeds {
			c := model.Category{ID: uuid.New(), Name: uuid.NewString()}
			if i > 0 && seed%3 != 0 {
				parent := categories[seed%i].ID
				c.ParentID = &parent
			}
			categories = append(categories, c)
		}
		return categories
	})
}

func TestProperty_TreeContainsEveryCategoryExactlyOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("every input category appears exactly once in the forest", prop.ForAll(
		func(categories []model.Category) bool {
			forest := BuildCategoryTree(categories)

			seen := make(map[uuid.UUID]int)
			var walk func(nodes []*model.CategoryNode)
			walk = func(nodes []*model.CategoryNode) {
				for _, n := range nodes {
					seen[n.ID]++
					walk(n.SubCategories)
				}
			}
			walk(forest)

			if len(seen) != len(categories) {
				t.Logf("FAIL: %d unique nodes in forest, %d categories in input", len(seen), len(categories))
				return false
			}
			for _, c := range categories {
				if seen[c.ID] != 1 {
					t.Logf("FAIL: category %s appears %d times", c.ID, seen[c.ID])
					return false
				}
			}
			return true
		},
		genCategoryForest(),
	))

	properties.Property("resolvable children are never roots, null parents always are", prop.ForAll(
		func(categories []model.Category) bool {
			byID := make(map[uuid.UUID]bool, len(categories))
			for _, c := range categories {
				byID[c.ID] = true
			}

			forest := BuildCategoryTree(categories)
			roots := make(map[uuid.UUID]bool, len(forest))
			for _, n := range forest {
				roots[n.ID] = true
			}

			for _, c := range categories {
				resolvable := c.ParentID != nil && *c.ParentID != c.ID && byID[*c.ParentID]
				if resolvable && roots[c.ID] {
					t.Logf("FAIL: category %s has a resolvable parent but sits at the root", c.ID)
					return false
				}
				if c.ParentID == nil && !roots[c.ID] {
					t.Logf("FAIL: null-parent category %s is not a root", c.ID)
					return false
				}
			}
			return true
		},
		genCategoryForest(),
	))

	properties.TestingRun(t)
}
