package categories

import "time"

// Category is a flat (name, parent) tag row. Rows sharing a parent are shown
// together as a CategoryGroup.
type Category struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Name      string    `json:"name" db:"name"`
	Parent    string    `json:"parent" db:"parent"`
	ID        int64     `json:"id" db:"id"`
}

// CategoryGroup lists the category names under one parent
type CategoryGroup struct {
	Parent   string   `json:"parent"`
	Category []string `json:"category"`
}

// CreateCategoryRequest represents input for creating a category
type CreateCategoryRequest struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

// GroupByParent groups rows by parent. Parents appear in the order they are
// first seen and names keep their row order.
func GroupByParent(rows []*Category) []*CategoryGroup {
	groups := make([]*CategoryGroup, 0)
	index := make(map[string]*CategoryGroup)

	for _, row := range rows {
		group, ok := index[row.Parent]
		if !ok {
			group = &CategoryGroup{Parent: row.Parent, Category: []string{}}
			index[row.Parent] = group
			groups = append(groups, group)
		}
		group.Category = append(group.Category, row.Name)
	}

	return groups
}
