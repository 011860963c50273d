package posts

import (
	"fmt"
	"math"
	"strings"
)

// Paging defaults and bounds
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = SortPID
)

// Sortable fields exposed to callers. Stores map these to their own columns.
const (
	SortPID       = "pid"
	SortTitle     = "title"
	SortCreatedAt = "createdAt"
	SortUpdatedAt = "updatedAt"
)

// maxPage keeps Page*MaxPageSize within int
const maxPage = math.MaxInt / MaxPageSize

var validSortFields = map[string]bool{
	SortPID:       true,
	SortTitle:     true,
	SortCreatedAt: true,
	SortUpdatedAt: true,
}

// PageRequest selects one zero-based page of a sorted result set
type PageRequest struct {
	Sort string `json:"sort"`
	Page int    `json:"page"`
	Size int    `json:"size"`
	Desc bool   `json:"desc"`
}

// DefaultPageRequest returns page 0, size 10, newest pid first
func DefaultPageRequest() PageRequest {
	return PageRequest{
		Page: 0,
		Size: DefaultPageSize,
		Sort: DefaultSort,
		Desc: true,
	}
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Normalize fills defaults, clamps size to [1, MaxPageSize] and validates
// the page index and sort field.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Page < 0 {
		return p, NewValidationError("page", "must be non-negative")
	}
	if p.Page > maxPage {
		return p, NewValidationError("page", fmt.Sprintf("must be at most %d", maxPage))
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	if p.Sort == "" {
		p.Sort = DefaultSort
	}
	if !validSortFields[p.Sort] {
		return p, NewValidationError("sort", fmt.Sprintf("unsupported sort field %q", p.Sort))
	}
	return p, nil
}

// ParseSort parses "field" or "field,asc|desc". An omitted direction means descending.
func ParseSort(value string) (field string, desc bool, err error) {
	parts := strings.Split(value, ",")
	field = strings.TrimSpace(parts[0])
	desc = true
	if len(parts) > 2 {
		return "", false, NewValidationError("sort", "expected field[,asc|desc]")
	}
	if len(parts) == 2 {
		switch strings.ToLower(strings.TrimSpace(parts[1])) {
		case "asc":
			desc = false
		case "desc":
			desc = true
		default:
			return "", false, NewValidationError("sort", "direction must be asc or desc")
		}
	}
	if !validSortFields[field] {
		return "", false, NewValidationError("sort", fmt.Sprintf("unsupported sort field %q", field))
	}
	return field, desc, nil
}

// PostQuery is the predicate plus pagination handed to Repository.List.
// Empty filters are not applied.
type PostQuery struct {
	TitleContains    string
	UsernameContains string
	Page             PageRequest
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns term into a LIKE pattern matching it as a literal
// substring. Stores must pair it with ESCAPE '\'.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

// PostPage is one page of posts with the metadata of the whole result set
type PostPage struct {
	Content       []*Post `json:"content"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
	Number        int     `json:"number"`
	Size          int     `json:"size"`
	First         bool    `json:"first"`
	Last          bool    `json:"last"`
}

// NewPostPage builds the page envelope for content fetched with page
func NewPostPage(content []*Post, total int64, page PageRequest) *PostPage {
	if content == nil {
		content = []*Post{}
	}
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return &PostPage{
		Content:       content,
		TotalElements: total,
		TotalPages:    totalPages,
		Number:        page.Page,
		Size:          page.Size,
		First:         page.Page == 0,
		Last:          page.Page >= totalPages-1,
	}
}
