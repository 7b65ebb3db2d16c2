package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxOffset bounds Page*Size so offsets fit every backend.
	MaxOffset = math.MaxInt32
)

var ErrInvalidPage = errors.New("invalid page request")

// Sortable anime properties. Only these reach ORDER BY clauses.
const (
	SortByID   = "id"
	SortByName = "name"
)

type Order struct {
	Property string
	Desc     bool
}

func (o Order) String() string {
	if o.Desc {
		return o.Property + ",desc"
	}
	return o.Property + ",asc"
}

// PageRequest selects a zero-based page of Size elements.
type PageRequest struct {
	Page int
	Size int
	Sort []Order
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Normalize clamps Size into [1, maxSize], substituting defSize for zero, and
// rejects negative page numbers and pages whose offset exceeds MaxOffset.
func (p PageRequest) Normalize(defSize, maxSize int) (PageRequest, error) {
	if p.Page < 0 {
		return PageRequest{}, fmt.Errorf("%w: page must not be negative", ErrInvalidPage)
	}
	if p.Size < 0 {
		return PageRequest{}, fmt.Errorf("%w: size must not be negative", ErrInvalidPage)
	}
	if defSize <= 0 {
		defSize = DefaultPageSize
	}
	if maxSize <= 0 {
		maxSize = MaxPageSize
	}
	if p.Size == 0 {
		p.Size = defSize
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}
	if p.Page > MaxOffset/p.Size {
		return PageRequest{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidPage, p.Page)
	}
	return p, nil
}

// ParseSort parses "property[,asc|desc]" values, one per sort parameter.
func ParseSort(values []string) ([]Order, error) {
	var orders []Order
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		prop, dir, _ := strings.Cut(v, ",")
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop != SortByID && prop != SortByName {
			return nil, fmt.Errorf("%w: cannot sort by %q", ErrInvalidPage, prop)
		}
		o := Order{Property: prop}
		switch strings.ToLower(strings.TrimSpace(dir)) {
		case "", "asc":
		case "desc":
			o.Desc = true
		default:
			return nil, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidPage, dir)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// Page is a slice of a result set plus total-count metadata. Field names
// follow the page wrapper clients of this API already consume.
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Size             int   `json:"size"`
	Number           int   `json:"number"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	Empty            bool  `json:"empty"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             req.Size,
		Number:           req.Page,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= totalPages,
		Empty:            len(content) == 0,
	}
}
