package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/damoang/angple-search/internal/common"
	"github.com/go-playground/validator/v10"
)

// SearchKind content kind filter
type SearchKind string

const (
	KindAll       SearchKind = "ALL"
	KindCommunity SearchKind = "COMMUNITY"
	KindPost      SearchKind = "POST"
	KindComment   SearchKind = "COMMENT"
	KindAccount   SearchKind = "ACCOUNT"
)

// ContentKinds the four searchable kinds, in response order
var ContentKinds = []SearchKind{KindCommunity, KindPost, KindComment, KindAccount}

// Includes reports whether a query with this kind filter asks for kind k.
// An unrecognised filter includes nothing.
func (s SearchKind) Includes(k SearchKind) bool {
	return s == KindAll || s == k
}

// SortOrder recency direction used after relevance
type SortOrder string

const (
	OrderNewest SortOrder = "NEWEST"
	OrderOldest SortOrder = "OLDEST"
)

// Direction returns the SQL direction for recency and id tiebreaks
func (o SortOrder) Direction() string {
	if o == OrderOldest {
		return "ASC"
	}
	return "DESC"
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
	// MaxOffset largest row offset a page may start at
	MaxOffset = math.MaxInt32
)

// SearchParams raw search input as received from the transport layer.
// Nil pointers mean "use the default".
type SearchParams struct {
	Keyword   string
	Kind      string
	Order     string
	Page      *int
	PageSize  *int
	ScopeSlug string
}

// SearchQuery validated, normalized search request. Build it with NewSearchQuery.
type SearchQuery struct {
	Keyword   string     `validate:"required"`
	Kind      SearchKind `validate:"required"`
	Order     SortOrder  `validate:"oneof=NEWEST OLDEST"`
	Page      int        `validate:"min=0"`
	PageSize  int        `validate:"min=1,max=50"`
	ScopeSlug string     `validate:"omitempty,max=50"`
}

var queryValidator = validator.New()

// NewSearchQuery normalizes params, applies defaults and validates the result.
// Errors wrap common.ErrInvalidInput.
func NewSearchQuery(p SearchParams, defaultPageSize int) (SearchQuery, error) {
	if defaultPageSize < 1 || defaultPageSize > MaxPageSize {
		defaultPageSize = DefaultPageSize
	}

	q := SearchQuery{
		Keyword:   strings.TrimSpace(p.Keyword),
		Kind:      KindAll,
		Order:     OrderNewest,
		PageSize:  defaultPageSize,
		ScopeSlug: strings.TrimSpace(p.ScopeSlug),
	}
	if k := strings.TrimSpace(p.Kind); k != "" {
		q.Kind = SearchKind(strings.ToUpper(k))
	}
	if o := strings.TrimSpace(p.Order); o != "" {
		q.Order = SortOrder(strings.ToUpper(o))
	}
	if p.Page != nil {
		q.Page = *p.Page
	}
	if p.PageSize != nil {
		q.PageSize = *p.PageSize
	}

	if err := queryValidator.Struct(q); err != nil {
		return SearchQuery{}, translateValidation(err)
	}
	// Page*PageSize must not overflow into a negative offset
	if q.Page > MaxOffset/q.PageSize {
		return SearchQuery{}, fmt.Errorf("%w: page is too large", common.ErrInvalidInput)
	}
	return q, nil
}

// Offset row offset of the requested page
func (q SearchQuery) Offset() int {
	return q.Page * q.PageSize
}

func translateValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	fe := verrs[0]
	switch fe.Field() {
	case "Keyword":
		return fmt.Errorf("%w: keyword is required", common.ErrInvalidInput)
	case "Page":
		return fmt.Errorf("%w: page must be >= 0", common.ErrInvalidInput)
	case "PageSize":
		return fmt.Errorf("%w: page_size must be between 1 and %d", common.ErrInvalidInput, MaxPageSize)
	case "Order":
		return fmt.Errorf("%w: order must be newest or oldest", common.ErrInvalidInput)
	default:
		return fmt.Errorf("%w: invalid %s", common.ErrInvalidInput, strings.ToLower(fe.Field()))
	}
}

// AccessContext who is searching. Built once per call, never mutated.
type AccessContext struct {
	CallerID   *int64
	Privileged bool
}

// Anonymous access context for callers without identity
func Anonymous() AccessContext {
	return AccessContext{}
}

// Authenticated access context for a known account
func Authenticated(accountID int64, privileged bool) AccessContext {
	id := accountID
	return AccessContext{CallerID: &id, Privileged: privileged}
}

// IsAnonymous reports whether no caller identity is attached
func (a AccessContext) IsAnonymous() bool {
	return a.CallerID == nil
}

// RankedIDSet assembled ids of one page for one kind, in display order
type RankedIDSet struct {
	IDs     []int64
	HasMore bool
}

// Identifiable projection carrying its row id
type Identifiable interface {
	HitID() int64
}

// ResultSlice one page of results for a single content kind
type ResultSlice[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	PageSize    int  `json:"page_size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewResultSlice builds a slice; HasPrevious is derived from page
func NewResultSlice[T any](items []T, page, pageSize int, hasNext bool) ResultSlice[T] {
	if items == nil {
		items = []T{}
	}
	return ResultSlice[T]{
		Items:       items,
		Page:        page,
		PageSize:    pageSize,
		HasNext:     hasNext,
		HasPrevious: page > 0,
	}
}

// EmptyResultSlice slice for a kind that was not requested
func EmptyResultSlice[T any](page, pageSize int) ResultSlice[T] {
	return NewResultSlice[T](nil, page, pageSize, false)
}

// SearchResponse combined per-kind slices
type SearchResponse struct {
	Communities ResultSlice[CommunityHit] `json:"communities"`
	Posts       ResultSlice[PostHit]      `json:"posts"`
	Comments    ResultSlice[CommentHit]   `json:"comments"`
	Accounts    ResultSlice[AccountHit]   `json:"accounts"`
}
