package student

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/admitcrm/core"
)

// FilterNeedsAttention restricts the directory to students matching the AttentionRule.
const FilterNeedsAttention = "needs-attention"

// Sortable fields
const (
	SortName       = "name"
	SortEmail      = "email"
	SortCountry    = "country"
	SortGrade      = "grade"
	SortStatus     = "status"
	SortPriority   = "priority"
	SortLastActive = "lastActive"
	SortCreatedAt  = "createdAt"

	OrderAsc  = "asc"
	OrderDesc = "desc"

	DefaultLimit = 25
)

var (
	SortFields = []string{SortName, SortEmail, SortCountry, SortGrade, SortStatus, SortPriority, SortLastActive, SortCreatedAt}
	PageSizes  = []int{10, 25, 50, 100}
)

// DirectoryQuery holds the whole directory view state. Every field round-trips through
// the URL so that a shared link reproduces the same page.
type DirectoryQuery struct {
	Search    string   `json:"search,omitempty"`
	Status    Status   `json:"status,omitempty" validate:"omitempty,oneof=Exploring Shortlisting Applying Submitted"`
	Country   string   `json:"country,omitempty"`
	Priority  Priority `json:"priority,omitempty" validate:"omitempty,oneof=Low Medium High"`
	Filter    string   `json:"filter,omitempty" validate:"omitempty,oneof=needs-attention"`
	Page      int      `json:"page" validate:"min=0"`
	Limit     int      `json:"limit" validate:"min=1,max=100"`
	SortBy    string   `json:"sortBy" validate:"oneof=name email country grade status priority lastActive createdAt"`
	SortOrder string   `json:"sortOrder" validate:"oneof=asc desc"`
}

// Clean trims free text and fills in defaults for unset paging & sorting fields.
func (q *DirectoryQuery) Clean(defaultLimit int) {
	q.Search = core.CleanString(q.Search)
	q.Country = core.CleanString(q.Country)
	q.Filter = core.CleanString(q.Filter, true /* lower */)
	q.SortOrder = core.CleanString(q.SortOrder, true /* lower */)
	if q.Limit == 0 {
		if defaultLimit <= 0 {
			defaultLimit = DefaultLimit
		}
		q.Limit = defaultLimit
	}
	if q.SortBy == "" {
		q.SortBy = SortLastActive
	}
	if q.SortOrder == "" {
		q.SortOrder = OrderDesc
	}
}

func (q *DirectoryQuery) Validate(validate *validator.Validate) error {
	return validate.Struct(q)
}

// Ordering returns the sort stage configuration.
func (q DirectoryQuery) Ordering() core.Ordering {
	return core.Ordering{Field: q.SortBy, Ascending: q.SortOrder == OrderAsc}
}

// NeedsAttention reports whether the attention-mode flag is set.
func (q DirectoryQuery) NeedsAttention() bool {
	return q.Filter == FilterNeedsAttention
}

// Transition returns `next` with its page reset to 0 when the result set it describes
// differs from q's (search, filters or page size changed).
func (q DirectoryQuery) Transition(next DirectoryQuery) DirectoryQuery {
	if q.Search != next.Search || q.Status != next.Status || q.Country != next.Country ||
		q.Priority != next.Priority || q.Filter != next.Filter || q.Limit != next.Limit {
		next.Page = 0
	}
	return next
}

// Values encodes q as URL query parameters.
func (q DirectoryQuery) Values() url.Values {
	v := make(url.Values)
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Country != "" {
		v.Set("country", q.Country)
	}
	if q.Priority != "" {
		v.Set("priority", string(q.Priority))
	}
	if q.Filter != "" {
		v.Set("filter", q.Filter)
	}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("sortBy", q.SortBy)
	v.Set("sortOrder", q.SortOrder)
	return v
}

// ParseDirectoryQuery decodes URL query parameters produced by Values (or typed by hand).
func ParseDirectoryQuery(v url.Values) (DirectoryQuery, error) {
	q := DirectoryQuery{
		Search:    v.Get("search"),
		Status:    Status(v.Get("status")),
		Country:   v.Get("country"),
		Priority:  Priority(v.Get("priority")),
		Filter:    v.Get("filter"),
		SortBy:    v.Get("sortBy"),
		SortOrder: v.Get("sortOrder"),
	}
	var fldErrs []core.FieldError
	if s := v.Get("page"); s != "" {
		page, err := strconv.Atoi(s)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: "page", Error: "page must be a number"})
		}
		q.Page = page
	}
	if s := v.Get("limit"); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil {
			fldErrs = append(fldErrs, core.FieldError{Field: "limit", Error: "limit must be a number"})
		}
		q.Limit = limit
	}
	if fldErrs != nil {
		return DirectoryQuery{}, core.NewValidationError(nil, fldErrs...)
	}
	return q, nil
}

type DirectoryPage struct {
	Students []Student      `json:"students"`
	Total    int            `json:"total"` // filtered count, before pagination
	Page     int            `json:"page"`
	Limit    int            `json:"limit"`
	Pages    int            `json:"pages"`
	Query    DirectoryQuery `json:"query"`
}

func (p DirectoryPage) NextQuery() (DirectoryQuery, bool) {
	if p.Page+1 >= p.Pages {
		return DirectoryQuery{}, false
	}
	q := p.Query
	q.Page = p.Page + 1
	return q, true
}

func (p DirectoryPage) PrevQuery() (DirectoryQuery, bool) {
	if p.Page <= 0 {
		return DirectoryQuery{}, false
	}
	q := p.Query
	q.Page = p.Page - 1
	if p.Pages > 0 && q.Page >= p.Pages {
		q.Page = p.Pages - 1
	}
	return q, true
}

// RunDirectory applies the filter, sort and paginate stages, in that order, to students.
// students is never reordered; q is expected to be cleaned.
func RunDirectory(students []Student, q DirectoryQuery, now time.Time, rule AttentionRule) DirectoryPage {
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	filtered := FilterStudents(students, q, now, rule)
	SortStudents(filtered, q.Ordering())

	return DirectoryPage{
		Students: Paginate(filtered, q.Page, q.Limit),
		Total:    len(filtered),
		Page:     q.Page,
		Limit:    q.Limit,
		Pages:    (len(filtered) + q.Limit - 1) / q.Limit,
		Query:    q,
	}
}

// FilterStudents returns a new slice holding the students matching every active predicate of q.
func FilterStudents(students []Student, q DirectoryQuery, now time.Time, rule AttentionRule) []Student {
	search := strings.ToLower(q.Search)
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Email), search) &&
			!strings.Contains(strings.ToLower(s.Country), search) {
			continue
		}
		if q.Status != "" && s.Status != q.Status {
			continue
		}
		if q.Country != "" && s.Country != q.Country {
			continue
		}
		if q.Priority != "" && s.Priority != q.Priority {
			continue
		}
		if q.NeedsAttention() && !rule.Matches(s, now) {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// SortStudents sorts students in place; equal keys keep their relative order.
func SortStudents(students []Student, ord core.Ordering) {
	sort.SliceStable(students, func(i, j int) bool {
		c := compareStudents(students[i], students[j], ord.Field)
		if ord.Ascending {
			return c < 0
		}
		return c > 0
	})
}

func compareStudents(a, b Student, field string) int {
	switch field {
	case SortLastActive:
		return compareTimes(a.LastActive, b.LastActive)
	case SortCreatedAt:
		return compareTimes(a.CreatedAt, b.CreatedAt)
	default:
		return strings.Compare(strings.ToLower(stringField(a, field)), strings.ToLower(stringField(b, field)))
	}
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func stringField(s Student, field string) string {
	switch field {
	case SortName:
		return s.Name
	case SortEmail:
		return s.Email
	case SortCountry:
		return s.Country
	case SortGrade:
		return s.Grade
	case SortStatus:
		return string(s.Status)
	case SortPriority:
		return string(s.Priority)
	default:
		return ""
	}
}

// Paginate returns the `[page*size, page*size+size)` window of students, clamped to its length.
// A page past the end yields an empty slice.
func Paginate(students []Student, page, size int) []Student {
	// compare page counts so that page*size cannot overflow
	if page < 0 || size <= 0 || page >= (len(students)+size-1)/size {
		return []Student{}
	}
	start := page * size
	end := start + size
	if end > len(students) {
		end = len(students)
	}
	return students[start:end]
}
