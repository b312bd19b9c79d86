package student_test

import (
	"math"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
	inmemdb "github.com/trezcool/admitcrm/storage/database/inmem"
	"github.com/trezcool/admitcrm/tests"
)

func ids(students []student.Student) []string {
	res := make([]string, 0, len(students))
	for _, s := range students {
		res = append(res, s.ID)
	}
	return res
}

func cleanQuery(q student.DirectoryQuery) student.DirectoryQuery {
	q.Clean(student.DefaultLimit)
	return q
}

func TestRunDirectory_search(t *testing.T) {
	students := []student.Student{
		testutil.NewStudent("1", testutil.WithName("Priya", "Singh"), testutil.WithEmail("priya@mail.com"), testutil.WithCountry("India")),
		testutil.NewStudent("2", testutil.WithName("John", "Smith"), testutil.WithEmail("john@mail.com"), testutil.WithCountry("Canada")),
		testutil.NewStudent("3", testutil.WithName("Indiana", "Jones"), testutil.WithEmail("indy@mail.com"), testutil.WithCountry("United States")),
		testutil.NewStudent("4", testutil.WithName("Ana", "Lee"), testutil.WithEmail("ana.INDIA@mail.com"), testutil.WithCountry("Japan")),
	}

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "country substring", search: "india", want: []string{"1", "3", "4"}},
		{name: "case insensitive", search: "SMITH", want: []string{"2"}},
		{name: "email", search: "indy@", want: []string{"3"}},
		{name: "trimmed", search: "  john  ", want: []string{"2"}},
		{name: "no match", search: "xyz", want: []string{}},
		{name: "empty", search: "", want: []string{"1", "2", "3", "4"}},
		{name: "whitespace only", search: "   ", want: []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := cleanQuery(student.DirectoryQuery{Search: tt.search, SortBy: student.SortCreatedAt, SortOrder: student.OrderAsc})
			page := student.RunDirectory(students, q, testutil.Now, rule)
			assert.ElementsMatch(t, tt.want, ids(page.Students))
			assert.Equal(t, len(tt.want), page.Total)
		})
	}
}

func TestRunDirectory_searchCountryScenario(t *testing.T) {
	students := []student.Student{
		testutil.NewStudent("priya", testutil.WithName("Priya", "Singh"), testutil.WithEmail("p.singh@mail.com"), testutil.WithCountry("India")),
	}
	page := student.RunDirectory(students, cleanQuery(student.DirectoryQuery{Search: "india"}), testutil.Now, rule)
	require.Len(t, page.Students, 1)
	assert.Equal(t, "Priya Singh", page.Students[0].Name)
}

func TestRunDirectory_categoricalFilters(t *testing.T) {
	snap := inmemdb.NewGenerator(7, testutil.Now).Generate(80)

	for _, status := range student.Statuses {
		q := cleanQuery(student.DirectoryQuery{Status: status, Limit: 100})
		page := student.RunDirectory(snap.Students, q, testutil.Now, rule)
		for _, s := range page.Students {
			if s.Status != status {
				t.Errorf("status filter %s returned %s", status, s.Status)
			}
		}
	}
	for _, priority := range student.Priorities {
		q := cleanQuery(student.DirectoryQuery{Priority: priority, Limit: 100})
		page := student.RunDirectory(snap.Students, q, testutil.Now, rule)
		for _, s := range page.Students {
			assert.Equal(t, priority, s.Priority)
		}
	}

	q := cleanQuery(student.DirectoryQuery{Country: "India", Status: student.StatusApplying, Limit: 100})
	page := student.RunDirectory(snap.Students, q, testutil.Now, rule)
	for _, s := range page.Students {
		assert.Equal(t, "India", s.Country)
		assert.Equal(t, student.StatusApplying, s.Status)
	}
}

func TestRunDirectory_needsAttention(t *testing.T) {
	students := []student.Student{
		testutil.NewStudent("ok"),
		testutil.NewStudent("high", testutil.WithPriority(student.PriorityHigh)),
		testutil.NewStudent("stale", testutil.WithLastActive(testutil.Now.AddDate(0, 0, -10))),
		testutil.NewStudent("tagged", testutil.WithTags("Needs Essay Help")),
	}
	q := cleanQuery(student.DirectoryQuery{Filter: student.FilterNeedsAttention})
	page := student.RunDirectory(students, q, testutil.Now, rule)
	assert.ElementsMatch(t, []string{"high", "stale", "tagged"}, ids(page.Students))

	// same definition as the dashboard
	m := student.ComputeMetrics(students, testutil.Now, rule)
	assert.ElementsMatch(t, ids(m.NeedsAttention), ids(page.Students))
}

func TestSortStudents_stable(t *testing.T) {
	snap := inmemdb.NewGenerator(42, testutil.Now).Generate(50)

	rank := make(map[string]int, len(snap.Students))
	for i, s := range snap.Students {
		rank[s.ID] = i
	}
	check := func(sorted []student.Student) {
		for i := 1; i < len(sorted); i++ {
			if sorted[i-1].Status == sorted[i].Status && rank[sorted[i-1].ID] > rank[sorted[i].ID] {
				t.Fatalf("equal statuses out of original order at %d", i)
			}
		}
	}

	ord := core.Ordering{Field: student.SortStatus, Ascending: true}
	first := append([]student.Student(nil), snap.Students...)
	student.SortStudents(first, ord)
	check(first)

	second := append([]student.Student(nil), snap.Students...)
	student.SortStudents(second, ord)
	check(second)

	if diff := cmp.Diff(ids(first), ids(second)); diff != "" {
		t.Errorf("sorting twice differs (-first +second):\n%s", diff)
	}
}

func TestSortStudents(t *testing.T) {
	students := []student.Student{
		testutil.NewStudent("1", testutil.WithName("bob", "b"), testutil.WithStatus(student.StatusSubmitted), testutil.WithLastActive(testutil.Now.Add(-2*time.Hour))),
		testutil.NewStudent("2", testutil.WithName("Alice", "a"), testutil.WithStatus(student.StatusApplying), testutil.WithLastActive(testutil.Now.Add(-time.Hour))),
		testutil.NewStudent("3", testutil.WithName("carl", "c"), testutil.WithStatus(student.StatusApplying), testutil.WithLastActive(testutil.Now.Add(-3*time.Hour))),
		testutil.NewStudent("4", testutil.WithName("Bob", "b"), testutil.WithStatus(student.StatusExploring), testutil.WithLastActive(testutil.Now.Add(-time.Hour).In(time.FixedZone("WAT", 3600)))),
	}

	tests := []struct {
		name string
		ord  core.Ordering
		want []string
	}{
		{name: "name asc, case insensitive", ord: core.Ordering{Field: student.SortName, Ascending: true}, want: []string{"2", "1", "4", "3"}},
		{name: "name desc keeps ties in input order", ord: core.Ordering{Field: student.SortName}, want: []string{"3", "1", "4", "2"}},
		{name: "status asc by label", ord: core.Ordering{Field: student.SortStatus, Ascending: true}, want: []string{"2", "3", "4", "1"}},
		{name: "last active desc by instant", ord: core.Ordering{Field: student.SortLastActive}, want: []string{"2", "4", "1", "3"}},
		{name: "last active asc", ord: core.Ordering{Field: student.SortLastActive, Ascending: true}, want: []string{"3", "1", "2", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted := append([]student.Student(nil), students...)
			student.SortStudents(sorted, tt.ord)
			assert.Equal(t, tt.want, ids(sorted))
		})
	}
}

func TestRunDirectory_doesNotReorderInput(t *testing.T) {
	snap := inmemdb.NewGenerator(3, testutil.Now).Generate(30)
	orig := ids(snap.Students)

	_ = student.RunDirectory(snap.Students, cleanQuery(student.DirectoryQuery{SortBy: student.SortName, SortOrder: student.OrderAsc}), testutil.Now, rule)

	assert.Equal(t, orig, ids(snap.Students))
}

func TestRunDirectory_pagination(t *testing.T) {
	snap := inmemdb.NewGenerator(42, testutil.Now).Generate(60)

	q := cleanQuery(student.DirectoryQuery{})
	first := student.RunDirectory(snap.Students, q, testutil.Now, rule)
	again := student.RunDirectory(snap.Students, q, testutil.Now, rule)

	assert.Len(t, first.Students, 25)
	assert.Equal(t, 60, first.Total)
	assert.Equal(t, 3, first.Pages)
	if diff := cmp.Diff(first.Students, again.Students); diff != "" {
		t.Errorf("page 0 is not idempotent (-first +again):\n%s", diff)
	}

	q.Page = 2
	last := student.RunDirectory(snap.Students, q, testutil.Now, rule)
	assert.Len(t, last.Students, 10)

	q.Page = 3
	beyond := student.RunDirectory(snap.Students, q, testutil.Now, rule)
	assert.NotNil(t, beyond.Students)
	assert.Empty(t, beyond.Students)
	assert.Equal(t, 60, beyond.Total)

	q.Page = 1000
	assert.Empty(t, student.RunDirectory(snap.Students, q, testutil.Now, rule).Students)
}

func TestPaginate(t *testing.T) {
	students := make([]student.Student, 0, 7)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		students = append(students, testutil.NewStudent(id))
	}

	tests := []struct {
		name       string
		page, size int
		want       []string
	}{
		{name: "first", page: 0, size: 3, want: []string{"a", "b", "c"}},
		{name: "clamped", page: 2, size: 3, want: []string{"g"}},
		{name: "beyond", page: 3, size: 3, want: []string{}},
		{name: "negative page", page: -1, size: 3, want: []string{}},
		{name: "zero size", page: 0, size: 0, want: []string{}},
		{name: "huge page", page: 922337203685477580, size: 100, want: []string{}},
		{name: "max page", page: math.MaxInt, size: 3, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(student.Paginate(students, tt.page, tt.size)))
		})
	}
}

func TestDirectoryPage_links(t *testing.T) {
	students := make([]student.Student, 0, 30)
	for i := 0; i < 30; i++ {
		students = append(students, testutil.NewStudent(string(rune('A'+i))))
	}

	q := cleanQuery(student.DirectoryQuery{Limit: 10, Page: 1})
	page := student.RunDirectory(students, q, testutil.Now, rule)

	next, ok := page.NextQuery()
	require.True(t, ok)
	assert.Equal(t, 2, next.Page)
	prev, ok := page.PrevQuery()
	require.True(t, ok)
	assert.Equal(t, 0, prev.Page)

	q.Page = 2
	_, ok = student.RunDirectory(students, q, testutil.Now, rule).NextQuery()
	assert.False(t, ok)

	q.Page = 0
	_, ok = student.RunDirectory(students, q, testutil.Now, rule).PrevQuery()
	assert.False(t, ok)
}

func TestDirectoryQuery_Values(t *testing.T) {
	q := cleanQuery(student.DirectoryQuery{
		Search:    "india",
		Status:    student.StatusApplying,
		Country:   "India",
		Priority:  student.PriorityHigh,
		Filter:    student.FilterNeedsAttention,
		Page:      2,
		Limit:     50,
		SortBy:    student.SortName,
		SortOrder: student.OrderAsc,
	})

	parsed, err := student.ParseDirectoryQuery(q.Values())
	require.NoError(t, err)
	assert.Equal(t, q, parsed)

	defaults := cleanQuery(student.DirectoryQuery{})
	assert.Equal(t, "limit=25&page=0&sortBy=lastActive&sortOrder=desc", defaults.Values().Encode())

	_, err = student.ParseDirectoryQuery(map[string][]string{"page": {"two"}, "limit": {"x"}})
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, map[string]string{"page": "page must be a number", "limit": "limit must be a number"}, vErr.FieldMap())
}

func TestDirectoryQuery_Validate(t *testing.T) {
	validate, translator := testutil.NewValidator()

	tests := []struct {
		name    string
		q       student.DirectoryQuery
		wantErr map[string]string
	}{
		{name: "defaults", q: student.DirectoryQuery{}},
		{name: "all set", q: student.DirectoryQuery{Status: student.StatusSubmitted, Priority: student.PriorityLow, Filter: "Needs-Attention", Limit: 100, SortBy: student.SortCreatedAt, SortOrder: "ASC"}},
		{name: "bad status", q: student.DirectoryQuery{Status: "Done"}, wantErr: map[string]string{"status": "status must be one of [Exploring Shortlisting Applying Submitted]"}},
		{name: "bad priority", q: student.DirectoryQuery{Priority: "Urgent"}, wantErr: map[string]string{"priority": "priority must be one of [Low Medium High]"}},
		{name: "bad filter", q: student.DirectoryQuery{Filter: "stale"}, wantErr: map[string]string{"filter": "filter must be one of [needs-attention]"}},
		{name: "bad paging", q: student.DirectoryQuery{Page: -1, Limit: 101}, wantErr: map[string]string{
			"page":  "page must be 0 or greater",
			"limit": "limit must be 100 or less",
		}},
		{name: "bad sorting", q: student.DirectoryQuery{SortBy: "gpa", SortOrder: "up"}, wantErr: map[string]string{
			"sortBy":    "sortBy must be one of [name email country grade status priority lastActive createdAt]",
			"sortOrder": "sortOrder must be one of [asc desc]",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := cleanQuery(tt.q)
			err := q.Validate(validate)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
			assert.Equal(t, tt.wantErr, core.TranslateErrors(vErrs, translator))
		})
	}
}

func TestDirectoryQuery_Transition(t *testing.T) {
	cur := cleanQuery(student.DirectoryQuery{Search: "ana", Page: 3})

	tests := []struct {
		name     string
		change   func(q *student.DirectoryQuery)
		wantPage int
	}{
		{name: "page change", change: func(q *student.DirectoryQuery) { q.Page = 4 }, wantPage: 4},
		{name: "sort change keeps page", change: func(q *student.DirectoryQuery) { q.SortBy = student.SortName }, wantPage: 3},
		{name: "search change", change: func(q *student.DirectoryQuery) { q.Search = "anna" }, wantPage: 0},
		{name: "status change", change: func(q *student.DirectoryQuery) { q.Status = student.StatusApplying }, wantPage: 0},
		{name: "country change", change: func(q *student.DirectoryQuery) { q.Country = "India" }, wantPage: 0},
		{name: "priority change", change: func(q *student.DirectoryQuery) { q.Priority = student.PriorityHigh }, wantPage: 0},
		{name: "filter change", change: func(q *student.DirectoryQuery) { q.Filter = student.FilterNeedsAttention }, wantPage: 0},
		{name: "limit change", change: func(q *student.DirectoryQuery) { q.Limit = 50 }, wantPage: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := cur
			tt.change(&next)
			assert.Equal(t, tt.wantPage, cur.Transition(next).Page)
		})
	}
}
