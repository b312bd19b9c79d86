package student

import (
	"sort"
	"time"
)

// FunnelStage is the bucket a student falls in based on their actual progress,
// which may lag behind or run ahead of their declared Status.
type FunnelStage string

const (
	StageExploring    FunnelStage = "exploring"
	StageShortlisting FunnelStage = "shortlisting"
	StageApplying     FunnelStage = "applying"
	StageSubmitted    FunnelStage = "submitted"
)

// FunnelStageOf applies the first matching rule: submitted, applying, shortlisting, exploring.
func FunnelStageOf(s Student) FunnelStage {
	switch {
	case s.Progress.ApplicationsSubmitted > 0:
		return StageSubmitted
	case s.Progress.EssaysStarted:
		return StageApplying
	case s.Progress.CollegeListCreated:
		return StageShortlisting
	default:
		return StageExploring
	}
}

type Funnel struct {
	Exploring    int `json:"exploring"`
	Shortlisting int `json:"shortlisting"`
	Applying     int `json:"applying"`
	Submitted    int `json:"submitted"`
}

func (f *Funnel) add(stage FunnelStage) {
	switch stage {
	case StageSubmitted:
		f.Submitted++
	case StageApplying:
		f.Applying++
	case StageShortlisting:
		f.Shortlisting++
	case StageExploring:
		f.Exploring++
	}
}

func (f Funnel) Total() int {
	return f.Exploring + f.Shortlisting + f.Applying + f.Submitted
}

type CountryCount struct {
	Country  string `json:"country"`
	Students int    `json:"students"`
}

type StatusCount struct {
	Status Status `json:"status"`
	Count  int    `json:"count"`
	Color  string `json:"color"`
}

type Metrics struct {
	TotalStudents  int            `json:"total_students"`
	ActiveStudents int            `json:"active_students"`
	StatusCounts   map[Status]int `json:"status_counts"`
	HighPriority   []Student      `json:"-"`
	NeedsAttention []Student      `json:"-"`
	CountryCounts  []CountryCount `json:"country_counts"` // first-encounter order
	Funnel         Funnel         `json:"funnel"`
}

// ComputeMetrics derives the dashboard aggregates from an immutable set of students.
func ComputeMetrics(students []Student, now time.Time, rule AttentionRule) Metrics {
	m := Metrics{
		TotalStudents:  len(students),
		StatusCounts:   make(map[Status]int),
		HighPriority:   make([]Student, 0),
		NeedsAttention: make([]Student, 0),
		CountryCounts:  make([]CountryCount, 0),
	}
	countryIdx := make(map[string]int)

	for _, s := range students {
		if rule.IsActive(s, now) {
			m.ActiveStudents++
		}
		m.StatusCounts[s.Status]++
		if s.Priority == PriorityHigh {
			m.HighPriority = append(m.HighPriority, s)
		}
		if rule.Matches(s, now) {
			m.NeedsAttention = append(m.NeedsAttention, s)
		}
		if i, ok := countryIdx[s.Country]; ok {
			m.CountryCounts[i].Students++
		} else {
			countryIdx[s.Country] = len(m.CountryCounts)
			m.CountryCounts = append(m.CountryCounts, CountryCount{Country: s.Country, Students: 1})
		}
		m.Funnel.add(FunnelStageOf(s))
	}
	return m
}

// CountryCountMap returns the country distribution as a map.
func (m Metrics) CountryCountMap() map[string]int {
	counts := make(map[string]int, len(m.CountryCounts))
	for _, cc := range m.CountryCounts {
		counts[cc.Country] = cc.Students
	}
	return counts
}

// TopCountries returns the n most represented countries; ties keep first-encounter order.
func (m Metrics) TopCountries(n int) []CountryCount {
	top := make([]CountryCount, len(m.CountryCounts))
	copy(top, m.CountryCounts)
	sort.SliceStable(top, func(i, j int) bool { return top[i].Students > top[j].Students })
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// StatusChart returns the present statuses in funnel order.
func (m Metrics) StatusChart() []StatusCount {
	chart := make([]StatusCount, 0, len(m.StatusCounts))
	for _, status := range Statuses {
		if count, ok := m.StatusCounts[status]; ok {
			chart = append(chart, StatusCount{Status: status, Count: count, Color: status.Color()})
		}
	}
	return chart
}

// MostRecentlyActive returns the n students with the latest LastActive, without reordering `students`.
func MostRecentlyActive(students []Student, n int) []Student {
	recent := make([]Student, len(students))
	copy(recent, students)
	sort.SliceStable(recent, func(i, j int) bool { return recent[i].LastActive.After(recent[j].LastActive) })
	if len(recent) > n {
		recent = recent[:n]
	}
	return recent
}

const (
	dashboardTopCountries   = 6
	dashboardRecentlyActive = 5
	dashboardAttention      = 5
)

// AttentionItem is a student needing attention along with the matched reasons.
type AttentionItem struct {
	Student Student  `json:"student"`
	Reasons []string `json:"reasons"`
}

type Dashboard struct {
	Metrics
	HighPriorityCount   int             `json:"high_priority_count"`
	NeedsAttentionCount int             `json:"needs_attention_count"`
	StatusChart         []StatusCount   `json:"status_chart"`
	TopCountries        []CountryCount  `json:"top_countries"`
	RecentlyActive      []Student       `json:"recently_active"`
	AttentionPreview    []AttentionItem `json:"attention_preview"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

// BuildDashboard computes the metrics and the derived values the dashboard displays.
func BuildDashboard(students []Student, now time.Time, rule AttentionRule) Dashboard {
	m := ComputeMetrics(students, now, rule)

	preview := m.NeedsAttention
	if len(preview) > dashboardAttention {
		preview = preview[:dashboardAttention]
	}
	items := make([]AttentionItem, 0, len(preview))
	for _, s := range preview {
		items = append(items, AttentionItem{Student: s, Reasons: rule.Reasons(s, now)})
	}

	return Dashboard{
		Metrics:             m,
		HighPriorityCount:   len(m.HighPriority),
		NeedsAttentionCount: len(m.NeedsAttention),
		StatusChart:         m.StatusChart(),
		TopCountries:        m.TopCountries(dashboardTopCountries),
		RecentlyActive:      MostRecentlyActive(students, dashboardRecentlyActive),
		AttentionPreview:    items,
		GeneratedAt:         now,
	}
}
