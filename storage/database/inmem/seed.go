package inmemdb

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/trezcool/admitcrm/core/student"
)

const day = 24 * time.Hour

// Snapshot is the complete CRM dataset. Child collections are keyed by student ID.
type Snapshot struct {
	Students       []student.Student                  `json:"students" yaml:"students"`
	Interactions   map[string][]student.Interaction   `json:"interactions" yaml:"interactions"`
	Communications map[string][]student.Communication `json:"communications" yaml:"communications"`
	Notes          map[string][]student.Note          `json:"notes" yaml:"notes"`
	Tasks          map[string][]student.Task          `json:"tasks" yaml:"tasks"`
}

var (
	interactionDescriptions = []string{
		"Reviewed essay for Common Application",
		"Searched for engineering programs in Canada",
		"Updated profile with latest test scores",
		"Created shortlist of 8 universities",
		"Asked AI about scholarship opportunities",
		"Uploaded high school transcript",
		"Started application for MIT",
		"Reviewed recommendation letter template",
		"Scheduled interview with admissions counselor",
		"Updated college preferences and budget",
		"Downloaded application checklist",
		"Joined webinar on financial aid",
	}
	devices  = []string{"Desktop", "Mobile", "Tablet"}
	browsers = []string{"Chrome", "Safari", "Firefox", "Edge"}

	communicationSubjects = map[string][]string{
		"Email": {
			"Welcome to Undergraduation.com!",
			"Your college list is ready for review",
			"Essay deadline reminder",
			"New scholarship opportunities",
			"Application status update",
			"Schedule your counseling session",
		},
		"Phone Call": {
			"College selection consultation",
			"Essay review session",
			"Application strategy discussion",
			"Follow-up on submitted applications",
			"Scholarship guidance call",
		},
		"SMS": {
			"Application deadline reminder",
			"Document upload reminder",
			"Meeting confirmation",
			"Quick check-in",
		},
		"WhatsApp": {
			"Quick question about applications",
			"Document clarification",
			"Meeting reschedule request",
		},
		"Video Call": {
			"Virtual counseling session",
			"Essay workshop",
			"Mock interview session",
			"University selection meeting",
		},
	}
	communicationContents = map[string]string{
		"Email":      "Detailed email communication with comprehensive guidance and next steps...",
		"Phone Call": "Productive phone conversation covering application strategy and timeline...",
		"SMS":        "Brief text message exchange regarding urgent deadlines...",
		"WhatsApp":   "Quick messaging conversation about application requirements...",
		"Video Call": "Face-to-face consultation covering multiple topics...",
	}

	noteContents = []string{
		"Student is highly motivated and organized",
		"Needs additional support with essay writing",
		"Family very involved in application process",
		"Strong candidate for top-tier universities",
		"Requires scholarship guidance due to budget constraints",
		"International student - needs visa guidance",
		"Athlete with potential for sports scholarships",
		"First-generation college student - needs extra support",
		"Changed major interest - updated strategy needed",
		"Excellent test scores but needs help with extracurriculars",
	}

	taskTitles = []string{
		"Follow up on application status",
		"Schedule essay review session",
		"Send scholarship opportunities",
		"Review updated college list",
		"Check in on application progress",
		"Send recommendation letter guidelines",
		"Schedule mock interview",
		"Review financial aid options",
	}
)

// Generator produces a plausible CRM snapshot. The same seed and `now` always produce the same data.
type Generator struct {
	faker *gofakeit.Faker
	now   time.Time
}

// NewGenerator returns a Generator; seed 0 picks a random seed.
func NewGenerator(seed int64, now time.Time) *Generator {
	return &Generator{faker: gofakeit.New(seed), now: now.UTC().Truncate(time.Second)}
}

// Generate builds `count` students along with their child collections.
func (g *Generator) Generate(count int) Snapshot {
	snap := Snapshot{
		Students:       make([]student.Student, 0, count),
		Interactions:   make(map[string][]student.Interaction, count),
		Communications: make(map[string][]student.Communication, count),
		Notes:          make(map[string][]student.Note, count),
		Tasks:          make(map[string][]student.Task, count),
	}
	for i := 0; i < count; i++ {
		snap.Students = append(snap.Students, g.student())
	}
	for _, s := range snap.Students {
		snap.Interactions[s.ID] = g.interactions(s.ID, g.faker.Number(10, 30))
	}
	for _, s := range snap.Students {
		snap.Communications[s.ID] = g.communications(s.ID, g.faker.Number(3, 12))
	}
	for _, s := range snap.Students {
		snap.Notes[s.ID] = g.notes(s.ID, g.faker.Number(2, 8))
	}
	for _, s := range snap.Students {
		snap.Tasks[s.ID] = g.tasks(s.ID, g.faker.Number(1, 5))
	}
	return snap
}

// Seed generates a snapshot and opens a database holding it.
func Seed(count int, seed int64, now time.Time) (*DB, error) {
	return Open(NewGenerator(seed, now).Generate(count))
}

func (g *Generator) uuid() string {
	id, err := uuid.NewRandomFromReader(g.faker.Rand)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func (g *Generator) recent(days int) time.Time {
	return g.faker.DateRange(g.now.Add(-time.Duration(days)*day), g.now).UTC()
}

func (g *Generator) future() time.Time {
	return g.faker.DateRange(g.now, g.now.AddDate(1, 0, 0)).UTC()
}

func (g *Generator) maybeInt(min, max int) *int {
	if !g.faker.Bool() {
		return nil
	}
	n := g.faker.Number(min, max)
	return &n
}

// pick returns between min & max distinct elements of list, in random order.
func (g *Generator) pick(list []string, min, max int) []string {
	shuffled := append([]string(nil), list...)
	g.faker.ShuffleStrings(shuffled)
	return shuffled[:g.faker.Number(min, max)]
}

func (g *Generator) email(first, last string) string {
	clean := func(s string) string {
		return strings.NewReplacer(" ", "", "'", "").Replace(strings.ToLower(s))
	}
	return clean(first) + "." + clean(last) + "@" + g.faker.DomainName()
}

func (g *Generator) student() student.Student {
	first, last := g.faker.FirstName(), g.faker.LastName()
	status := student.Statuses[g.faker.Number(0, len(student.Statuses)-1)]

	s := student.Student{
		ID:         g.uuid(),
		FirstName:  first,
		LastName:   last,
		Name:       first + " " + last,
		Email:      g.email(first, last),
		Phone:      g.faker.Phone(),
		Country:    g.faker.RandomString(student.Countries),
		Grade:      g.faker.RandomString(student.Grades),
		Status:     status,
		LastActive: g.recent(30),
		CreatedAt:  g.recent(180),
		Profile: student.AcademicProfile{
			School:          g.faker.Company() + " High School",
			GPA:             math.Round(g.faker.Float64Range(2.5, 4.0)*100) / 100,
			SATScore:        g.maybeInt(1000, 1600),
			ACTScore:        g.maybeInt(20, 36),
			IntendedMajor:   g.faker.RandomString(student.Majors),
			TargetCountries: g.pick(student.Countries, 1, 3),
			Budget:          g.faker.RandomString(student.Budgets),
		},
		Progress: student.Progress{
			ProfileCompletion:  g.faker.Number(30, 100),
			CollegeListCreated: g.faker.Bool(),
			EssaysStarted:      g.faker.Bool(),
		},
		Tags:     g.pick(student.TagLabels, 0, 3),
		Priority: student.Priorities[g.faker.Number(0, len(student.Priorities)-1)],
	}
	if status == student.StatusSubmitted {
		s.Progress.ApplicationsSubmitted = g.faker.Number(1, 12)
	}
	return s
}

// interactions are sorted most recent first.
func (g *Generator) interactions(studentID string, count int) []student.Interaction {
	rows := make([]student.Interaction, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, student.Interaction{
			ID:          g.uuid(),
			StudentID:   studentID,
			Type:        g.faker.RandomString(student.InteractionTypes),
			Description: g.faker.RandomString(interactionDescriptions),
			Timestamp:   g.recent(60),
			Metadata: student.InteractionMetadata{
				Duration: g.faker.Number(30, 1200),
				Device:   g.faker.RandomString(devices),
				Browser:  g.faker.RandomString(browsers),
			},
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Timestamp.After(rows[j].Timestamp) })
	return rows
}

// communications are sorted most recent first.
func (g *Generator) communications(studentID string, count int) []student.Communication {
	rows := make([]student.Communication, 0, count)
	for i := 0; i < count; i++ {
		typ := g.faker.RandomString(student.CommunicationTypes)
		rows = append(rows, student.Communication{
			ID:          g.uuid(),
			StudentID:   studentID,
			Type:        typ,
			Direction:   g.faker.RandomString(student.Directions),
			Subject:     g.faker.RandomString(communicationSubjects[typ]),
			Content:     communicationContents[typ],
			Timestamp:   g.recent(45),
			StaffMember: g.faker.Name(),
			Status:      g.faker.RandomString(student.CommunicationStates),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Timestamp.After(rows[j].Timestamp) })
	return rows
}

// notes are sorted most recent first.
func (g *Generator) notes(studentID string, count int) []student.Note {
	rows := make([]student.Note, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, student.Note{
			ID:        g.uuid(),
			StudentID: studentID,
			Content:   g.faker.RandomString(noteContents),
			Author:    g.faker.Name(),
			Timestamp: g.recent(30),
			IsPrivate: g.faker.Bool(),
			Category:  g.faker.RandomString(student.NoteCategories),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Timestamp.After(rows[j].Timestamp) })
	return rows
}

// tasks are sorted by due date, earliest first.
func (g *Generator) tasks(studentID string, count int) []student.Task {
	rows := make([]student.Task, 0, count)
	for i := 0; i < count; i++ {
		rows = append(rows, student.Task{
			ID:          g.uuid(),
			StudentID:   studentID,
			Title:       g.faker.RandomString(taskTitles),
			Description: "Detailed task description and context...",
			DueDate:     g.future(),
			Priority:    student.Priorities[g.faker.Number(0, len(student.Priorities)-1)],
			AssignedTo:  g.faker.Name(),
			Status:      g.faker.RandomString(student.TaskStatuses),
			CreatedAt:   g.recent(14),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DueDate.Before(rows[j].DueDate) })
	return rows
}
