package student

import (
	"strings"
	"time"
)

// Status is a student's stage in the application funnel.
type Status string

const (
	StatusExploring    Status = "Exploring"
	StatusShortlisting Status = "Shortlisting"
	StatusApplying     Status = "Applying"
	StatusSubmitted    Status = "Submitted"
)

// Statuses in funnel order.
var Statuses = []Status{StatusExploring, StatusShortlisting, StatusApplying, StatusSubmitted}

func (s Status) IsValid() bool {
	switch s {
	case StatusExploring, StatusShortlisting, StatusApplying, StatusSubmitted:
		return true
	}
	return false
}

// Color is the badge colour used by the dashboard for this status.
func (s Status) Color() string {
	switch s {
	case StatusShortlisting:
		return "info"
	case StatusApplying:
		return "warning"
	case StatusSubmitted:
		return "success"
	default:
		return "default"
	}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (p Priority) Color() string {
	switch p {
	case PriorityHigh:
		return "error"
	case PriorityMedium:
		return "warning"
	case PriorityLow:
		return "success"
	default:
		return "default"
	}
}

// Tags is an open set of free-form labels.
type Tags []string

func (t Tags) Has(label string) bool {
	for _, tag := range t {
		if tag == label {
			return true
		}
	}
	return false
}

// Reference lists, used to generate data and to fill filter options.
var (
	Countries = []string{
		"India", "United States", "Canada", "United Kingdom", "Australia",
		"Singapore", "UAE", "Germany", "Netherlands", "Sweden", "China",
		"South Korea", "Japan", "Brazil", "Mexico", "Nigeria", "South Africa",
	}
	Grades = []string{"11th", "12th", "Gap Year"}
	Majors = []string{
		"Computer Science", "Business Administration", "Engineering", "Medicine",
		"Psychology", "Economics", "Biology", "Mathematics", "Physics", "Chemistry",
	}
	Budgets   = []string{"< $30k", "$30k - $60k", "$60k - $100k", "> $100k"}
	TagLabels = []string{
		"High Intent", "Needs Essay Help", "International", "Scholarship Seeker",
		"STEM Focus", "First Generation", "Athlete", "Arts Focus",
	}
	InteractionTypes = []string{
		"Login", "AI Essay Review", "University Search", "Document Upload",
		"Profile Update", "College List Creation", "Scholarship Search",
		"Application Started", "Essay Writing", "Recommendation Request",
		"Transcript Upload", "Test Score Upload", "Interview Scheduled",
	}
	CommunicationTypes  = []string{"Email", "Phone Call", "SMS", "WhatsApp", "Video Call"}
	Directions          = []string{"Inbound", "Outbound"}
	CommunicationStates = []string{"Sent", "Delivered", "Read", "Replied"}
	NoteCategories      = []string{"General", "Academic", "Financial", "Personal", "Strategy"}
	TaskStatuses        = []string{"Pending", "In Progress", "Completed"}
)

type Student struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Country    string          `json:"country"`
	Grade      string          `json:"grade"`
	Status     Status          `json:"status"`
	Priority   Priority        `json:"priority"`
	LastActive time.Time       `json:"last_active"` // UTC
	CreatedAt  time.Time       `json:"created_at"`  // UTC
	Profile    AcademicProfile `json:"profile"`
	Progress   Progress        `json:"progress"`
	Tags       Tags            `json:"tags"`
}

// Initial is the avatar letter shown next to the student.
func (s Student) Initial() string {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(name)[0]))
}

type AcademicProfile struct {
	School          string   `json:"school"`
	GPA             float64  `json:"gpa"`
	SATScore        *int     `json:"sat_score"`
	ACTScore        *int     `json:"act_score"`
	IntendedMajor   string   `json:"intended_major"`
	TargetCountries []string `json:"target_countries"`
	Budget          string   `json:"budget"`
}

type Progress struct {
	ProfileCompletion     int  `json:"profile_completion"` // 0 - 100
	CollegeListCreated    bool `json:"college_list_created"`
	EssaysStarted         bool `json:"essays_started"`
	ApplicationsSubmitted int  `json:"applications_submitted"`
}

type Interaction struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"student_id"`
	Type        string              `json:"type"`
	Description string              `json:"description"`
	Timestamp   time.Time           `json:"timestamp"`
	Metadata    InteractionMetadata `json:"metadata"`
}

type InteractionMetadata struct {
	Duration int    `json:"duration"` // seconds
	Device   string `json:"device"`
	Browser  string `json:"browser"`
}

type Communication struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Type        string    `json:"type"`
	Direction   string    `json:"direction"`
	Subject     string    `json:"subject"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	StaffMember string    `json:"staff_member"`
	Status      string    `json:"status"`
}

type Note struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Timestamp time.Time `json:"timestamp"`
	IsPrivate bool      `json:"is_private"`
	Category  string    `json:"category"`
}

type Task struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	AssignedTo  string    `json:"assigned_to"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
