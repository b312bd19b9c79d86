package testutil

import (
	"fmt"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
)

// Now is the fixed clock used across tests.
var Now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

type StudentOption func(s *student.Student)

func WithName(first, last string) StudentOption {
	return func(s *student.Student) {
		s.FirstName, s.LastName = first, last
		s.Name = first + " " + last
	}
}

func WithEmail(email string) StudentOption {
	return func(s *student.Student) { s.Email = email }
}

func WithCountry(country string) StudentOption {
	return func(s *student.Student) { s.Country = country }
}

func WithGrade(grade string) StudentOption {
	return func(s *student.Student) { s.Grade = grade }
}

func WithStatus(status student.Status) StudentOption {
	return func(s *student.Student) { s.Status = status }
}

func WithPriority(priority student.Priority) StudentOption {
	return func(s *student.Student) { s.Priority = priority }
}

func WithLastActive(t time.Time) StudentOption {
	return func(s *student.Student) { s.LastActive = t }
}

func WithCreatedAt(t time.Time) StudentOption {
	return func(s *student.Student) { s.CreatedAt = t }
}

func WithTags(tags ...string) StudentOption {
	return func(s *student.Student) { s.Tags = tags }
}

func WithProgress(p student.Progress) StudentOption {
	return func(s *student.Student) { s.Progress = p }
}

// NewStudent returns an active, low priority, untagged student from India.
func NewStudent(id string, opts ...StudentOption) student.Student {
	s := student.Student{
		ID:         id,
		FirstName:  "Student",
		LastName:   id,
		Name:       "Student " + id,
		Email:      fmt.Sprintf("student.%s@test.io", id),
		Phone:      "+1 555 0100",
		Country:    "India",
		Grade:      "12th",
		Status:     student.StatusExploring,
		Priority:   student.PriorityLow,
		LastActive: Now.Add(-time.Hour),
		CreatedAt:  Now.AddDate(0, -1, 0),
		Profile:    student.AcademicProfile{School: "Test High School", GPA: 3.5},
		Progress:   student.Progress{ProfileCompletion: 50},
		Tags:       student.Tags{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewConfig returns the configuration used by tests, independent of the environment.
func NewConfig() *core.Config {
	return &core.Config{
		Env:              "TEST",
		Build:            "test",
		AppName:          "Admit CRM",
		TestMode:         true,
		DefaultFromEmail: "Admit CRM <noreply@test.io>",
		StaffName:        "Test Counselor",
		Server: core.ServerConfig{
			Address:         ":8000",
			ShutdownTimeout: time.Second,
		},
		Data:      core.DataConfig{Students: 50, Seed: 42},
		Directory: core.DirectoryConfig{DefaultLimit: 25},
		Attention: core.AttentionConfig{Window: 7 * 24 * time.Hour, Tag: "Needs Essay Help"},
	}
}

// NewValidator returns a validator with every custom validation registered.
func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate, translator
}

// NopLogger discards everything.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}
