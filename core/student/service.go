package student

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/trezcool/admitcrm/core"
)

var (
	// errors
	ErrNotFound = errors.New("student not found")

	nowFunc = time.Now // mockable
)

// Repository is the read-only store of the CRM snapshot.
// Child collections are returned in stored order.
type Repository interface {
	QueryAllStudents(ctx context.Context) ([]Student, error)
	GetStudentByID(ctx context.Context, id string) (Student, error)
	QueryInteractions(ctx context.Context, studentID string) ([]Interaction, error)
	QueryCommunications(ctx context.Context, studentID string) ([]Communication, error)
	QueryNotes(ctx context.Context, studentID string) ([]Note, error)
	QueryTasks(ctx context.Context, studentID string) ([]Task, error)
}

type Options struct {
	Rule         AttentionRule
	DefaultLimit int
	StaffName    string
}

type Service struct {
	repo   Repository
	mail   core.EmailService
	logger core.Logger
	opts   Options
}

func NewService(repo Repository, mailSvc core.EmailService, logger core.Logger, opts Options) *Service {
	if opts.Rule == (AttentionRule{}) {
		opts.Rule = DefaultAttentionRule
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = DefaultLimit
	}
	return &Service{repo: repo, mail: mailSvc, logger: logger, opts: opts}
}

func (svc *Service) Rule() AttentionRule { return svc.opts.Rule }

func (svc *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(students, nowFunc().UTC(), svc.opts.Rule), nil
}

// Directory runs the directory pipeline; q is cleaned, it should have been validated.
func (svc *Service) Directory(ctx context.Context, q DirectoryQuery) (DirectoryPage, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return DirectoryPage{}, err
	}
	q.Clean(svc.opts.DefaultLimit)
	return RunDirectory(students, q, nowFunc().UTC(), svc.opts.Rule), nil
}

func (svc *Service) Profile(ctx context.Context, id string) (Profile, error) {
	return LoadProfile(ctx, svc.repo, id, nowFunc().UTC())
}

// AddNote acknowledges a note for an existing student. The note is not stored.
func (svc *Service) AddNote(ctx context.Context, studentID string, nn NewNote) (Note, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return Note{}, err
	}
	note := Note{
		ID:        uuid.NewString(),
		StudentID: studentID,
		Content:   nn.Content,
		Author:    svc.opts.StaffName,
		Timestamp: nowFunc().UTC(),
		IsPrivate: nn.IsPrivate,
		Category:  nn.Category,
	}
	svc.logger.Info(fmt.Sprintf("student.AddNote(%s): %s note", studentID, note.Category))
	return note, nil
}

// AddTask acknowledges a follow-up task for an existing student. The task is not stored.
func (svc *Service) AddTask(ctx context.Context, studentID string, nt NewTask) (Task, error) {
	if _, err := svc.repo.GetStudentByID(ctx, studentID); err != nil {
		return Task{}, err
	}
	now := nowFunc().UTC()
	dueDate := now.AddDate(0, 0, 7)
	if nt.DueDate != nil {
		dueDate = nt.DueDate.UTC()
	}
	task := Task{
		ID:          uuid.NewString(),
		StudentID:   studentID,
		Title:       nt.Title,
		Description: nt.Description,
		DueDate:     dueDate,
		Priority:    nt.Priority,
		AssignedTo:  svc.opts.StaffName,
		Status:      "Pending",
		CreatedAt:   now,
	}
	svc.logger.Info(fmt.Sprintf("student.AddTask(%s): %q due %s", studentID, task.Title, task.DueDate.Format(time.DateOnly)))
	return task, nil
}

// SendEmail renders the outreach email for an existing student and hands it to the email service.
// The returned communication is not stored.
func (svc *Service) SendEmail(ctx context.Context, studentID string, ne NewEmail) (Communication, error) {
	s, err := svc.repo.GetStudentByID(ctx, studentID)
	if err != nil {
		return Communication{}, err
	}
	comm := Communication{
		ID:          uuid.NewString(),
		StudentID:   studentID,
		Type:        "Email",
		Direction:   "Outbound",
		Subject:     ne.Subject,
		Content:     ne.Content,
		Timestamp:   nowFunc().UTC(),
		StaffMember: svc.opts.StaffName,
		Status:      "Sent",
	}

	svc.mail.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: s.Name, Address: s.Email}},
		Subject:      ne.Subject,
		TemplateName: "outreach",
		TemplateData: OutreachData{StudentName: s.FirstName, Body: ne.Content, Sender: svc.opts.StaffName},
	})
	svc.logger.Info(fmt.Sprintf("student.SendEmail(%s): %q", studentID, comm.Subject))
	return comm, nil
}
