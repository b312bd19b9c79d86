package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/admitcrm/core"
)

// Commands are accepted and acknowledged but never persisted.

// NewNote contains the information needed to add a note to a student.
type NewNote struct {
	Content   string `json:"content" validate:"notblank"`
	IsPrivate bool   `json:"is_private"`
	Category  string `json:"category" validate:"omitempty,notecategory"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Content = core.CleanString(nn.Content)
	nn.Category = core.CleanString(nn.Category)
	if nn.Category == "" {
		nn.Category = "General"
	}
	return validate.Struct(nn)
}

// NewTask contains the information needed to schedule a follow-up task.
type NewTask struct {
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority" validate:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	if nt.Priority == "" {
		nt.Priority = PriorityMedium
	}
	return validate.Struct(nt)
}

// NewEmail contains an outreach email for a student.
type NewEmail struct {
	Subject string `json:"subject" validate:"notblank"`
	Content string `json:"content" validate:"notblank"`
}

func (ne *NewEmail) Validate(validate *validator.Validate) error {
	ne.Subject = core.CleanString(ne.Subject)
	return validate.Struct(ne)
}

// OutreachData is the data of the `outreach` email template.
type OutreachData struct {
	StudentName string
	Body        string
	Sender      string
}
