package student_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
	emailsvc "github.com/trezcool/admitcrm/services/email"
	inmemdb "github.com/trezcool/admitcrm/storage/database/inmem"
	"github.com/trezcool/admitcrm/tests"
)

func setupService(t *testing.T, students ...student.Student) (*student.Service, *emailsvc.ConsoleService) {
	t.Helper()
	t.Cleanup(student.SetNow(testutil.Now))

	db, err := inmemdb.Open(inmemdb.Snapshot{Students: students})
	require.NoError(t, err)

	conf := testutil.NewConfig()
	logger := testutil.NopLogger{}
	core.ParseEmailTemplates(logger, true /* strict */)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	svc := student.NewService(inmemdb.NewStudentRepository(db), mailSvc, logger, student.Options{StaffName: conf.StaffName})
	return svc, mailSvc
}

func TestService_Dashboard(t *testing.T) {
	svc, _ := setupService(t,
		testutil.NewStudent("1", testutil.WithPriority(student.PriorityHigh)),
		testutil.NewStudent("2"),
	)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dash.TotalStudents)
	assert.Equal(t, 1, dash.HighPriorityCount)
	assert.Equal(t, 1, dash.NeedsAttentionCount)
	assert.Equal(t, testutil.Now, dash.GeneratedAt)
}

func TestService_Directory(t *testing.T) {
	svc, _ := setupService(t,
		testutil.NewStudent("1", testutil.WithLastActive(testutil.Now.Add(-3*time.Hour))),
		testutil.NewStudent("2", testutil.WithLastActive(testutil.Now.Add(-time.Hour))),
		testutil.NewStudent("3", testutil.WithLastActive(testutil.Now.Add(-2*time.Hour))),
	)

	page, err := svc.Directory(context.Background(), student.DirectoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3", "1"}, ids(page.Students), "most recently active first by default")
	assert.Equal(t, student.DefaultLimit, page.Limit)
	assert.Equal(t, 1, page.Pages)
}

func TestService_commands(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewStudent("s1", testutil.WithName("Priya", "Singh"), testutil.WithEmail("priya@test.io"))

	t.Run("AddNote", func(t *testing.T) {
		svc, _ := setupService(t, s)

		note, err := svc.AddNote(ctx, s.ID, student.NewNote{Content: "Call parents", Category: "Personal", IsPrivate: true})
		require.NoError(t, err)
		assert.NotEmpty(t, note.ID)
		assert.Equal(t, s.ID, note.StudentID)
		assert.Equal(t, "Call parents", note.Content)
		assert.Equal(t, "Test Counselor", note.Author)
		assert.Equal(t, testutil.Now, note.Timestamp)
		assert.True(t, note.IsPrivate)

		profile, err := svc.Profile(ctx, s.ID)
		require.NoError(t, err)
		assert.Empty(t, profile.Notes, "notes are not stored")

		_, err = svc.AddNote(ctx, "missing", student.NewNote{Content: "x"})
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("AddTask", func(t *testing.T) {
		svc, _ := setupService(t, s)

		task, err := svc.AddTask(ctx, s.ID, student.NewTask{Title: "Review essay", Priority: student.PriorityHigh})
		require.NoError(t, err)
		assert.Equal(t, testutil.Now.AddDate(0, 0, 7), task.DueDate)
		assert.Equal(t, "Pending", task.Status)
		assert.Equal(t, student.PriorityHigh, task.Priority)

		due := testutil.Now.AddDate(0, 1, 0)
		task, err = svc.AddTask(ctx, s.ID, student.NewTask{Title: "Apply", Priority: student.PriorityLow, DueDate: &due})
		require.NoError(t, err)
		assert.Equal(t, due, task.DueDate)

		_, err = svc.AddTask(ctx, "missing", student.NewTask{Title: "x"})
		assert.Equal(t, student.ErrNotFound, err)
	})

	t.Run("SendEmail", func(t *testing.T) {
		svc, mailSvc := setupService(t, s)

		comm, err := svc.SendEmail(ctx, s.ID, student.NewEmail{Subject: "Essay deadline", Content: "Your essay is due Friday."})
		require.NoError(t, err)
		assert.Equal(t, "Email", comm.Type)
		assert.Equal(t, "Outbound", comm.Direction)
		assert.Equal(t, "Sent", comm.Status)
		assert.Equal(t, "Essay deadline", comm.Subject)

		sent := mailSvc.Sent()
		require.Len(t, sent, 1)
		msg := sent[0]
		assert.Equal(t, "priya@test.io", msg.To[0].Address)
		assert.Equal(t, "Essay deadline", msg.Subject)
		assert.True(t, strings.HasPrefix(msg.TextContent, "Hi Priya,"), msg.TextContent)
		assert.Contains(t, msg.TextContent, "Your essay is due Friday.")
		assert.Contains(t, msg.TextContent, "Sent by Test Counselor")
		assert.Contains(t, msg.HTMLContent, "<p>Hi Priya,</p>")
		assert.Contains(t, msg.HTMLContent, "Admit CRM")

		_, err = svc.SendEmail(ctx, "missing", student.NewEmail{Subject: "x", Content: "y"})
		assert.Equal(t, student.ErrNotFound, err)
		assert.Len(t, mailSvc.Sent(), 1)
	})
}
