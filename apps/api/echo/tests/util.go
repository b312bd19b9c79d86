package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/trezcool/admitcrm/apps/api/echo"
	"github.com/trezcool/admitcrm/core"
	"github.com/trezcool/admitcrm/core/student"
	"github.com/trezcool/admitcrm/services/email"
	"github.com/trezcool/admitcrm/storage/database/inmem"
	"github.com/trezcool/admitcrm/tests"
)

type fixture struct {
	app     Server
	svc     *student.Service
	mailSvc *emailsvc.ConsoleService
}

// newStudents returns the directory used by the API tests, in seeded order.
// Sorted by lastActive desc: s5, s1, s2, s4, s3. Needing attention: s1 (high), s3 (inactive), s4 (tagged).
func newStudents(now time.Time) []student.Student {
	return []student.Student{
		testutil.NewStudent("s1",
			testutil.WithName("Aarav", "Sharma"), testutil.WithPriority(student.PriorityHigh),
			testutil.WithLastActive(now.Add(-time.Hour)),
		),
		testutil.NewStudent("s2",
			testutil.WithName("Maya", "Chen"), testutil.WithCountry("Singapore"), testutil.WithStatus(student.StatusApplying),
			testutil.WithLastActive(now.Add(-2*time.Hour)),
		),
		testutil.NewStudent("s3",
			testutil.WithName("Lucas", "Martin"), testutil.WithCountry("Canada"), testutil.WithStatus(student.StatusSubmitted),
			testutil.WithPriority(student.PriorityMedium), testutil.WithLastActive(now.AddDate(0, 0, -10)),
		),
		testutil.NewStudent("s4",
			testutil.WithName("Priya", "Patel"), testutil.WithStatus(student.StatusShortlisting),
			testutil.WithTags("Needs Essay Help"), testutil.WithLastActive(now.Add(-3*time.Hour)),
		),
		testutil.NewStudent("s5",
			testutil.WithName("Emma", "Wilson"), testutil.WithCountry("United States"), testutil.WithStatus(student.StatusApplying),
			testutil.WithPriority(student.PriorityMedium), testutil.WithLastActive(now.Add(-30*time.Minute)),
		),
	}
}

func setup(t *testing.T) *fixture {
	t.Helper()
	now := time.Now().UTC()

	// set up DB & repos
	db, err := inmemdb.Open(inmemdb.Snapshot{
		Students: newStudents(now),
		Notes: map[string][]student.Note{
			"s1": {{ID: "n1", StudentID: "s1", Content: "Strong candidate", Author: "Jane", Timestamp: now.AddDate(0, 0, -1), Category: "Academic"}},
		},
		Tasks: map[string][]student.Task{
			"s1": {{ID: "t1", StudentID: "s1", Title: "Schedule mock interview", DueDate: now.AddDate(0, 0, 3), Priority: student.PriorityHigh, Status: "Pending"}},
		},
	})
	require.NoError(t, err)
	repo := inmemdb.NewStudentRepository(db)

	// set up services
	conf := testutil.NewConfig()
	logger := testutil.NopLogger{}
	validate, translator := testutil.NewValidator()
	core.ParseEmailTemplates(logger, true /* strict */)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	svc := student.NewService(repo, mailSvc, logger, student.Options{
		Rule:         student.AttentionRule{Window: conf.Attention.Window, Tag: conf.Attention.Tag},
		DefaultLimit: conf.Directory.DefaultLimit,
		StaffName:    conf.StaffName,
	})

	// set up server
	app := NewServer(Options{
		Conf:           conf,
		Logger:         logger,
		StudentSvc:     svc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return &fixture{app: app, svc: svc, mailSvc: mailSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// jsonBytesEqual compares two JSON documents, ignoring the top-level `ignore` keys of objects.
func jsonBytesEqual(b1, b2 []byte, ignore ...string) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	for _, key := range ignore {
		if m, ok := j1.(map[string]interface{}); ok {
			delete(m, key)
		}
		if m, ok := j2.(map[string]interface{}); ok {
			delete(m, key)
		}
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder, ignore ...string) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData, ignore...)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
