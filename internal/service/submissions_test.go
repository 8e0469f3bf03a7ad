package service_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/metaverse-club/clubforms/internal/models"
	"github.com/metaverse-club/clubforms/internal/schema"
	"github.com/metaverse-club/clubforms/internal/service"
)

type fakeStore struct {
	mu     sync.Mutex
	calls  int
	sheets []string
	rows   [][]any
	err    error
}

func (f *fakeStore) Append(ctx context.Context, sheet string, row []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.sheets = append(f.sheets, sheet)
	f.rows = append(f.rows, row)
	return f.err
}

type fakeMailer struct {
	mu      sync.Mutex
	calls   int
	subject string
	body    string
	err     error
}

func (f *fakeMailer) Send(ctx context.Context, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.subject = subject
	f.body = body
	return f.err
}

type fakeFiles struct {
	saved map[string][]byte
	err   error
}

func (f *fakeFiles) Save(filename string, content []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	name := filepath.Base(filename)
	f.saved[name] = content
	return filepath.Join("uploads", name), nil
}

func newService(st *fakeStore, m *fakeMailer, fi *fakeFiles) *service.Submissions {
	return service.NewSubmissions(st, m, fi, "Metaverse Club", zap.NewNop())
}

func adaContact() models.ContactSubmission {
	return models.ContactSubmission{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Email:         "ada@example.com",
		PhoneNumber:   "555-0100",
		Message:       "Hi",
		ServiceChoice: "General",
	}
}

func TestContactDeliversToBothSinks(t *testing.T) {
	st, m := &fakeStore{}, &fakeMailer{}
	svc := newService(st, m, &fakeFiles{})

	if err := svc.Contact(context.Background(), adaContact()); err != nil {
		t.Fatalf("contact: %v", err)
	}

	if st.calls != 1 {
		t.Fatalf("expected 1 append, got %d", st.calls)
	}
	if st.sheets[0] != models.ContactSheet {
		t.Fatalf("appended to %q", st.sheets[0])
	}
	want := []any{"Ada", "Lovelace", "ada@example.com", "555-0100", "General", "Hi"}
	for i, v := range want {
		if st.rows[0][i] != v {
			t.Fatalf("row col %d: got %v, want %v", i, st.rows[0][i], v)
		}
	}

	if m.calls != 1 {
		t.Fatalf("expected 1 notification, got %d", m.calls)
	}
	if !strings.Contains(m.subject, "Contact") {
		t.Fatalf("subject %q lacks Contact", m.subject)
	}
	if !strings.Contains(m.body, "Ada Lovelace") {
		t.Fatalf("body lacks submitter name: %q", m.body)
	}
}

func TestRejectedSubmissionTouchesNoSink(t *testing.T) {
	st, m := &fakeStore{}, &fakeMailer{}
	svc := newService(st, m, &fakeFiles{})

	sub := adaContact()
	sub.Email = "nope"
	sub.Message = ""

	err := svc.Contact(context.Background(), sub)
	var verr *schema.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if st.calls != 0 || m.calls != 0 {
		t.Fatalf("side effects on rejected submission: store=%d mail=%d", st.calls, m.calls)
	}
}

func TestStoreFailureStillNotifies(t *testing.T) {
	st := &fakeStore{err: errors.New("sink outage")}
	m := &fakeMailer{}
	svc := newService(st, m, &fakeFiles{})

	err := svc.Contact(context.Background(), adaContact())
	if err == nil {
		t.Fatal("expected error on store failure")
	}
	if !strings.Contains(err.Error(), "store") {
		t.Fatalf("error does not name the store stage: %v", err)
	}
	if m.calls != 1 {
		t.Fatalf("notification attempted %d times, want 1", m.calls)
	}
}

func TestMailFailureStillPersists(t *testing.T) {
	st := &fakeStore{}
	m := &fakeMailer{err: errors.New("smtp refused")}
	svc := newService(st, m, &fakeFiles{})

	err := svc.Contact(context.Background(), adaContact())
	if err == nil {
		t.Fatal("expected error on mail failure")
	}
	if !strings.Contains(err.Error(), "mail") {
		t.Fatalf("error does not name the mail stage: %v", err)
	}
	if st.calls != 1 {
		t.Fatalf("append attempted %d times, want 1", st.calls)
	}
}

func TestBothFailuresSurfaceTogether(t *testing.T) {
	st := &fakeStore{err: errors.New("sink outage")}
	m := &fakeMailer{err: errors.New("smtp refused")}
	svc := newService(st, m, &fakeFiles{})

	err := svc.Join(context.Background(), models.JoinSubmission{
		FullName:    "Grace Hopper",
		Email:       "grace@example.com",
		RegNumber:   "77",
		PhoneNumber: "555-0101",
		Department:  "CSE",
		Reason:      "curiosity",
	})
	if err == nil {
		t.Fatal("expected combined error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "store") || !strings.Contains(msg, "mail") {
		t.Fatalf("one failure masked the other: %v", msg)
	}
}

func TestRegisterStoresScreenshotBeforeSinks(t *testing.T) {
	st, m, fi := &fakeStore{}, &fakeMailer{}, &fakeFiles{}
	svc := newService(st, m, fi)

	sub := models.RegistrationSubmission{
		Name:           "Alan Turing",
		RegNumber:      "12345",
		Email:          "alan@example.com",
		Department:     "CSE",
		ScreenshotName: "../../etc/payment.png",
	}
	if err := svc.Register(context.Background(), sub, []byte("png")); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, ok := fi.saved["payment.png"]; !ok {
		t.Fatalf("screenshot not saved: %v", fi.saved)
	}
	if st.calls != 1 {
		t.Fatalf("expected 1 append, got %d", st.calls)
	}
	row := st.rows[0]
	if row[len(row)-1] != "payment.png" {
		t.Fatalf("row references %v, want stored name", row[len(row)-1])
	}
}

func TestRegisterUploadFailureSkipsSinks(t *testing.T) {
	st, m := &fakeStore{}, &fakeMailer{}
	fi := &fakeFiles{err: errors.New("disk full")}
	svc := newService(st, m, fi)

	sub := models.RegistrationSubmission{
		Name:           "Alan Turing",
		RegNumber:      "12345",
		Email:          "alan@example.com",
		ScreenshotName: "payment.png",
	}
	err := svc.Register(context.Background(), sub, []byte("png"))
	if err == nil {
		t.Fatal("expected error on upload failure")
	}
	var serr *service.SinkError
	if !errors.As(err, &serr) || serr.Sink != "upload" {
		t.Fatalf("expected upload sink error, got %v", err)
	}
	if st.calls != 0 || m.calls != 0 {
		t.Fatalf("sinks touched after upload failure: store=%d mail=%d", st.calls, m.calls)
	}
}
