package service

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/metaverse-club/clubforms/internal/mailer"
	"github.com/metaverse-club/clubforms/internal/metrics"
	"github.com/metaverse-club/clubforms/internal/models"
	"github.com/metaverse-club/clubforms/internal/schema"
	"github.com/metaverse-club/clubforms/internal/store"
)

// Receiver persists an uploaded attachment and returns its stored path.
type Receiver interface {
	Save(filename string, content []byte) (string, error)
}

// Submissions orchestrates one form submission end to end: validate,
// store the attachment if there is one, then append the record and send
// the notification. Persisting and notifying are independent; both are
// always attempted and a request only succeeds when both succeed.
type Submissions struct {
	records  store.RecordStore
	mail     mailer.Sender
	files    Receiver
	clubName string
	log      *zap.Logger
}

func NewSubmissions(records store.RecordStore, mail mailer.Sender, files Receiver, clubName string, log *zap.Logger) *Submissions {
	return &Submissions{
		records:  records,
		mail:     mail,
		files:    files,
		clubName: clubName,
		log:      log,
	}
}

func (s *Submissions) Contact(ctx context.Context, sub models.ContactSubmission) error {
	if err := schema.Validate(sub); err != nil {
		metrics.IncSubmission("contact", "rejected")
		return err
	}

	subject := fmt.Sprintf("New Contact Message from %s Website", s.clubName)
	body := fmt.Sprintf(`<h2>New Contact Message from %s</h2>
<p><strong>Name:</strong> %s %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone Number:</strong> %s</p>
<p><strong>Service Choice:</strong> %s</p>
<p><strong>Message:</strong><br>%s</p>`,
		s.clubName, sub.FirstName, sub.LastName, sub.Email, sub.PhoneNumber, sub.ServiceChoice, sub.Message)

	return s.deliver(ctx, "contact", models.ContactSheet, sub.Row(), subject, body)
}

func (s *Submissions) Join(ctx context.Context, sub models.JoinSubmission) error {
	if err := schema.Validate(sub); err != nil {
		metrics.IncSubmission("join", "rejected")
		return err
	}

	subject := fmt.Sprintf("New Join Form Submission - %s", s.clubName)
	body := fmt.Sprintf(`<h2>New Join Request from %s Website</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Registration Number:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Department:</strong> %s</p>
<p><strong>Reason:</strong><br>%s</p>`,
		s.clubName, sub.FullName, sub.Email, sub.RegNumber, sub.PhoneNumber, sub.Department, sub.Reason)

	return s.deliver(ctx, "join", models.JoinSheet, sub.Row(), subject, body)
}

// Register validates before touching any sink, then stores the payment
// screenshot (when one was uploaded) ahead of the two deliveries: a row
// referencing a file that was never written would be worse than no row.
func (s *Submissions) Register(ctx context.Context, sub models.RegistrationSubmission, screenshot []byte) error {
	if err := schema.Validate(sub); err != nil {
		metrics.IncSubmission("registration", "rejected")
		return err
	}

	if sub.ScreenshotName != "" {
		stored, err := s.files.Save(sub.ScreenshotName, screenshot)
		if err != nil {
			metrics.IncSubmission("registration", "failed")
			metrics.IncSinkFailure("upload")
			return &SinkError{Sink: "upload", Err: err}
		}
		sub.ScreenshotName = filepath.Base(stored)
		s.log.Info("screenshot stored", zap.String("path", stored))
	}

	subject := fmt.Sprintf("New Event Registration - %s", s.clubName)
	body := fmt.Sprintf(`<h2>New Event Registration from %s Website</h2>
<p><strong>Name:</strong> %s</p>
<p><strong>Registration Number:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Department:</strong> %s</p>
<p><strong>Contact Number:</strong> %s</p>
<p><strong>Screenshot:</strong> %s</p>`,
		s.clubName, sub.Name, sub.RegNumber, sub.Email, sub.Department, sub.ContactNumber, sub.ScreenshotName)

	return s.deliver(ctx, "registration", models.RegistrationSheet, sub.Row(), subject, body)
}

// deliver runs the store append and the notification concurrently.
// Neither short-circuits the other: losing the record and losing the
// notification are both unacceptable, so both errors surface together.
func (s *Submissions) deliver(ctx context.Context, form, sheet string, row []any, subject, body string) error {
	var storeErr, mailErr error
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.records.Append(ctx, sheet, row); err != nil {
			storeErr = &SinkError{Sink: "store", Err: err}
		}
	}()
	go func() {
		defer wg.Done()
		if err := s.mail.Send(ctx, subject, body); err != nil {
			mailErr = &SinkError{Sink: "mail", Err: err}
		}
	}()
	wg.Wait()

	if storeErr != nil {
		metrics.IncSinkFailure("store")
		s.log.Error("record append failed", zap.String("form", form), zap.Error(storeErr))
	}
	if mailErr != nil {
		metrics.IncSinkFailure("mail")
		s.log.Error("notification failed", zap.String("form", form), zap.Error(mailErr))
	}

	if err := multierr.Append(storeErr, mailErr); err != nil {
		metrics.IncSubmission(form, "failed")
		return err
	}

	metrics.IncSubmission(form, "accepted")
	s.log.Info("submission handled", zap.String("form", form), zap.String("sheet", sheet))
	return nil
}
