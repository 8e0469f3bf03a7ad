package models

// Sheet (tab) names inside the tabular sink, one per submission type.
const (
	ContactSheet      = "Contacts"
	JoinSheet         = "Join Requests"
	RegistrationSheet = "Registrations"
)

// Column layouts. Row() methods below must stay 1:1 with these.
var (
	ContactHeader      = []string{"First Name", "Last Name", "Email", "Phone Number", "Service Choice", "Message"}
	JoinHeader         = []string{"Full Name", "Email", "Registration Number", "Phone Number", "Department", "Reason"}
	RegistrationHeader = []string{"Name", "Registration Number", "Email", "Department", "Contact Number", "Screenshot Filename"}
)

// Headers maps each sheet to its header row, used by the record stores
// when they create a missing sink.
func Headers() map[string][]string {
	return map[string][]string{
		ContactSheet:      ContactHeader,
		JoinSheet:         JoinHeader,
		RegistrationSheet: RegistrationHeader,
	}
}

// ContactSubmission is a message posted through the contact form.
type ContactSubmission struct {
	FirstName     string `json:"fname" validate:"notblank"`
	LastName      string `json:"lname" validate:"notblank"`
	Email         string `json:"email" validate:"notblank,email"`
	PhoneNumber   string `json:"phone_number" validate:"notblank"`
	Message       string `json:"message" validate:"notblank"`
	ServiceChoice string `json:"servicechoice" validate:"notblank"`
}

func (c ContactSubmission) Row() []any {
	return []any{c.FirstName, c.LastName, c.Email, c.PhoneNumber, c.ServiceChoice, c.Message}
}

// JoinSubmission is a club membership request.
type JoinSubmission struct {
	FullName    string `json:"fullname" validate:"notblank"`
	Email       string `json:"email" validate:"notblank,email"`
	RegNumber   string `json:"reg_number" validate:"notblank"`
	PhoneNumber string `json:"phone_number" validate:"notblank"`
	Department  string `json:"department" validate:"notblank"`
	Reason      string `json:"reason" validate:"notblank"`
}

func (j JoinSubmission) Row() []any {
	return []any{j.FullName, j.Email, j.RegNumber, j.PhoneNumber, j.Department, j.Reason}
}

// RegistrationSubmission is an event registration. Either a contact
// number or an uploaded payment screenshot must be provided; the
// screenshot name is filled in from the multipart upload before
// validation runs.
type RegistrationSubmission struct {
	Name          string `json:"name" validate:"notblank"`
	RegNumber     string `json:"reg_number" validate:"notblank"`
	Email         string `json:"email" validate:"notblank,email"`
	Department    string `json:"department"`
	ContactNumber string `json:"contact_number" validate:"required_without=ScreenshotName"`

	ScreenshotName string `json:"-"`
}

func (r RegistrationSubmission) Row() []any {
	return []any{r.Name, r.RegNumber, r.Email, r.Department, r.ContactNumber, r.ScreenshotName}
}
