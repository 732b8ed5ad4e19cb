package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

var leadAssignedTmpl = template.Must(template.New("lead_assigned").Parse(
	`Hi {{.SalespersonName}},

A new lead has been assigned to you: {{.LeadName}} ({{.Phone}}).
Please reach out within the next few hours.
`))

// SendLeadAssigned tells a salesperson a fresh lead landed on their desk.
func (s *EmailSender) SendLeadAssigned(to, salespersonName, leadName, phone string) error {
	var body bytes.Buffer
	err := leadAssignedTmpl.Execute(&body, struct {
		SalespersonName, LeadName, Phone string
	}{salespersonName, leadName, phone})
	if err != nil {
		return fmt.Errorf("render lead assigned mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("New lead assigned: %s", leadName))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send lead assigned mail: %w", err)
	}
	return nil
}

var importSummaryTmpl = template.Must(template.New("import_summary").Parse(
	`Your lead import for {{.CompanyName}} has finished.

Created: {{.Created}}
Skipped: {{.Skipped}}
Errors:  {{.Errors}}
Total rows: {{.Total}}
`))

// ImportSummary is the digest mailed to the uploader after a bulk import.
type ImportSummary struct {
	CompanyName string
	Created     int
	Skipped     int
	Errors      int
	Total       int
}

func (s *EmailSender) SendImportSummary(to string, summary ImportSummary) error {
	var body bytes.Buffer
	if err := importSummaryTmpl.Execute(&body, summary); err != nil {
		return fmt.Errorf("render import summary mail: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Lead import finished for %s", summary.CompanyName))
	m.SetBody("text/plain", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send import summary mail: %w", err)
	}
	return nil
}
