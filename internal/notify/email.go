package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/famledger/famledger/internal/models"
)

var emailBodyTmpl = template.Must(template.New("reminders").Parse(`<h2>Upcoming Bill Reminders</h2>
<p>You have the following bills due soon:</p>
<table style="border-collapse: collapse; width: 100%;">
  <thead>
    <tr style="background-color: #f2f2f2;">
      <th style="padding: 8px; border: 1px solid #ddd;">Description</th>
      <th style="padding: 8px; border: 1px solid #ddd;">Due Date</th>
      <th style="padding: 8px; border: 1px solid #ddd;">Amount</th>
    </tr>
  </thead>
  <tbody>
    {{- range .Reminders}}
    <tr>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.Description}}</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.DueDate}}</td>
      <td style="padding: 8px; border: 1px solid #ddd;">{{.Amount}}</td>
    </tr>
    {{- end}}
  </tbody>
</table>
<p>If a bill is already settled, please mark it as paid on the site.</p>`))

type emailRow struct {
	Description string
	DueDate     string
	Amount      string
}

// EmailConfig holds SMTP settings for the reminder digest. The digest goes
// to a single configured recipient, same as the original family setup.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
	Currency string
}

type EmailNotifier struct {
	cfg    EmailConfig
	dialer *gomail.Dialer
}

func NewEmailNotifier(cfg EmailConfig) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (n *EmailNotifier) Name() string { return "email" }

func (n *EmailNotifier) Notify(ctx context.Context, reminders []*models.Reminder) error {
	body, err := renderEmailBody(reminders, n.cfg.Currency)
	if err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", n.cfg.To)
	m.SetHeader("Subject", fmt.Sprintf("Upcoming Bill Reminders - %d Due Soon", len(reminders)))
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder email: %w", err)
	}
	return nil
}

func renderEmailBody(reminders []*models.Reminder, currency string) (string, error) {
	rows := make([]emailRow, 0, len(reminders))
	for _, r := range reminders {
		rows = append(rows, emailRow{
			Description: r.Description,
			DueDate:     r.DueDate.Format(time.DateOnly),
			Amount:      currency + r.Amount.StringFixed(2),
		})
	}

	var buf bytes.Buffer
	if err := emailBodyTmpl.Execute(&buf, struct{ Reminders []emailRow }{rows}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
