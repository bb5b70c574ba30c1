package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"cargo-board/internal/models"
	"cargo-board/shared/config"
)

const reportTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Cargo Flights Report</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
        .header { background-color: #2196F3; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; text-align: center; }
        table { width: 100%; border-collapse: collapse; }
        th { text-align: left; background-color: #f8f9fa; padding: 8px; border-bottom: 2px solid #ddd; }
        td { padding: 8px; border-bottom: 1px solid #eee; }
        .footer { text-align: center; color: #666; font-size: 12px; margin-top: 30px; border-top: 1px solid #ddd; padding-top: 15px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>✈️ Cargo Flights at {{.Airport}}</h1>
        <p>{{.GeneratedAt.Format "Monday, January 2, 2006 at 15:04"}}</p>
    </div>

    <table>
        <tr>
            <th>Time</th><th>Airline</th><th>Flight</th><th>Direction</th><th>Airport</th><th>Status</th>
        </tr>
        {{range .Rows}}
        <tr>
            <td>{{.LocalTime}}</td>
            <td>{{.Airline}}</td>
            <td>{{.FlightID}}</td>
            <td>{{.Direction}}</td>
            <td>{{.OtherAirport}}</td>
            <td>{{.Status}}</td>
        </tr>
        {{end}}
    </table>

    <div class="footer">
        <p>Flight data from Avinor</p>
    </div>
</body>
</html>
`

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendBoard emails the rendered cargo board. Empty boards are skipped
// silently so quiet windows do not generate mail.
func (s *Sender) SendBoard(board *models.Board) error {
	if board == nil {
		return fmt.Errorf("board cannot be nil")
	}

	if len(board.Rows) == 0 {
		return nil // No cargo flights to report
	}

	subject := fmt.Sprintf("Cargo Flights at %s - %d Movements (%s)",
		board.Airport, len(board.Rows), board.GeneratedAt.Format("Jan 2, 2006"))

	body, err := s.generateEmailBody(board)
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content
func (s *Sender) SendHTML(subject, htmlBody string) error {
	return s.sendViaSMTP(subject, htmlBody)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

func (s *Sender) generateEmailBody(board *models.Board) (string, error) {
	tmpl, err := template.New("email").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, board); err != nil {
		return "", err
	}

	return buf.String(), nil
}
