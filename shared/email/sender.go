package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"channel-stats/internal/models"
	"channel-stats/shared/config"
)

const digestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>YouTube Analytics Report</h2>
  <p>{{if .Channel}}Channel <strong>{{.Channel}}</strong>, {{end}}generated {{.GeneratedAt.Format "Jan 2, 2006 15:04 MST"}}.</p>
  {{if .NewVideos}}<p>{{.NewVideos}} new video(s) since the last run.</p>{{end}}
  <table cellpadding="6" style="border-collapse: collapse;">
    {{range .KPIs}}
    <tr style="border-bottom: 1px solid #ddd;">
      <td>{{.Name}}</td>
      <td style="text-align: right;">{{value .}}</td>
    </tr>
    {{end}}
  </table>
  {{if .Insights}}
  <h3>Insights</h3>
  {{range paragraphs .Insights}}<p>{{.}}</p>{{end}}
  {{end}}
</body>
</html>
`

var digest = template.Must(template.New("digest").Funcs(template.FuncMap{
	"value": func(k models.KPI) string {
		if k.Integer {
			return fmt.Sprintf("%.0f", k.Value)
		}
		return fmt.Sprintf("%.2f", k.Value)
	},
	"paragraphs": splitParagraphs,
}).Parse(digestTemplate))

type Sender struct {
	config *config.EmailConfig
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
		send:   smtp.SendMail,
	}
}

func (s *Sender) SendReport(report *models.Report) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}

	if len(report.KPIs) == 0 {
		return nil // Nothing to report
	}

	subject := fmt.Sprintf("YouTube Analytics Report (%s)", report.GeneratedAt.Format("Jan 2, 2006"))
	if report.NewVideos > 0 {
		subject = fmt.Sprintf("YouTube Analytics Report - %d New Videos (%s)",
			report.NewVideos, report.GeneratedAt.Format("Jan 2, 2006"))
	}

	body, err := generateEmailBody(report)
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
	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return s.send(addr, auth, s.config.FromEmail, to, s.buildMessage(subject, body))
}

func (s *Sender) buildMessage(subject, body string) []byte {
	return []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))
}

func generateEmailBody(report *models.Report) (string, error) {
	var buf bytes.Buffer
	if err := digest.Execute(&buf, report); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func splitParagraphs(text string) []string {
	var out []string
	for _, p := range bytes.Split([]byte(text), []byte("\n")) {
		if p = bytes.TrimSpace(p); len(p) > 0 {
			out = append(out, string(p))
		}
	}
	return out
}
