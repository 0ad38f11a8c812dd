package templates

import (
	"fmt"
	"html"
	"strings"
)

// Escalation is the content of an unanswered emergency email
type Escalation struct {
	Subject  string
	Priority string
	Type     string
	Location string
	Waited   string
	Message  string
}

var priorityColours = map[string]string{
	"critical": "#dc2626",
	"high":     "#ea580c",
}

// RenderEscalationEmail generates the HTML body sent to dispatch when an
// emergency has had no response. Every field is HTML-escaped and newlines in
// Message become <br>.
func RenderEscalationEmail(e Escalation) string {
	colour, ok := priorityColours[e.Priority]
	if !ok {
		colour = "#2563eb"
	}
	message := strings.ReplaceAll(html.EscapeString(e.Message), "\n", "<br>")
	subject := html.EscapeString(e.Subject)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <title>%s</title>
  <style type="text/css">
    body { font-family: Arial, Helvetica, sans-serif; margin: 0; padding: 0; background-color: #f3f4f6; }
    .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; }
    .header { background-color: %s; padding: 24px 30px; color: #ffffff; }
    .header h1 { margin: 0; font-size: 20px; }
    .content { padding: 30px; color: #111827; line-height: 1.5; font-size: 15px; }
    .details td { padding: 4px 12px 4px 0; }
    .footer { padding: 20px 30px; color: #6b7280; font-size: 12px; border-top: 1px solid #e5e7eb; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header"><h1>%s</h1></div>
    <div class="content">
      <p>%s</p>
      <table class="details">
        <tr><td>Priority</td><td><strong>%s</strong></td></tr>
        <tr><td>Type</td><td>%s</td></tr>
        <tr><td>Location</td><td>%s</td></tr>
        <tr><td>Waiting</td><td>%s</td></tr>
      </table>
    </div>
    <div class="footer">Lifeline emergency response dashboard</div>
  </div>
</body>
</html>`, subject, colour, subject, message,
		html.EscapeString(e.Priority), html.EscapeString(e.Type),
		html.EscapeString(e.Location), html.EscapeString(e.Waited))
}
