package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"

	"github.com/quanta/backend/internal/domain/entity"
)

const recurringDueHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>Upcoming payment</h2>
  <p>Hi {{.Name}},</p>
  <p><strong>{{.Data.description}}</strong> ({{.Data.amount}}) is due on {{.Data.due_date}}.</p>
  <p>Mark it as paid once the charge goes through so your monthly overview stays accurate.</p>
</body>
</html>`

const recurringDueText = `Hi {{.Name}},

{{.Data.description}} ({{.Data.amount}}) is due on {{.Data.due_date}}.

Mark it as paid once the charge goes through so your monthly overview stays accurate.`

const contributionDueHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>Contribution due today</h2>
  <p>Hi {{.Name}},</p>
  <p>Your savings goal <strong>{{.Data.goal_name}}</strong> has a contribution scheduled for today{{if .Data.contribution_amount}} of {{.Data.contribution_amount}}{{end}}.</p>
  <p>Progress so far: {{.Data.current_amount}} of {{.Data.target_amount}}.</p>
</body>
</html>`

const contributionDueText = `Hi {{.Name}},

Your savings goal {{.Data.goal_name}} has a contribution scheduled for today{{if .Data.contribution_amount}} of {{.Data.contribution_amount}}{{end}}.

Progress so far: {{.Data.current_amount}} of {{.Data.target_amount}}.`

const budgetExceededHTML = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
  <h2>Budget exceeded</h2>
  <p>Hi {{.Name}},</p>
  <p>Your {{.Data.period}} budget for <strong>{{.Data.category}}</strong> is over its limit.</p>
  <p>Spent {{.Data.current_spending}} of {{.Data.limit_amount}}.</p>
</body>
</html>`

const budgetExceededText = `Hi {{.Name}},

Your {{.Data.period}} budget for {{.Data.category}} is over its limit.

Spent {{.Data.current_spending}} of {{.Data.limit_amount}}.`

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Parse(""))
	textTemplates = texttemplate.Must(texttemplate.New("").Parse(""))
)

func init() {
	for name, body := range map[string]string{
		string(entity.ReminderRecurringDue):    recurringDueHTML,
		string(entity.ReminderContributionDue): contributionDueHTML,
		string(entity.ReminderBudgetExceeded):  budgetExceededHTML,
	} {
		htmltemplate.Must(htmlTemplates.New(name).Parse(body))
	}
	for name, body := range map[string]string{
		string(entity.ReminderRecurringDue):    recurringDueText,
		string(entity.ReminderContributionDue): contributionDueText,
		string(entity.ReminderBudgetExceeded):  budgetExceededText,
	} {
		texttemplate.Must(textTemplates.New(name).Parse(body))
	}
}

type reminderTemplateData struct {
	Name string
	Data map[string]interface{}
}

// renderReminder renders the HTML and text bodies for a reminder job.
// On a render failure it falls back to a plain sentence so the job can
// still be delivered.
func renderReminder(job *entity.ReminderJob) (html string, text string) {
	data := reminderTemplateData{Name: job.RecipientName, Data: job.Data}

	var htmlBuf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&htmlBuf, string(job.Kind), data); err != nil {
		slog.Error("Failed to render reminder HTML template", "error", err, "kind", string(job.Kind))
		fallback := fmt.Sprintf("Hi %s, you have a reminder: %s.", job.RecipientName, job.Subject)
		return fallback, fallback
	}

	var textBuf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&textBuf, string(job.Kind), data); err != nil {
		slog.Error("Failed to render reminder text template", "error", err, "kind", string(job.Kind))
		return htmlBuf.String(), ""
	}

	return htmlBuf.String(), textBuf.String()
}
