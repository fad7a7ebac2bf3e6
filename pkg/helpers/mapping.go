package helpers

import (
	"fmt"
	"strings"

	"github.com/realworld-go/conduit/pkg/mailer"
	mailtpl "github.com/realworld-go/conduit/pkg/mailer/templates"
)

// FallbackSubject returns a subject line for jobs whose template did
// not render one, keyed on the template name.
func FallbackSubject(job *mailer.EmailJob) string {
	switch strings.ToLower(job.Template) {
	case mailtpl.Welcome:
		return "Welcome aboard"
	case mailtpl.CommentAdded:
		return "New comment on your article"
	default:
		return "Notification"
	}
}

// EnsureRecipientAndEmail backfills the recipient fields the templates
// read, so a job built with only To still renders.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
	if v, ok := job.Data["Username"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Username"] = job.To
	}
}
