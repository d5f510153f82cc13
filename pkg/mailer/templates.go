package mailer

import (
	"bytes"
	"html/template"
)

// Template pairs HTML and plain-text renderings of one notification mail
type Template struct {
	Name string
	html *template.Template
	text *template.Template
}

func NewTemplate(name, htmlTmpl, textTmpl string) (*Template, error) {
	htmlTemplate, err := template.New(name + "_html").Parse(htmlTmpl)
	if err != nil {
		return nil, err
	}

	var textTemplate *template.Template
	if textTmpl != "" {
		textTemplate, err = template.New(name + "_text").Parse(textTmpl)
		if err != nil {
			return nil, err
		}
	}

	return &Template{
		Name: name,
		html: htmlTemplate,
		text: textTemplate,
	}, nil
}

func (t *Template) Render(context any) (string, string, error) {
	var htmlBuf bytes.Buffer
	if err := t.html.Execute(&htmlBuf, context); err != nil {
		return "", "", err
	}

	var textBuf bytes.Buffer
	if t.text != nil {
		if err := t.text.Execute(&textBuf, context); err != nil {
			return "", "", err
		}
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// TaskAssignedContext feeds the task-assigned notification mail
type TaskAssignedContext struct {
	RecipientName string
	TaskTitle     string
	AssignedBy    string
	DueDate       string
}

const taskAssignedHTML = `<html><body>
<p>Hi {{.RecipientName}},</p>
<p>You have been assigned to the task <strong>{{.TaskTitle}}</strong> by {{.AssignedBy}}.</p>
{{if .DueDate}}<p>Due: {{.DueDate}}</p>{{end}}
</body></html>`

const taskAssignedText = `Hi {{.RecipientName}},

You have been assigned to the task "{{.TaskTitle}}" by {{.AssignedBy}}.
{{if .DueDate}}Due: {{.DueDate}}{{end}}`

// MustTaskAssignedTemplate returns the task-assigned template; the template
// text is static, so a parse failure is a programming error.
func MustTaskAssignedTemplate() *Template {
	t, err := NewTemplate("task_assigned", taskAssignedHTML, taskAssignedText)
	if err != nil {
		panic(err)
	}
	return t
}

// ApprovalRequestedContext feeds the approval-requested notification mail
type ApprovalRequestedContext struct {
	RecipientName string
	TaskTitle     string
	RequestedBy   string
}

const approvalRequestedHTML = `<html><body>
<p>Hi {{.RecipientName}},</p>
<p>{{.RequestedBy}} requested your approval on <strong>{{.TaskTitle}}</strong>.</p>
</body></html>`

const approvalRequestedText = `Hi {{.RecipientName}},

{{.RequestedBy}} requested your approval on "{{.TaskTitle}}".`

func MustApprovalRequestedTemplate() *Template {
	t, err := NewTemplate("approval_requested", approvalRequestedHTML, approvalRequestedText)
	if err != nil {
		panic(err)
	}
	return t
}
