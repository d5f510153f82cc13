package mailer

import (
	"strings"
	"testing"
)

func TestTaskAssignedTemplate_Render(t *testing.T) {
	tmpl := MustTaskAssignedTemplate()

	html, text, err := tmpl.Render(TaskAssignedContext{
		RecipientName: "Sam",
		TaskTitle:     "Pour foundation",
		AssignedBy:    "Pat",
		DueDate:       "2024-06-01",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{"Sam", "Pour foundation", "Pat", "2024-06-01"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}

func TestTaskAssignedTemplate_OmitsEmptyDueDate(t *testing.T) {
	tmpl := MustTaskAssignedTemplate()

	html, _, err := tmpl.Render(TaskAssignedContext{
		RecipientName: "Sam",
		TaskTitle:     "Pour foundation",
		AssignedBy:    "Pat",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "Due:") {
		t.Error("HTML should omit the due line when no due date is set")
	}
}

func TestTaskAssignedTemplate_EscapesHTML(t *testing.T) {
	tmpl := MustTaskAssignedTemplate()

	html, _, err := tmpl.Render(TaskAssignedContext{
		RecipientName: "<script>alert(1)</script>",
		TaskTitle:     "Pour foundation",
		AssignedBy:    "Pat",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Error("HTML rendering must escape markup in context values")
	}
}

func TestApprovalRequestedTemplate_Render(t *testing.T) {
	tmpl := MustApprovalRequestedTemplate()

	html, text, err := tmpl.Render(ApprovalRequestedContext{
		RecipientName: "Dana",
		TaskTitle:     "Replace scaffolding",
		RequestedBy:   "Sam",
	})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, want := range []string{"Dana", "Replace scaffolding", "Sam"} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}
