package policy

import (
	"testing"

	"github.com/google/uuid"
)

func TestMatchesOwnershipEmptyConstraint(t *testing.T) {
	principal := &Principal{ID: "u1"}
	if !matchesOwnership(Rule{}, principal, &Target{Manager: "u2"}, nil) {
		t.Error("empty ownership list must match: scope alone governs")
	}
	if !matchesOwnership(Rule{}, principal, nil, nil) {
		t.Error("empty ownership list must match even with nil target")
	}
}

func TestMatchSelfParamOverride(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		target    *Target
		params    Params
		expected  bool
	}{
		{
			"param matches principal regardless of target",
			&Principal{ID: "u1"},
			&Target{ID: "someone-else"},
			Params{ParamUserID: "u1"},
			true,
		},
		{
			"param mismatch denies even when target would match",
			&Principal{ID: "u2"},
			&Target{ID: "u2"},
			Params{ParamUserID: "u1"},
			false,
		},
		{
			"empty param still takes precedence over target",
			&Principal{ID: "u1"},
			&Target{ID: "u1"},
			Params{ParamUserID: ""},
			false,
		},
		{
			"no param falls back to target id",
			&Principal{ID: "u1"},
			&Target{ID: "u1"},
			nil,
			true,
		},
		{
			"no param and target mismatch",
			&Principal{ID: "u1"},
			&Target{ID: "u2"},
			nil,
			false,
		},
		{
			"no param and nil target",
			&Principal{ID: "u1"},
			nil,
			nil,
			false,
		},
	}

	rule := Rule{Ownership: []OwnershipKey{OwnSelf}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesOwnership(rule, tt.principal, tt.target, tt.params); got != tt.expected {
				t.Errorf("self ownership = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestFieldOwnershipKeys(t *testing.T) {
	principal := &Principal{ID: "u1"}
	target := &Target{
		Manager:    "u1",
		CreatedBy:  "u2",
		UploadedBy: "u3",
		Recipient:  "u4",
	}

	tests := []struct {
		key      OwnershipKey
		expected bool
	}{
		{OwnManager, true},
		{OwnCreatedBy, false},
		{OwnUploadedBy, false},
		{OwnRecipient, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			rule := Rule{Ownership: []OwnershipKey{tt.key}}
			if got := matchesOwnership(rule, principal, target, nil); got != tt.expected {
				t.Errorf("ownership %s = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

// Membership in an unrelated array must never cause a false positive.
func TestListOwnershipKeysAreFieldSpecific(t *testing.T) {
	principal := &Principal{ID: "u1"}
	target := &Target{
		Assignees: []string{"u2", "u3"},
		Watchers:  []string{"u1"},
		Mentions:  []string{"u4"},
	}

	tests := []struct {
		key      OwnershipKey
		expected bool
	}{
		{OwnAssignees, false},
		{OwnWatchers, true},
		{OwnMentions, false},
		{OwnMentioned, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			rule := Rule{Ownership: []OwnershipKey{tt.key}}
			if got := matchesOwnership(rule, principal, target, nil); got != tt.expected {
				t.Errorf("ownership %s = %v, expected %v", tt.key, got, tt.expected)
			}
		})
	}
}

func TestOwnershipDisjunctionAcrossKeys(t *testing.T) {
	principal := &Principal{ID: "u1"}
	rule := Rule{Ownership: []OwnershipKey{OwnManager, OwnAssignees, OwnCreatedBy}}

	if !matchesOwnership(rule, principal, &Target{CreatedBy: "u1"}, nil) {
		t.Error("any single matching key must be sufficient")
	}
	if matchesOwnership(rule, principal, &Target{Watchers: []string{"u1"}}, nil) {
		t.Error("keys outside the rule's list must not match")
	}
}

func TestIDNormalization(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"uuid value", id, id.String()},
		{"uuid pointer", &id, id.String()},
		{"nil pointer", (*uuid.UUID)(nil), ""},
		{"string", "u1", "u1"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ID(tt.value); got != tt.expected {
				t.Errorf("ID(%v) = %q, expected %q", tt.value, got, tt.expected)
			}
		})
	}
}
