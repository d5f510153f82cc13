package policy_test

import (
	"errors"
	"testing"

	"task-service/internal/policy"
)

func newChecker(t *testing.T, cfg policy.Config) *policy.Checker {
	t.Helper()
	c, err := policy.New(cfg)
	if err != nil {
		t.Fatalf("failed to create checker: %v", err)
	}
	return c
}

func singleRuleConfig(resource policy.Resource, operation policy.Operation, rule policy.Rule) policy.Config {
	return policy.Config{
		Roles: []policy.Role{"SuperAdmin", "Admin", "User"},
		Matrix: policy.Matrix{
			resource: {operation: {rule}},
		},
	}
}

// ============================================================================
// Fail-closed defaults
// ============================================================================

func TestEvaluateUnconfiguredOperationDenies(t *testing.T) {
	checker := newChecker(t, singleRuleConfig("task", "read", policy.Rule{Roles: []policy.Role{"User"}}))
	principal := &policy.Principal{ID: "u1", Role: "Admin", OrganizationID: "orgA"}

	tests := []struct {
		name      string
		resource  policy.Resource
		operation policy.Operation
	}{
		{"unknown resource", "vendor", "archive"},
		{"unknown operation on known resource", "task", "archive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := checker.Evaluate(tt.resource, tt.operation, principal, nil, "", nil)
			if d.Allowed {
				t.Errorf("unconfigured %s.%s must deny", tt.resource, tt.operation)
			}
			if d.RulesEvaluated != 0 {
				t.Errorf("RulesEvaluated = %d, expected 0", d.RulesEvaluated)
			}
		})
	}
}

func TestEvaluateNilPrincipalDenies(t *testing.T) {
	checker := newChecker(t, singleRuleConfig("task", "read", policy.Rule{Roles: []policy.Role{"User"}}))
	if checker.Evaluate("task", "read", nil, &policy.Target{}, "", nil).Allowed {
		t.Error("nil principal must deny")
	}
}

// ============================================================================
// Eligibility filtering
// ============================================================================

func TestEvaluateRoleEligibility(t *testing.T) {
	checker := newChecker(t, singleRuleConfig("task", "read", policy.Rule{Roles: []policy.Role{"User"}}))

	d := checker.Evaluate("task", "read", &policy.Principal{ID: "u1", Role: "Admin"}, nil, "", nil)
	if d.Allowed {
		t.Error("role outside rule.Roles must not be eligible")
	}
	if d.RulesEvaluated != 0 {
		t.Errorf("RulesEvaluated = %d, expected 0 after eligibility filter", d.RulesEvaluated)
	}

	d = checker.Evaluate("task", "read", &policy.Principal{ID: "u1", Role: "User"}, nil, "", nil)
	if !d.Allowed {
		t.Error("eligible role with any-scope rule must allow")
	}
	if d.RulesEvaluated != 1 {
		t.Errorf("RulesEvaluated = %d, expected 1", d.RulesEvaluated)
	}
}

func TestEvaluateResourceTypeEligibility(t *testing.T) {
	rule := policy.Rule{Roles: []policy.Role{"User"}, ResourceType: "approval"}
	checker := newChecker(t, singleRuleConfig("task", "approve", rule))
	principal := &policy.Principal{ID: "u1", Role: "User"}

	if checker.Evaluate("task", "approve", principal, nil, "standard", nil).Allowed {
		t.Error("rule with ResourceType must not match a different subtype")
	}
	if !checker.Evaluate("task", "approve", principal, nil, "approval", nil).Allowed {
		t.Error("rule with ResourceType must match its subtype")
	}
}

func TestEvaluateRequiresFlags(t *testing.T) {
	tests := []struct {
		name      string
		requires  []string
		principal *policy.Principal
		expected  bool
	}{
		{"isHod satisfied", []string{"isHod"}, &policy.Principal{ID: "u1", Role: "User", IsHod: true}, true},
		{"isHod missing", []string{"isHod"}, &policy.Principal{ID: "u1", Role: "User"}, false},
		{"negated isHod satisfied", []string{"!isHod"}, &policy.Principal{ID: "u1", Role: "User"}, true},
		{"negated isHod violated", []string{"!isHod"}, &policy.Principal{ID: "u1", Role: "User", IsHod: true}, false},
		{"open flag satisfied", []string{"canExport"}, &policy.Principal{ID: "u1", Role: "User", Flags: map[string]bool{"canExport": true}}, true},
		{"open flag absent", []string{"canExport"}, &policy.Principal{ID: "u1", Role: "User"}, false},
		{"negated absent flag", []string{"!canExport"}, &policy.Principal{ID: "u1", Role: "User"}, true},
		{"all entries must hold", []string{"isHod", "!suspended"}, &policy.Principal{ID: "u1", Role: "User", IsHod: true, Flags: map[string]bool{"suspended": true}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := policy.Rule{Roles: []policy.Role{"User"}, Requires: tt.requires}
			checker := newChecker(t, singleRuleConfig("task", "assign", rule))
			if got := checker.Evaluate("task", "assign", tt.principal, nil, "", nil).Allowed; got != tt.expected {
				t.Errorf("requires %v = %v, expected %v", tt.requires, got, tt.expected)
			}
		})
	}
}

// ============================================================================
// Rule disjunction
// ============================================================================

// A single fully-passing rule is sufficient even when other eligible rules
// fail their scope or ownership clause.
func TestEvaluateOrAcrossRules(t *testing.T) {
	cfg := policy.Config{
		Roles: []policy.Role{"User"},
		Matrix: policy.Matrix{
			"task": {
				"update": {
					{Roles: []policy.Role{"User"}, Scope: policy.ScopeOwnOrgOwnDept},
					{Roles: []policy.Role{"User"}, Scope: policy.ScopeOwnOrg, Ownership: []policy.OwnershipKey{policy.OwnAssignees}},
				},
			},
		},
	}
	checker := newChecker(t, cfg)
	principal := &policy.Principal{ID: "u1", Role: "User", OrganizationID: "orgA", DepartmentID: "d1"}

	// First rule fails (wrong department), second passes via assignee ownership.
	target := &policy.Target{Organization: "orgA", Department: "d2", Assignees: []string{"u1"}}
	d := checker.Evaluate("task", "update", principal, target, "", nil)
	if !d.Allowed {
		t.Error("one passing rule must be sufficient")
	}
	if d.RulesEvaluated != 2 {
		t.Errorf("RulesEvaluated = %d, expected 2", d.RulesEvaluated)
	}

	// Both rules fail: scope AND ownership within a rule.
	target = &policy.Target{Organization: "orgA", Department: "d2", Assignees: []string{"u9"}}
	if checker.Evaluate("task", "update", principal, target, "", nil).Allowed {
		t.Error("no fully-passing rule must deny")
	}
}

// ============================================================================
// Example scenarios
// ============================================================================

func TestScenarioOwnDeptTaskRead(t *testing.T) {
	rule := policy.Rule{Roles: []policy.Role{"User"}, Scope: policy.ScopeOwnOrgOwnDept}
	checker := newChecker(t, singleRuleConfig("task", "read", rule))
	principal := &policy.Principal{ID: "u1", Role: "User", OrganizationID: "A", DepartmentID: "D1"}

	if !checker.Evaluate("task", "read", principal, &policy.Target{Organization: "A", Department: "D1"}, "", nil).Allowed {
		t.Error("same org and dept must allow")
	}
	if checker.Evaluate("task", "read", principal, &policy.Target{Organization: "A", Department: "D2"}, "", nil).Allowed {
		t.Error("other dept must deny")
	}
	if checker.Evaluate("task", "read", principal, &policy.Target{Organization: "B", Department: "D1"}, "", nil).Allowed {
		t.Error("other org must deny independently of dept")
	}
}

func TestScenarioCrossOrgDelete(t *testing.T) {
	rule := policy.Rule{Roles: []policy.Role{"SuperAdmin"}, Scope: policy.ScopeCrossOrg}
	checker := newChecker(t, singleRuleConfig("organization", "delete", rule))
	target := &policy.Target{Organization: "B"}

	tenant := &policy.Principal{ID: "u1", Role: "SuperAdmin", OrganizationID: "A"}
	if checker.Evaluate("organization", "delete", tenant, target, "", nil).Allowed {
		t.Error("non-platform principal must deny")
	}

	platform := &policy.Principal{ID: "u1", Role: "SuperAdmin", OrganizationID: "A", IsPlatformOrgUser: true}
	if !checker.Evaluate("organization", "delete", platform, target, "", nil).Allowed {
		t.Error("platform principal acting on a foreign org must allow")
	}
}

func TestScenarioManagerOwnership(t *testing.T) {
	rule := policy.Rule{Roles: []policy.Role{"Admin"}, Ownership: []policy.OwnershipKey{policy.OwnManager}}
	checker := newChecker(t, singleRuleConfig("department", "update", rule))
	principal := &policy.Principal{ID: "u1", Role: "Admin"}

	if !checker.Evaluate("department", "update", principal, &policy.Target{Manager: "u1"}, "", nil).Allowed {
		t.Error("managed target must allow under omitted scope")
	}
	if checker.Evaluate("department", "update", principal, &policy.Target{Manager: "u2"}, "", nil).Allowed {
		t.Error("unmanaged target must deny")
	}
}

func TestScenarioSelfParamShortCircuit(t *testing.T) {
	rule := policy.Rule{Roles: []policy.Role{"Admin", "User"}, Ownership: []policy.OwnershipKey{policy.OwnSelf}}
	checker := newChecker(t, singleRuleConfig("user", "update", rule))
	params := policy.Params{policy.ParamUserID: "u1"}

	owner := &policy.Principal{ID: "u1", Role: "User"}
	if !checker.Evaluate("user", "update", owner, nil, "", params).Allowed {
		t.Error("matching userId param must allow regardless of target")
	}

	other := &policy.Principal{ID: "u2", Role: "User"}
	target := &policy.Target{ID: "u2"}
	if checker.Evaluate("user", "update", other, target, "", params).Allowed {
		t.Error("param mismatch must deny even when target.id matches the principal")
	}
}

// ============================================================================
// Config validation
// ============================================================================

func TestNewRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  policy.Config
	}{
		{"empty roles", policy.Config{Matrix: policy.Matrix{"task": {"read": {{Roles: []policy.Role{"User"}}}}}}},
		{"empty matrix", policy.Config{Roles: []policy.Role{"User"}}},
		{"duplicate role", policy.Config{
			Roles:  []policy.Role{"User", "User"},
			Matrix: policy.Matrix{"task": {"read": {{Roles: []policy.Role{"User"}}}}},
		}},
		{"rule without roles", policy.Config{
			Roles:  []policy.Role{"User"},
			Matrix: policy.Matrix{"task": {"read": {{}}}},
		}},
		{"rule with undeclared role", policy.Config{
			Roles:  []policy.Role{"User"},
			Matrix: policy.Matrix{"task": {"read": {{Roles: []policy.Role{"Admin"}}}}},
		}},
		{"unknown scope", policy.Config{
			Roles:  []policy.Role{"User"},
			Matrix: policy.Matrix{"task": {"read": {{Roles: []policy.Role{"User"}, Scope: "everywhere"}}}},
		}},
		{"unknown ownership key", policy.Config{
			Roles:  []policy.Role{"User"},
			Matrix: policy.Matrix{"task": {"read": {{Roles: []policy.Role{"User"}, Ownership: []policy.OwnershipKey{"owner"}}}}},
		}},
		{"empty requires entry", policy.Config{
			Roles:  []policy.Role{"User"},
			Matrix: policy.Matrix{"task": {"read": {{Roles: []policy.Role{"User"}, Requires: []string{"!"}}}}},
		}},
		{"operation without rules", policy.Config{
			Roles:  []policy.Role{"User"},
			Matrix: policy.Matrix{"task": {"read": {}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := policy.New(tt.cfg)
			if err == nil {
				t.Fatal("expected config error, got nil")
			}
			if !errors.Is(err, policy.ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
			}
		})
	}
}

func TestMustNewPanicsOnInvalidConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew must panic on invalid config")
		}
	}()
	policy.MustNew(policy.Config{})
}

func TestValidateRole(t *testing.T) {
	checker := newChecker(t, singleRuleConfig("task", "read", policy.Rule{Roles: []policy.Role{"User"}}))

	if _, err := checker.ValidateRole("User"); err != nil {
		t.Errorf("ValidateRole(User) unexpected error: %v", err)
	}
	if _, err := checker.ValidateRole("Superuser"); err == nil {
		t.Error("ValidateRole must reject undeclared roles")
	}
}
