package policy

import "testing"

func TestMatchesScopeAny(t *testing.T) {
	principals := []*Principal{
		{ID: "u1", OrganizationID: "orgA", DepartmentID: "d1"},
		{ID: "u2", OrganizationID: "orgB", IsPlatformOrgUser: true},
	}
	targets := []*Target{
		nil,
		{},
		{Organization: "orgZ", Department: "d9"},
	}

	for _, rule := range []Rule{{}, {Scope: ScopeAny}} {
		for _, p := range principals {
			for _, target := range targets {
				if !matchesScope(rule, p, target) {
					t.Errorf("scope %q should match every principal/target pair", rule.Scope)
				}
			}
		}
	}
}

func TestMatchesScopeCrossOrg(t *testing.T) {
	rule := Rule{Scope: ScopeCrossOrg}

	tests := []struct {
		name      string
		principal *Principal
		target    *Target
		expected  bool
	}{
		{
			"non-platform user always denied",
			&Principal{ID: "u1", OrganizationID: "orgA"},
			&Target{Organization: "orgB"},
			false,
		},
		{
			"non-platform user denied even without target org",
			&Principal{ID: "u1", OrganizationID: "orgA"},
			&Target{},
			false,
		},
		{
			"platform user acting outside home org",
			&Principal{ID: "u1", OrganizationID: "orgA", IsPlatformOrgUser: true},
			&Target{Organization: "orgB"},
			true,
		},
		{
			"platform user acting on home org",
			&Principal{ID: "u1", OrganizationID: "orgA", IsPlatformOrgUser: true},
			&Target{Organization: "orgA"},
			false,
		},
		{
			"platform user with orgless target",
			&Principal{ID: "u1", OrganizationID: "orgA", IsPlatformOrgUser: true},
			&Target{},
			true,
		},
		{
			"platform user with nil target",
			&Principal{ID: "u1", OrganizationID: "orgA", IsPlatformOrgUser: true},
			nil,
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesScope(rule, tt.principal, tt.target); got != tt.expected {
				t.Errorf("matchesScope(crossOrg) = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMatchesScopeOwnOrg(t *testing.T) {
	principal := &Principal{ID: "u1", OrganizationID: "orgA", DepartmentID: "d1"}

	tests := []struct {
		name     string
		scope    Scope
		target   *Target
		expected bool
	}{
		{"ownOrg same org", ScopeOwnOrg, &Target{Organization: "orgA"}, true},
		{"ownOrg other org", ScopeOwnOrg, &Target{Organization: "orgB"}, false},
		{"ownOrg orgless target", ScopeOwnOrg, &Target{}, true},
		{"ownOrg nil target", ScopeOwnOrg, nil, true},
		{"crossDept same org other dept", ScopeOwnOrgCrossDept, &Target{Organization: "orgA", Department: "d2"}, true},
		{"crossDept other org", ScopeOwnOrgCrossDept, &Target{Organization: "orgB", Department: "d1"}, false},
		{"ownDept both match", ScopeOwnOrgOwnDept, &Target{Organization: "orgA", Department: "d1"}, true},
		{"ownDept deptless target", ScopeOwnOrgOwnDept, &Target{Organization: "orgA"}, true},
		{"ownDept other dept", ScopeOwnOrgOwnDept, &Target{Organization: "orgA", Department: "d2"}, false},
		{"ownDept other org same dept", ScopeOwnOrgOwnDept, &Target{Organization: "orgB", Department: "d1"}, false},
		{"ownDept nil target", ScopeOwnOrgOwnDept, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesScope(Rule{Scope: tt.scope}, principal, tt.target); got != tt.expected {
				t.Errorf("matchesScope(%s) = %v, expected %v", tt.scope, got, tt.expected)
			}
		})
	}
}

// ownOrg.crossDept carries the exact ownOrg condition; the label only
// documents intent. Both scopes must agree on every input.
func TestCrossDeptMatchesOwnOrgExactly(t *testing.T) {
	principal := &Principal{ID: "u1", OrganizationID: "orgA", DepartmentID: "d1"}
	targets := []*Target{
		nil,
		{},
		{Organization: "orgA"},
		{Organization: "orgA", Department: "d2"},
		{Organization: "orgB"},
		{Organization: "orgB", Department: "d1"},
	}

	for _, target := range targets {
		own := matchesScope(Rule{Scope: ScopeOwnOrg}, principal, target)
		cross := matchesScope(Rule{Scope: ScopeOwnOrgCrossDept}, principal, target)
		if own != cross {
			t.Errorf("ownOrg=%v but ownOrg.crossDept=%v for target %+v", own, cross, target)
		}
	}
}

func TestMatchesScopeUnknownDenies(t *testing.T) {
	principal := &Principal{ID: "u1", OrganizationID: "orgA", IsPlatformOrgUser: true}
	if matchesScope(Rule{Scope: Scope("globalAdmin")}, principal, &Target{}) {
		t.Error("unrecognized scope must deny")
	}
}
