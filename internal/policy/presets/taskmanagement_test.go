package presets_test

import (
	"testing"

	"task-service/internal/policy"
	"task-service/internal/policy/presets"
)

func TestTaskManagementConfigIsValid(t *testing.T) {
	if _, err := policy.New(presets.TaskManagement()); err != nil {
		t.Fatalf("task management preset must validate: %v", err)
	}
}

func TestVendorArchiveIsUnconfigured(t *testing.T) {
	checker := policy.MustNew(presets.TaskManagement())

	for _, role := range []policy.Role{presets.RoleSuperAdmin, presets.RoleAdmin, presets.RoleHod, presets.RoleUser} {
		principal := &policy.Principal{ID: "u1", Role: role, OrganizationID: "orgA", IsPlatformOrgUser: true}
		d := checker.Evaluate(presets.ResourceVendor, "archive", principal, &policy.Target{Organization: "orgB"}, "", nil)
		if d.Allowed {
			t.Errorf("vendor.archive must deny for role %s: no rules are configured", role)
		}
	}
}

func TestApprovalVerdictRequiresApprovalSubtype(t *testing.T) {
	checker := policy.MustNew(presets.TaskManagement())
	admin := &policy.Principal{ID: "u1", Role: presets.RoleAdmin, OrganizationID: "orgA"}
	target := &policy.Target{Organization: "orgA", Type: presets.TaskTypeStandard}

	if checker.Evaluate(presets.ResourceTask, presets.OpApprove, admin, target, presets.TaskTypeStandard, nil).Allowed {
		t.Error("approve on a standard task must deny")
	}

	target.Type = presets.TaskTypeApproval
	if !checker.Evaluate(presets.ResourceTask, presets.OpApprove, admin, target, presets.TaskTypeApproval, nil).Allowed {
		t.Error("approve on an approval task must allow for an org admin")
	}
}

func TestUserTaskReadNeedsRelationship(t *testing.T) {
	checker := policy.MustNew(presets.TaskManagement())
	user := &policy.Principal{ID: "u1", Role: presets.RoleUser, OrganizationID: "orgA", DepartmentID: "d1"}

	unrelated := &policy.Target{Organization: "orgA", Department: "d1", CreatedBy: "u9", Assignees: []string{"u2"}}
	if checker.Evaluate(presets.ResourceTask, presets.OpRead, user, unrelated, "", nil).Allowed {
		t.Error("a plain user must not read an unrelated task")
	}

	watched := &policy.Target{Organization: "orgA", Department: "d1", Watchers: []string{"u1"}}
	if !checker.Evaluate(presets.ResourceTask, presets.OpRead, user, watched, "", nil).Allowed {
		t.Error("a watcher must read its task")
	}
}

func TestHodFlagGrantsAssign(t *testing.T) {
	checker := policy.MustNew(presets.TaskManagement())
	target := &policy.Target{Organization: "orgA", Department: "d1"}

	plain := &policy.Principal{ID: "u1", Role: presets.RoleUser, OrganizationID: "orgA", DepartmentID: "d1"}
	if checker.Evaluate(presets.ResourceTask, presets.OpAssign, plain, target, "", nil).Allowed {
		t.Error("a plain user must not assign")
	}

	hod := &policy.Principal{ID: "u1", Role: presets.RoleUser, OrganizationID: "orgA", DepartmentID: "d1", IsHod: true}
	if !checker.Evaluate(presets.ResourceTask, presets.OpAssign, hod, target, "", nil).Allowed {
		t.Error("a department head must assign within its department")
	}
}
