package presets

import "task-service/internal/policy"

const (
	RoleSuperAdmin policy.Role = "SuperAdmin"
	RoleAdmin      policy.Role = "Admin"
	RoleHod        policy.Role = "Hod"
	RoleUser       policy.Role = "User"

	ResourceTask         policy.Resource = "task"
	ResourceUser         policy.Resource = "user"
	ResourceOrganization policy.Resource = "organization"
	ResourceDepartment   policy.Resource = "department"
	ResourceAttachment   policy.Resource = "attachment"
	ResourceComment      policy.Resource = "comment"
	ResourceVendor       policy.Resource = "vendor"
	ResourceMaterial     policy.Resource = "material"
	ResourceNotification policy.Resource = "notification"

	OpCreate  policy.Operation = "create"
	OpRead    policy.Operation = "read"
	OpList    policy.Operation = "list"
	OpUpdate  policy.Operation = "update"
	OpDelete  policy.Operation = "delete"
	OpAssign  policy.Operation = "assign"
	OpApprove policy.Operation = "approve"
	OpOrder   policy.Operation = "order"

	// Task subtypes carried by the type discriminator column
	TaskTypeStandard    = "standard"
	TaskTypeApproval    = "approval"
	TaskTypeProcurement = "procurement"
)

var allRoles = []policy.Role{RoleSuperAdmin, RoleAdmin, RoleHod, RoleUser}

// TaskManagement returns the production policy configuration for the task
// management service. Vendor archive is intentionally absent: unconfigured
// operations deny for every role.
func TaskManagement() policy.Config {
	return policy.Config{
		Roles: allRoles,
		Matrix: policy.Matrix{
			ResourceTask: {
				OpCreate: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod, RoleUser}, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpRead: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod}, Scope: policy.ScopeOwnOrgOwnDept},
					{
						Roles:     []policy.Role{RoleUser},
						Scope:     policy.ScopeOwnOrgOwnDept,
						Ownership: []policy.OwnershipKey{policy.OwnCreatedBy, policy.OwnAssignees, policy.OwnWatchers, policy.OwnMentions},
					},
				},
				OpList: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod, RoleUser}, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpUpdate: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod}, Scope: policy.ScopeOwnOrgOwnDept},
					{
						Roles:     []policy.Role{RoleUser},
						Scope:     policy.ScopeOwnOrgOwnDept,
						Ownership: []policy.OwnershipKey{policy.OwnCreatedBy, policy.OwnManager, policy.OwnAssignees},
					},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{
						Roles:     []policy.Role{RoleHod, RoleUser},
						Scope:     policy.ScopeOwnOrgOwnDept,
						Ownership: []policy.OwnershipKey{policy.OwnCreatedBy},
					},
				},
				OpAssign: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod}, Scope: policy.ScopeOwnOrgOwnDept},
					{
						Roles:    []policy.Role{RoleUser},
						Scope:    policy.ScopeOwnOrgOwnDept,
						Requires: []string{policy.FlagIsHod},
					},
				},
				// Approval verdicts exist only on approval-type tasks, and a
				// department head cannot approve a task it manages itself.
				OpApprove: {
					{Roles: []policy.Role{RoleAdmin}, ResourceType: TaskTypeApproval, Scope: policy.ScopeOwnOrg},
					{
						Roles:        []policy.Role{RoleHod},
						ResourceType: TaskTypeApproval,
						Scope:        policy.ScopeOwnOrgOwnDept,
					},
				},
				OpOrder: {
					{Roles: []policy.Role{RoleAdmin}, ResourceType: TaskTypeProcurement, Scope: policy.ScopeOwnOrg},
					{
						Roles:        []policy.Role{RoleUser},
						ResourceType: TaskTypeProcurement,
						Scope:        policy.ScopeOwnOrgOwnDept,
						Ownership:    []policy.OwnershipKey{policy.OwnManager},
					},
				},
			},
			ResourceUser: {
				OpCreate: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
				OpRead: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod}, Scope: policy.ScopeOwnOrgOwnDept},
					{
						Roles:     []policy.Role{RoleUser},
						Scope:     policy.ScopeOwnOrg,
						Ownership: []policy.OwnershipKey{policy.OwnSelf},
					},
				},
				OpList: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod}, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpUpdate: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{
						Roles:     []policy.Role{RoleHod, RoleUser},
						Ownership: []policy.OwnershipKey{policy.OwnSelf},
					},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
			},
			ResourceOrganization: {
				OpCreate: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
				},
				OpRead: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: allRoles, Scope: policy.ScopeOwnOrg},
				},
				OpUpdate: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
				},
			},
			ResourceDepartment: {
				OpCreate: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
				OpRead: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod, RoleUser}, Scope: policy.ScopeOwnOrgOwnDept},
					{
						Roles:    []policy.Role{RoleUser},
						Scope:    policy.ScopeOwnOrg,
						Requires: []string{policy.FlagIsHod},
					},
				},
				OpUpdate: {
					{
						Roles:     []policy.Role{RoleAdmin},
						Ownership: []policy.OwnershipKey{policy.OwnManager},
					},
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
			},
			ResourceAttachment: {
				OpCreate: {
					{Roles: allRoles, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpRead: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod, RoleUser}, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{
						Roles:     []policy.Role{RoleHod, RoleUser},
						Scope:     policy.ScopeOwnOrg,
						Ownership: []policy.OwnershipKey{policy.OwnUploadedBy},
					},
				},
			},
			ResourceComment: {
				OpCreate: {
					{Roles: allRoles, Scope: policy.ScopeOwnOrg},
				},
				OpRead: {
					{Roles: []policy.Role{RoleSuperAdmin}, Scope: policy.ScopeCrossOrg},
					{Roles: allRoles, Scope: policy.ScopeOwnOrg},
				},
				OpUpdate: {
					{
						Roles:     allRoles,
						Scope:     policy.ScopeOwnOrg,
						Ownership: []policy.OwnershipKey{policy.OwnCreatedBy},
					},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{
						Roles:     []policy.Role{RoleHod, RoleUser},
						Scope:     policy.ScopeOwnOrg,
						Ownership: []policy.OwnershipKey{policy.OwnCreatedBy},
					},
				},
			},
			ResourceVendor: {
				OpCreate: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
				OpRead: {
					{Roles: []policy.Role{RoleAdmin, RoleHod, RoleUser}, Scope: policy.ScopeOwnOrg},
				},
				OpUpdate: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
			},
			ResourceMaterial: {
				OpCreate: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod, RoleUser}, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpRead: {
					{Roles: []policy.Role{RoleAdmin, RoleHod, RoleUser}, Scope: policy.ScopeOwnOrg},
				},
				OpUpdate: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
					{Roles: []policy.Role{RoleHod}, Scope: policy.ScopeOwnOrgOwnDept},
				},
				OpDelete: {
					{Roles: []policy.Role{RoleAdmin}, Scope: policy.ScopeOwnOrg},
				},
			},
			ResourceNotification: {
				OpList: {
					{Roles: allRoles},
				},
				OpRead: {
					{Roles: allRoles, Ownership: []policy.OwnershipKey{policy.OwnRecipient}},
				},
				OpUpdate: {
					{Roles: allRoles, Ownership: []policy.OwnershipKey{policy.OwnRecipient}},
				},
				OpDelete: {
					{Roles: allRoles, Ownership: []policy.OwnershipKey{policy.OwnRecipient}},
				},
			},
		},
	}
}
