package policy

import "errors"

var (
	ErrDenied          = errors.New("authorization denied")
	ErrUnauthenticated = errors.New("no principal on request")
	ErrInvalidConfig   = errors.New("invalid policy config")
)

const (
	errConfigRolesEmpty              = "policy config: roles must not be empty"
	errConfigRoleNameEmpty           = "policy config: role name must not be empty"
	errConfigDuplicateRoleFmt        = "policy config: duplicate role: %s"
	errConfigMatrixEmpty             = "policy config: rule matrix must not be empty"
	errConfigResourceEmptyFmt        = "policy config: empty resource name"
	errConfigOperationEmptyFmt       = "policy config: resource %s has an empty operation name"
	errConfigNoRulesFmt              = "policy config: %s.%s has no rules"
	errConfigRuleNoRolesFmt          = "policy config: %s.%s rule %d has no roles"
	errConfigRuleUnknownRoleFmt      = "policy config: %s.%s rule %d references unknown role: %s"
	errConfigRuleUnknownScopeFmt     = "policy config: %s.%s rule %d has unknown scope: %s"
	errConfigRuleUnknownOwnershipFmt = "policy config: %s.%s rule %d has unknown ownership key: %s"
	errConfigRuleEmptyRequiresFmt    = "policy config: %s.%s rule %d has an empty requires entry"
	errMustNewPanicFmt               = "policy.MustNew: %v"
)
