package policy

import (
	"fmt"
	"strings"
)

// Matrix is the declarative rule table: resource, then operation, yielding an
// ordered list of rules. A (resource, operation) pair absent from the matrix
// denies by default.
type Matrix map[Resource]map[Operation][]Rule

// Config holds the full policy configuration loaded at process start.
type Config struct {
	Roles  []Role
	Matrix Matrix
}

// Validate checks internal consistency of the Config. Unknown scope labels
// and unknown ownership keys are configuration errors caught here, at load
// time, rather than silently failing per request.
func (c *Config) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, errConfigRolesEmpty)
	}
	if len(c.Matrix) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, errConfigMatrixEmpty)
	}

	roleSet := make(map[Role]bool, len(c.Roles))
	for _, r := range c.Roles {
		if r == "" {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, errConfigRoleNameEmpty)
		}
		if roleSet[r] {
			return fmt.Errorf("%w: "+errConfigDuplicateRoleFmt, ErrInvalidConfig, r)
		}
		roleSet[r] = true
	}

	for resource, operations := range c.Matrix {
		if resource == "" {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, errConfigResourceEmptyFmt)
		}
		for operation, rules := range operations {
			if operation == "" {
				return fmt.Errorf("%w: "+errConfigOperationEmptyFmt, ErrInvalidConfig, resource)
			}
			if len(rules) == 0 {
				return fmt.Errorf("%w: "+errConfigNoRulesFmt, ErrInvalidConfig, resource, operation)
			}
			for i, rule := range rules {
				if err := validateRule(resource, operation, i, rule, roleSet); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func validateRule(resource Resource, operation Operation, idx int, rule Rule, roleSet map[Role]bool) error {
	if len(rule.Roles) == 0 {
		return fmt.Errorf("%w: "+errConfigRuleNoRolesFmt, ErrInvalidConfig, resource, operation, idx)
	}
	for _, role := range rule.Roles {
		if !roleSet[role] {
			return fmt.Errorf("%w: "+errConfigRuleUnknownRoleFmt, ErrInvalidConfig, resource, operation, idx, role)
		}
	}
	if !validScope(rule.Scope) {
		return fmt.Errorf("%w: "+errConfigRuleUnknownScopeFmt, ErrInvalidConfig, resource, operation, idx, rule.Scope)
	}
	for _, key := range rule.Ownership {
		if _, ok := ownershipMatchers[key]; !ok {
			return fmt.Errorf("%w: "+errConfigRuleUnknownOwnershipFmt, ErrInvalidConfig, resource, operation, idx, key)
		}
	}
	for _, req := range rule.Requires {
		if strings.TrimPrefix(req, "!") == "" {
			return fmt.Errorf("%w: "+errConfigRuleEmptyRequiresFmt, ErrInvalidConfig, resource, operation, idx)
		}
	}
	return nil
}

func validScope(s Scope) bool {
	switch s {
	case "", ScopeAny, ScopeCrossOrg, ScopeOwnOrg, ScopeOwnOrgCrossDept, ScopeOwnOrgOwnDept:
		return true
	default:
		return false
	}
}
