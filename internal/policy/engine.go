package policy

import (
	"fmt"
	"strings"
)

// Checker evaluates access decisions against a validated Config. It is
// immutable after New and safe for concurrent use from any number of
// request-handling goroutines.
type Checker struct {
	config     Config
	validRoles map[Role]bool
	matrix     map[Resource]map[Operation][]compiledRule
}

type compiledRule struct {
	Rule
	roleSet map[Role]bool
}

// New creates a Checker from a validated Config
func New(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Checker{config: cfg}
	c.buildLookups()
	return c, nil
}

// MustNew creates a Checker and panics on invalid config. A malformed rule
// matrix is a startup-time configuration error; the process must not serve
// traffic with it.
func MustNew(cfg Config) *Checker {
	c, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf(errMustNewPanicFmt, err))
	}
	return c
}

func (c *Checker) buildLookups() {
	cfg := c.config

	c.validRoles = make(map[Role]bool, len(cfg.Roles))
	for _, r := range cfg.Roles {
		c.validRoles[r] = true
	}

	c.matrix = make(map[Resource]map[Operation][]compiledRule, len(cfg.Matrix))
	for resource, operations := range cfg.Matrix {
		c.matrix[resource] = make(map[Operation][]compiledRule, len(operations))
		for operation, rules := range operations {
			compiled := make([]compiledRule, len(rules))
			for i, rule := range rules {
				roleSet := make(map[Role]bool, len(rule.Roles))
				for _, role := range rule.Roles {
					roleSet[role] = true
				}
				compiled[i] = compiledRule{Rule: rule, roleSet: roleSet}
			}
			c.matrix[resource][operation] = compiled
		}
	}
}

// Evaluate decides whether the principal may perform the operation on the
// resource, given the loaded target and its resolved subtype. A missing
// (resource, operation) entry denies: absence of configuration is a
// fail-closed signal, not an open permission.
//
// Eligibility (role, declared subtype, capability flags) narrows the rule
// list first; scope and ownership, which need the loaded target, run only on
// the candidates. A single fully-passing candidate allows.
func (c *Checker) Evaluate(resource Resource, operation Operation, principal *Principal, target *Target, resourceType string, params Params) Decision {
	decision := Decision{
		Resource:     resource,
		Operation:    operation,
		ResourceType: resourceType,
	}

	if principal == nil {
		return decision
	}

	rules := c.matrix[resource][operation]
	if len(rules) == 0 {
		return decision
	}

	candidates := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		if c.eligible(rule, principal, resourceType) {
			candidates = append(candidates, rule)
		}
	}
	decision.RulesEvaluated = len(candidates)

	for _, rule := range candidates {
		if matchesScope(rule.Rule, principal, target) && matchesOwnership(rule.Rule, principal, target, params) {
			decision.Allowed = true
			break
		}
	}

	return decision
}

// IsAllowed returns a boolean version of Evaluate
func (c *Checker) IsAllowed(resource Resource, operation Operation, principal *Principal, target *Target, resourceType string, params Params) bool {
	return c.Evaluate(resource, operation, principal, target, resourceType, params).Allowed
}

func (c *Checker) eligible(rule compiledRule, principal *Principal, resourceType string) bool {
	if !rule.roleSet[principal.Role] {
		return false
	}
	if rule.ResourceType != "" && rule.ResourceType != resourceType {
		return false
	}
	for _, req := range rule.Requires {
		if flag, negated := strings.CutPrefix(req, "!"); negated {
			if principal.Flag(flag) {
				return false
			}
		} else if !principal.Flag(req) {
			return false
		}
	}
	return true
}

// ValidateRole validates a role string against configured roles
func (c *Checker) ValidateRole(role string) (Role, error) {
	r := Role(role)
	if c.validRoles[r] {
		return r, nil
	}
	return "", fmt.Errorf("%w: unknown role: %s", ErrInvalidConfig, role)
}
