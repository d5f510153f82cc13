package policy

import (
	"fmt"

	"github.com/google/uuid"
)

// Role represents a user's role in the system
type Role string

// Resource represents a type of resource in the system
type Resource string

// Operation represents an operation on a resource
type Operation string

// Scope represents the organizational relationship a rule requires between
// principal and target
type Scope string

const (
	// ScopeAny matches every principal/target pair
	ScopeAny Scope = "any"
	// ScopeCrossOrg requires a platform-org principal acting outside its home organization
	ScopeCrossOrg Scope = "crossOrg"
	// ScopeOwnOrg requires the target to belong to the principal's organization
	ScopeOwnOrg Scope = "ownOrg"
	// ScopeOwnOrgCrossDept is an alias of ScopeOwnOrg; the label documents that
	// any department within the organization is acceptable
	ScopeOwnOrgCrossDept Scope = "ownOrg.crossDept"
	// ScopeOwnOrgOwnDept additionally requires the target's department to match
	ScopeOwnOrgOwnDept Scope = "ownOrg.ownDept"
)

// OwnershipKey names a relation test between principal and target
type OwnershipKey string

const (
	OwnSelf       OwnershipKey = "self"
	OwnManager    OwnershipKey = "manager"
	OwnAssignees  OwnershipKey = "assignees"
	OwnWatchers   OwnershipKey = "watchers"
	OwnMentioned  OwnershipKey = "mentioned"
	OwnMentions   OwnershipKey = "mentions"
	OwnCreatedBy  OwnershipKey = "createdBy"
	OwnUploadedBy OwnershipKey = "uploadedBy"
	OwnRecipient  OwnershipKey = "recipient"
)

// Built-in capability flag names resolvable via Principal.Flag
const (
	FlagIsHod             = "isHod"
	FlagIsPlatformOrgUser = "isPlatformOrgUser"
)

// ParamUserID is the request parameter consulted by the self ownership key
const ParamUserID = "userId"

// Principal is the authenticated actor attached to a request. It is built
// per request by the authentication layer and is read-only here.
type Principal struct {
	ID                string
	Role              Role
	OrganizationID    string
	DepartmentID      string
	IsPlatformOrgUser bool
	IsHod             bool
	Flags             map[string]bool
}

// Flag resolves a boolean capability flag by name. Built-in fields take
// precedence over the open flag set.
func (p *Principal) Flag(name string) bool {
	switch name {
	case FlagIsHod:
		return p.IsHod
	case FlagIsPlatformOrgUser:
		return p.IsPlatformOrgUser
	default:
		return p.Flags[name]
	}
}

// Target is the concrete entity an operation would act upon, reduced to the
// fields rules can reference. All ids are canonical strings; absent fields
// stay empty. A nil Target is valid for create-type operations.
type Target struct {
	ID           string
	Organization string
	Department   string
	Manager      string
	CreatedBy    string
	UploadedBy   string
	Recipient    string
	Assignees    []string
	Watchers     []string
	Mentions     []string
	Type         string
}

// Rule is one row of the rule matrix: an eligibility filter (roles, resource
// subtype, capability flags) plus a scope and ownership clause.
type Rule struct {
	Roles        []Role
	ResourceType string
	Requires     []string
	Scope        Scope
	Ownership    []OwnershipKey
}

// Params carries ambient request parameters, e.g. the path parameter
// identifying the user a route is about.
type Params map[string]string

// Decision is the evaluator's output, attached to the request context for
// downstream auditing. Never persisted.
type Decision struct {
	Allowed        bool
	Resource       Resource
	Operation      Operation
	ResourceType   string
	RulesEvaluated int
}

// ID normalizes an identifier to its canonical string form. Ids arrive from
// the persistence layer as uuid.UUID values, pointers, or plain strings.
func ID(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case uuid.UUID:
		return id.String()
	case *uuid.UUID:
		if id == nil {
			return ""
		}
		return id.String()
	case fmt.Stringer:
		return id.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}

// IDs normalizes a slice of uuid identifiers
func IDs(vs []uuid.UUID) []string {
	if len(vs) == 0 {
		return nil
	}
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}
