package policy

type ownershipFunc func(principal *Principal, target *Target, params Params) bool

// ownershipMatchers is the closed registry of ownership keys. Keys outside
// this table are rejected by Config.Validate, so a misspelled key fails the
// process at startup instead of silently denying per request.
var ownershipMatchers = map[OwnershipKey]ownershipFunc{
	OwnSelf:       matchSelf,
	OwnManager:    fieldMatcher(func(t *Target) string { return t.Manager }),
	OwnCreatedBy:  fieldMatcher(func(t *Target) string { return t.CreatedBy }),
	OwnUploadedBy: fieldMatcher(func(t *Target) string { return t.UploadedBy }),
	OwnRecipient:  fieldMatcher(func(t *Target) string { return t.Recipient }),
	OwnAssignees:  listMatcher(func(t *Target) []string { return t.Assignees }),
	OwnWatchers:   listMatcher(func(t *Target) []string { return t.Watchers }),
	OwnMentioned:  listMatcher(func(t *Target) []string { return t.Mentions }),
	OwnMentions:   listMatcher(func(t *Target) []string { return t.Mentions }),
}

// matchesOwnership reports whether the principal owns the target under any of
// the rule's ownership keys. An empty key list means no ownership constraint.
func matchesOwnership(rule Rule, principal *Principal, target *Target, params Params) bool {
	if len(rule.Ownership) == 0 {
		return true
	}
	for _, key := range rule.Ownership {
		match, ok := ownershipMatchers[key]
		if !ok {
			continue
		}
		if match(principal, target, params) {
			return true
		}
	}
	return false
}

// matchSelf compares the route's userId parameter against the principal when
// the parameter is present; this lets "change my own password" routes decide
// before the target object has been loaded. A present parameter always wins,
// even when empty. Only an absent parameter falls back to the target's own id.
func matchSelf(principal *Principal, target *Target, params Params) bool {
	if principal.ID == "" {
		return false
	}
	if userID, ok := params[ParamUserID]; ok {
		return userID == principal.ID
	}
	return target != nil && target.ID == principal.ID
}

func fieldMatcher(field func(*Target) string) ownershipFunc {
	return func(principal *Principal, target *Target, _ Params) bool {
		if principal.ID == "" || target == nil {
			return false
		}
		return field(target) == principal.ID
	}
}

func listMatcher(field func(*Target) []string) ownershipFunc {
	return func(principal *Principal, target *Target, _ Params) bool {
		if principal.ID == "" || target == nil {
			return false
		}
		for _, id := range field(target) {
			if id == principal.ID {
				return true
			}
		}
		return false
	}
}
