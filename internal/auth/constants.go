package auth

const (
	ContextKeyUserID         = "user_id"
	ContextKeyOrganizationID = "organization_id"
	ContextKeyPrincipal      = "principal"
	ContextKeyDecision       = "policy_decision"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"

	paramID = "id"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization    = "missing authorization token"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgUserNotAuthenticated    = "user not authenticated"
	msgForbidden               = "forbidden"
	msgInvalidResourceID       = "invalid resource id"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgInvalidOrgIDCtx         = "invalid organization ID in context"
	msgInvalidPrincipalCtx     = "invalid principal in context"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)
