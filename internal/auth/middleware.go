package auth

import (
	"net/http"
	"strings"
	"task-service/internal/policy"
	"task-service/internal/repository"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtService *JWTService
	userRepo   repository.UserRepository
	orgRepo    repository.OrganizationRepository
}

func NewMiddleware(jwtService *JWTService, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *Middleware {
	return &Middleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
	}
}

// RequireJWT verifies the bearer token and attaches the authenticated
// principal to the request context. The principal is rebuilt from the user
// row on every request so role or department changes take effect immediately
// rather than at token expiry.
func (m *Middleware) RequireJWT() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractBearerToken(c)
			if token == "" {
				return respondError(c, http.StatusUnauthorized, msgMissingAuthorization)
			}

			claims, err := m.jwtService.Verify(token)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			ctx := c.Request().Context()

			u, err := m.userRepo.GetByID(ctx, claims.UserID)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			org, err := m.orgRepo.GetByID(ctx, u.OrganizationID)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgInvalidOrExpiredToken)
			}

			principal := &policy.Principal{
				ID:                u.ID.String(),
				Role:              policy.Role(u.Role),
				OrganizationID:    u.OrganizationID.String(),
				DepartmentID:      policy.ID(u.DepartmentID),
				IsPlatformOrgUser: org.IsPlatform,
				IsHod:             u.IsHod,
			}

			c.Set(ContextKeyUserID, u.ID)
			c.Set(ContextKeyOrganizationID, u.OrganizationID)
			c.Set(ContextKeyPrincipal, principal)

			return next(c)
		}
	}
}

func extractBearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(headerAuthorization)
	if authHeader == "" {
		return ""
	}

	parts := strings.Fields(authHeader)
	if len(parts) != authHeaderParts || strings.ToLower(parts[0]) != bearerScheme {
		return ""
	}

	return parts[1]
}

func GetUserID(c echo.Context) (uuid.UUID, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return uuid.Nil, apperrors.Unauthenticated(msgUserNotAuthenticated)
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

func GetOrganizationID(c echo.Context) (uuid.UUID, error) {
	orgID := c.Get(ContextKeyOrganizationID)
	if orgID == nil {
		return uuid.Nil, apperrors.Unauthenticated(msgUserNotAuthenticated)
	}

	id, ok := orgID.(uuid.UUID)
	if !ok {
		return uuid.Nil, apperrors.InternalServer(msgInvalidOrgIDCtx, nil)
	}

	return id, nil
}

func GetPrincipal(c echo.Context) (*policy.Principal, error) {
	raw := c.Get(ContextKeyPrincipal)
	if raw == nil {
		return nil, apperrors.Unauthenticated(msgUserNotAuthenticated)
	}

	principal, ok := raw.(*policy.Principal)
	if !ok {
		return nil, apperrors.InternalServer(msgInvalidPrincipalCtx, nil)
	}

	return principal, nil
}

// GetDecision returns the policy decision recorded by the enforcement
// middleware, if any.
func GetDecision(c echo.Context) (policy.Decision, bool) {
	decision, ok := c.Get(ContextKeyDecision).(policy.Decision)
	return decision, ok
}

func respondError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyError: message})
}
