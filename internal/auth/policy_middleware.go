package auth

import (
	"net/http"
	"task-service/internal/audit"
	"task-service/internal/policy"
	"task-service/internal/policy/presets"
	"task-service/internal/repository"
	apperrors "task-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PolicyRepos bundles the read-side repositories the enforcement middleware
// uses to load targets before evaluation.
type PolicyRepos struct {
	Tasks         repository.TaskRepository
	Users         repository.UserRepository
	Organizations repository.OrganizationRepository
	Departments   repository.DepartmentRepository
	Attachments   repository.AttachmentRepository
	Comments      repository.CommentRepository
	Vendors       repository.VendorRepository
	Materials     repository.MaterialRepository
	Notifications repository.NotificationRepository
}

// PolicyMiddleware guards routes with the rule matrix. Each guarded route
// names its resource and operation; the middleware loads the target entity,
// evaluates the decision, and either records a denial or lets the handler
// run with the decision attached to the context.
type PolicyMiddleware struct {
	checker *policy.Checker
	audit   *audit.Logger
	repos   PolicyRepos
}

func NewPolicyMiddleware(auditLogger *audit.Logger, repos PolicyRepos) *PolicyMiddleware {
	return &PolicyMiddleware{
		checker: policy.MustNew(presets.TaskManagement()),
		audit:   auditLogger,
		repos:   repos,
	}
}

type targetResolver func(c echo.Context) (*policy.Target, string, error)

type requireConfig struct {
	resolve      targetResolver
	resourceType string
	aliases      map[string]string
}

type RequireOption func(*requireConfig)

// WithTarget sets the resolver that loads the target entity for evaluation.
func WithTarget(resolve targetResolver) RequireOption {
	return func(cfg *requireConfig) {
		cfg.resolve = resolve
	}
}

// WithResourceType fixes the resource subtype for routes where no target is
// loaded, e.g. creating a task of a declared type.
func WithResourceType(resourceType string) RequireOption {
	return func(cfg *requireConfig) {
		cfg.resourceType = resourceType
	}
}

// WithParamAlias republishes a path parameter under a second name in the
// evaluation params.
func WithParamAlias(from, to string) RequireOption {
	return func(cfg *requireConfig) {
		if cfg.aliases == nil {
			cfg.aliases = make(map[string]string)
		}
		cfg.aliases[from] = to
	}
}

// Require builds the route guard for one (resource, operation) pair.
//
// Resolver failures propagate unchanged, so a missing target surfaces as 404
// rather than 403. A denied decision is audited before the 403 response.
func (m *PolicyMiddleware) Require(resource policy.Resource, operation policy.Operation, opts ...RequireOption) echo.MiddlewareFunc {
	cfg := requireConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, err := GetPrincipal(c)
			if err != nil {
				return respondError(c, http.StatusUnauthorized, msgUserNotAuthenticated)
			}

			var target *policy.Target
			resourceType := cfg.resourceType

			if cfg.resolve != nil {
				var resolvedType string
				target, resolvedType, err = cfg.resolve(c)
				if err != nil {
					return err
				}
				if resolvedType != "" {
					resourceType = resolvedType
				}
			}

			params := requestParams(c, cfg.aliases)

			decision := m.checker.Evaluate(resource, operation, principal, target, resourceType, params)
			c.Set(ContextKeyDecision, decision)

			if !decision.Allowed {
				m.auditDenied(c, decision, target)
				return respondError(c, http.StatusForbidden, msgForbidden)
			}

			return next(c)
		}
	}
}

func (m *PolicyMiddleware) auditDenied(c echo.Context, decision policy.Decision, target *policy.Target) {
	if m.audit == nil {
		return
	}

	var resourceID *uuid.UUID
	if target != nil && target.ID != "" {
		if id, err := uuid.Parse(target.ID); err == nil {
			resourceID = &id
		}
	}

	metadata := map[string]any{
		"rules_evaluated": decision.RulesEvaluated,
	}
	if decision.ResourceType != "" {
		metadata["resource_type"] = decision.ResourceType
	}

	m.audit.LogFromContext(c, string(decision.Resource), resourceID, string(decision.Operation), audit.StatusDenied, metadata)
}

func requestParams(c echo.Context, aliases map[string]string) policy.Params {
	names := c.ParamNames()
	if len(names) == 0 {
		return nil
	}

	params := make(policy.Params, len(names)+len(aliases))
	for i, name := range names {
		params[name] = c.ParamValues()[i]
	}
	for from, to := range aliases {
		if v, ok := params[from]; ok {
			params[to] = v
		}
	}
	return params
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(paramID))
	if err != nil {
		return uuid.Nil, apperrors.BadRequest(msgInvalidResourceID)
	}
	return id, nil
}

// ====================================================================
// Per-resource guards
// ====================================================================

func (m *PolicyMiddleware) RequireTask(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceTask, operation, WithTarget(m.resolveTask))
}

func (m *PolicyMiddleware) RequireUser(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceUser, operation,
		WithTarget(m.resolveUser),
		WithParamAlias(paramID, policy.ParamUserID),
	)
}

func (m *PolicyMiddleware) RequireOrganization(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceOrganization, operation, WithTarget(m.resolveOrganization))
}

func (m *PolicyMiddleware) RequireDepartment(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceDepartment, operation, WithTarget(m.resolveDepartment))
}

func (m *PolicyMiddleware) RequireAttachment(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceAttachment, operation, WithTarget(m.resolveAttachment))
}

func (m *PolicyMiddleware) RequireComment(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceComment, operation, WithTarget(m.resolveComment))
}

// RequireCommentOnTask guards comment routes addressed by task id, e.g.
// creating or listing comments under /tasks/:id.
func (m *PolicyMiddleware) RequireCommentOnTask(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceComment, operation, WithTarget(m.resolveTask))
}

// RequireAttachmentOnTask guards attachment routes addressed by task id.
func (m *PolicyMiddleware) RequireAttachmentOnTask(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceAttachment, operation, WithTarget(m.resolveTask))
}

func (m *PolicyMiddleware) RequireVendor(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceVendor, operation, WithTarget(m.resolveVendor))
}

func (m *PolicyMiddleware) RequireMaterial(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceMaterial, operation, WithTarget(m.resolveMaterial))
}

func (m *PolicyMiddleware) RequireNotification(operation policy.Operation) echo.MiddlewareFunc {
	return m.Require(presets.ResourceNotification, operation, WithTarget(m.resolveNotification))
}

// ====================================================================
// Target resolvers
// ====================================================================

func (m *PolicyMiddleware) resolveTask(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	t, err := m.repos.Tasks.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           t.ID.String(),
		Organization: t.OrganizationID.String(),
		Department:   policy.ID(t.DepartmentID),
		Manager:      policy.ID(t.ManagerID),
		CreatedBy:    t.CreatedBy.String(),
		Assignees:    policy.IDs(t.Assignees),
		Watchers:     policy.IDs(t.Watchers),
		Mentions:     policy.IDs(t.Mentions),
		Type:         t.Type,
	}, t.Type, nil
}

func (m *PolicyMiddleware) resolveUser(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	u, err := m.repos.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           u.ID.String(),
		Organization: u.OrganizationID.String(),
		Department:   policy.ID(u.DepartmentID),
	}, "", nil
}

func (m *PolicyMiddleware) resolveOrganization(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	org, err := m.repos.Organizations.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           org.ID.String(),
		Organization: org.ID.String(),
	}, "", nil
}

func (m *PolicyMiddleware) resolveDepartment(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	d, err := m.repos.Departments.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           d.ID.String(),
		Organization: d.OrganizationID.String(),
		Department:   d.ID.String(),
		Manager:      policy.ID(d.ManagerID),
	}, "", nil
}

func (m *PolicyMiddleware) resolveAttachment(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	a, err := m.repos.Attachments.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           a.ID.String(),
		Organization: a.OrganizationID.String(),
		Department:   policy.ID(a.DepartmentID),
		UploadedBy:   a.UploadedBy.String(),
	}, "", nil
}

func (m *PolicyMiddleware) resolveComment(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	cm, err := m.repos.Comments.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           cm.ID.String(),
		Organization: cm.OrganizationID.String(),
		CreatedBy:    cm.CreatedBy.String(),
		Mentions:     policy.IDs(cm.Mentions),
	}, "", nil
}

func (m *PolicyMiddleware) resolveVendor(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	v, err := m.repos.Vendors.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           v.ID.String(),
		Organization: v.OrganizationID.String(),
	}, "", nil
}

func (m *PolicyMiddleware) resolveMaterial(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	mat, err := m.repos.Materials.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           mat.ID.String(),
		Organization: mat.OrganizationID.String(),
		Department:   policy.ID(mat.DepartmentID),
	}, "", nil
}

func (m *PolicyMiddleware) resolveNotification(c echo.Context) (*policy.Target, string, error) {
	id, err := pathID(c)
	if err != nil {
		return nil, "", err
	}

	n, err := m.repos.Notifications.GetByID(c.Request().Context(), id)
	if err != nil {
		return nil, "", err
	}

	return &policy.Target{
		ID:           n.ID.String(),
		Organization: n.OrganizationID.String(),
		Recipient:    n.RecipientID.String(),
	}, "", nil
}
