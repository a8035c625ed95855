package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"org-service/internal/middleware"
	"org-service/internal/orgerr"
	"org-service/internal/provisioning"
	"org-service/pkg/logger"
	"org-service/prometheus"
)

// OrgHandler serves the organization lifecycle endpoints.
type OrgHandler struct {
	orch *provisioning.Orchestrator
}

// NewOrgHandler creates an organization handler over the orchestrator.
func NewOrgHandler(orch *provisioning.Orchestrator) *OrgHandler {
	return &OrgHandler{orch: orch}
}

// CreateOrg handles POST /org/create
func (h *OrgHandler) CreateOrg(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("create")
	defer prometheus.TrackProvisioning("create")(time.Now())

	// Parse request
	var req struct {
		OrganizationName string `json:"organization_name"`
		Email            string `json:"email"`
		Password         string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse create request", zap.Error(err))
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.OrganizationName)) < 3 {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization_name must be at least 3 characters"})
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address"})
	}
	if utf8.RuneCountInString(req.Password) < 6 {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}

	ctx := logger.WithContext(c.Request().Context(), log)
	org, err := h.orch.Create(ctx, req.OrganizationName, req.Email, req.Password)
	if err != nil {
		log.Error("Failed to create organization",
			zap.String("organization_name", req.OrganizationName), zap.Error(err))
		return orgErrorResponse(c, err)
	}

	prometheus.ActiveOrganizationsGauge.Inc()
	log.Info("Organization created",
		zap.String("organization_name", org.Name),
		zap.String("partition_name", org.PartitionName),
		zap.Uint("admin_id", org.AdminID))

	return c.JSON(http.StatusOK, echo.Map{
		"status":       "success",
		"organization": org,
	})
}

// GetOrg handles GET /org/get
func (h *OrgHandler) GetOrg(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("get")

	name := c.QueryParam("organization_name")
	if name == "" {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization_name is required"})
	}

	ctx := logger.WithContext(c.Request().Context(), log)
	org, err := h.orch.Get(ctx, name)
	if err != nil {
		return orgErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":       "success",
		"organization": org,
	})
}

// UpdateOrg handles PUT /org/update
func (h *OrgHandler) UpdateOrg(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("update")
	defer prometheus.TrackProvisioning("update")(time.Now())

	// Parse request
	var req struct {
		OrganizationName    string `json:"organization_name"`
		Email               string `json:"email,omitempty"`
		Password            string `json:"password,omitempty"`
		NewOrganizationName string `json:"new_organization_name,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse update request", zap.Error(err))
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if utf8.RuneCountInString(strings.TrimSpace(req.OrganizationName)) < 3 {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization_name must be at least 3 characters"})
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			prometheus.RecordOrgError("invalid_request")
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email address"})
		}
	}
	if req.Password != "" && utf8.RuneCountInString(req.Password) < 6 {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must be at least 6 characters"})
	}
	if req.NewOrganizationName != "" && utf8.RuneCountInString(strings.TrimSpace(req.NewOrganizationName)) < 3 {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new_organization_name must be at least 3 characters"})
	}

	ctx := logger.WithContext(c.Request().Context(), log)
	err := h.orch.Update(ctx, provisioning.UpdateParams{
		Name:        req.OrganizationName,
		NewEmail:    req.Email,
		NewPassword: req.Password,
		NewName:     req.NewOrganizationName,
	})
	if err != nil {
		log.Error("Failed to update organization",
			zap.String("organization_name", req.OrganizationName), zap.Error(err))
		return orgErrorResponse(c, err)
	}

	log.Info("Organization updated", zap.String("organization_name", req.OrganizationName))
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Organization updated",
	})
}

// DeleteOrg handles DELETE /org/delete
func (h *OrgHandler) DeleteOrg(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecordOrgOperation("delete")
	defer prometheus.TrackProvisioning("delete")(time.Now())

	name := c.QueryParam("organization_name")
	if name == "" {
		prometheus.RecordOrgError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "organization_name is required"})
	}

	// The ownership check only applies when the token carries an org claim
	var callerOrgID *uint
	if claims, ok := middleware.AdminFromEcho(c); ok {
		callerOrgID = claims.OrgID
	}

	ctx := logger.WithContext(c.Request().Context(), log)
	if err := h.orch.Delete(ctx, name, callerOrgID); err != nil {
		log.Error("Failed to delete organization",
			zap.String("organization_name", name), zap.Error(err))
		return orgErrorResponse(c, err)
	}

	prometheus.ActiveOrganizationsGauge.Dec()
	log.Info("Organization deleted", zap.String("organization_name", name))
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Organization deleted",
	})
}

// orgErrorResponse maps taxonomy errors to HTTP status codes and records the
// error metric.
func orgErrorResponse(c echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, orgerr.ErrConflict):
		prometheus.RecordOrgError("conflict")
		status = http.StatusBadRequest
	case errors.Is(err, orgerr.ErrNotFound):
		prometheus.RecordOrgError("not_found")
		status = http.StatusNotFound
	case errors.Is(err, orgerr.ErrUnauthenticated):
		prometheus.RecordOrgError("unauthenticated")
		status = http.StatusUnauthorized
	case errors.Is(err, orgerr.ErrForbidden):
		prometheus.RecordOrgError("forbidden")
		status = http.StatusForbidden
	default:
		prometheus.RecordOrgError("internal")
		status = http.StatusInternalServerError
	}
	return c.JSON(status, echo.Map{"error": orgerr.Reason(err)})
}
