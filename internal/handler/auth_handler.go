package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"org-service/internal/provisioning"
	"org-service/pkg/jwtutil"
	"org-service/pkg/logger"
	"org-service/prometheus"
)

// AuthHandler serves the administrator login endpoint.
type AuthHandler struct {
	orch    *provisioning.Orchestrator
	jwtUtil *jwtutil.JWTUtil
}

// NewAuthHandler creates an auth handler over the orchestrator and JWT utility.
func NewAuthHandler(orch *provisioning.Orchestrator, jwtUtil *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{orch: orch, jwtUtil: jwtUtil}
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.LoginCounter.Inc()

	// Parse request
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email and password are required"})
	}

	ctx := logger.WithContext(c.Request().Context(), log)
	admin, org, err := h.orch.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		// Unknown email and wrong password share one message on purpose
		log.Warn("Login failed", zap.String("email", req.Email))
		prometheus.RecordAuthError("login_failure")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	var orgID *uint
	if org != nil {
		orgID = &org.ID
	}
	token, err := h.jwtUtil.GenerateToken(admin.Email, admin.ID, orgID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	if org != nil {
		log.Info("Admin logged in",
			zap.String("email", admin.Email),
			zap.Uint("org_id", org.ID))
	} else {
		log.Info("Admin logged in without linked organization",
			zap.String("email", admin.Email))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status": "success",
		"token":  token,
	})
}
