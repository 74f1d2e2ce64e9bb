package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andyrosty/diet-fitness/middleware"
	"github.com/andyrosty/diet-fitness/models"
	"github.com/andyrosty/diet-fitness/services"
	"github.com/andyrosty/diet-fitness/utils"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	authService services.AuthService
	planService services.PlanService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(authService services.AuthService, planService services.PlanService) *APIHandler {
	return &APIHandler{
		authService: authService,
		planService: planService,
	}
}

// SignupRequest is the JSON body for POST /auth/signup.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignupHandler registers a new account.
func (h *APIHandler) SignupHandler(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) || errors.Is(err, services.ErrEmailTaken) {
			utils.SendJSONError(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to create account.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// LoginHandler authenticates form-encoded credentials and returns a
// bearer token.
func (h *APIHandler) LoginHandler(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "username and password are required", nil)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			utils.SendJSONError(c, http.StatusUnauthorized, "Incorrect username or password", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Login failed.", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// CreatePlanHandler runs the full generation pipeline for the
// authenticated user and returns the composite plan.
func (h *APIHandler) CreatePlanHandler(c *gin.Context) {
	var input models.UserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	userID := c.GetUint(middleware.ContextUserIDKey)
	result, err := h.planService.CreatePlan(c.Request.Context(), userID, input)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error processing request.", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPlansHandler returns the caller's stored plans with day rows.
func (h *APIHandler) ListPlansHandler(c *gin.Context) {
	userID := c.GetUint(middleware.ContextUserIDKey)
	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to load plans.", err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// UpdatePlanHandler applies a partial update to one of the caller's
// plans.
func (h *APIHandler) UpdatePlanHandler(c *gin.Context) {
	planID, ok := parsePlanID(c)
	if !ok {
		return
	}

	var update models.PlanUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	userID := c.GetUint(middleware.ContextUserIDKey)
	plan, err := h.planService.UpdatePlan(c.Request.Context(), userID, planID, update)
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Plan not found.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to update plan.", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlanHandler deletes one of the caller's plans and its day rows.
func (h *APIHandler) DeletePlanHandler(c *gin.Context) {
	planID, ok := parsePlanID(c)
	if !ok {
		return
	}

	userID := c.GetUint(middleware.ContextUserIDKey)
	if err := h.planService.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Plan not found.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to delete plan.", err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthHandler reports process liveness.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parsePlanID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid plan id.", err)
		return 0, false
	}
	return uint(id), true
}
