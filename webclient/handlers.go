package webclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/middlewares"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
)

const (
	sessionName     = "chemsecure_session"
	sessionTokenKey = "token"

	ctxToken = "session_token"
	ctxUser  = "session_user"
)

// API is the part of the backend the web layer talks to.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, in services.RegisterInput) error
	UserTanks(ctx context.Context, token string) ([]models.TankView, error)
	CreateTank(ctx context.Context, token string, in services.TankInput) (models.TankView, error)
	AddWarning(ctx context.Context, token string, in services.WarningInput) (models.Warning, error)
	Warnings(ctx context.Context, token string) ([]models.Warning, error)
	ManagedWarnings(ctx context.Context, token string) ([]models.Warning, error)
	ManageWarning(ctx context.Context, token string, id uint) (models.Warning, error)
	UnmanageWarning(ctx context.Context, token string, id uint) (models.Warning, error)
}

type Handler struct {
	API API
	now func() time.Time
}

func NewHandler(api API) *Handler {
	return &Handler{API: api, now: time.Now}
}

// NewRouter wires the session-backed routes of the web layer.
func NewRouter(api API, sessionSecret string) *gin.Engine {
	h := NewHandler(api)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.LoggerMiddleware())

	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((8 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	r.POST("/login", h.Login)
	r.POST("/register", h.Register)
	r.POST("/logout", h.Logout)

	authorized := r.Group("/")
	authorized.Use(h.SessionRequired())
	{
		authorized.GET("/me", h.Me)

		authorized.GET("/tanks", h.Tanks)
		authorized.POST("/tanks", h.CreateTank)
		authorized.POST("/tanks/:id/warning", h.RaiseWarning)

		authorized.GET("/warnings", h.Warnings)
		authorized.POST("/warnings/:id/manage", h.ManageWarning)
		authorized.POST("/warnings/:id/unmanage", h.UnmanageWarning)
	}

	return r
}

// SessionRequired loads the API token from the cookie session and decodes its claims.
func (h *Handler) SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		token, _ := session.Get(sessionTokenKey).(string)

		user, err := DecodeToken(token, h.now())
		if err != nil {
			if token != "" {
				session.Clear()
				_ = session.Save()
			}
			utils.RespondError(c, http.StatusUnauthorized, ErrNoSession)
			c.Abort()
			return
		}

		c.Set(ctxToken, token)
		c.Set(ctxUser, user)
		c.Next()
	}
}

func sessionUser(c *gin.Context) SessionUser {
	user, _ := c.Get(ctxUser)
	u, _ := user.(SessionUser)
	return u
}

func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	token, err := h.API.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondAPIError(c, err)
		return
	}

	user, err := DecodeToken(token, h.now())
	if err != nil {
		utils.WithError(err, "webclient").Error("API issued an unreadable token")
		utils.RespondError(c, http.StatusBadGateway, errors.New("Login failed"))
		return
	}

	session := sessions.Default(c)
	session.Set(sessionTokenKey, token)
	if err := session.Save(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Logged in", user)
}

func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := h.API.Register(c.Request.Context(), req); err != nil {
		respondAPIError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User registered", nil)
}

func (h *Handler) Me(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Current user", sessionUser(c))
}

// Tanks -> the caller's tanks with fill display
func (h *Handler) Tanks(c *gin.Context) {
	tanks, err := h.API.UserTanks(c.Request.Context(), c.GetString(ctxToken))
	if err != nil && !IsStatus(err, http.StatusNotFound) {
		respondAPIError(c, err)
		return
	}

	rows := make([]TankRow, 0, len(tanks))
	for _, t := range tanks {
		rows = append(rows, NewTankRow(t))
	}
	utils.RespondJSON(c, http.StatusOK, "List of tanks", rows)
}

func (h *Handler) CreateTank(c *gin.Context) {
	if !sessionUser(c).HasRole(models.RoleAdmin) {
		utils.RespondError(c, http.StatusForbidden, errors.New("Forbidden: insufficient role"))
		return
	}

	var req services.TankInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tank, err := h.API.CreateTank(c.Request.Context(), c.GetString(ctxToken), req)
	if err != nil {
		respondAPIError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Tank created", NewTankRow(tank))
}

// RaiseWarning sends a snapshot of one of the caller's tanks once it reaches the threshold.
func (h *Handler) RaiseWarning(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	token := c.GetString(ctxToken)
	tanks, err := h.API.UserTanks(c.Request.Context(), token)
	if err != nil && !IsStatus(err, http.StatusNotFound) {
		respondAPIError(c, err)
		return
	}

	var tank *models.TankView
	for i := range tanks {
		if tanks[i].ID == id {
			tank = &tanks[i]
			break
		}
	}
	if tank == nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("Tank was not found."))
		return
	}

	if !models.ReachesThreshold(tank.CurrentVolume, tank.Capacity) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf(
			"The tank is at %s, below the %s warning threshold.",
			FormatPercentage(tank.Percentage), FormatPercentage(models.WarningThreshold)))
		return
	}

	warning, err := h.API.AddWarning(c.Request.Context(), token, services.WarningInput{
		ClientName:    sessionUser(c).Name,
		Capacity:      tank.Capacity,
		CurrentVolume: tank.CurrentVolume,
		TankID:        tank.ID,
		Type:          tank.Type,
	})
	if err != nil {
		respondAPIError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Warning sent", NewWarningRow(warning))
}

// Warnings -> ?tab=pending (default) sorted by priority, or ?tab=managed sorted by managed date
func (h *Handler) Warnings(c *gin.Context) {
	token := c.GetString(ctxToken)

	var (
		warnings []models.Warning
		err      error
	)
	switch tab := c.DefaultQuery("tab", "pending"); tab {
	case "pending":
		warnings, err = h.API.Warnings(c.Request.Context(), token)
		models.SortByPriority(warnings)
	case "managed":
		warnings, err = h.API.ManagedWarnings(c.Request.Context(), token)
		models.SortByManagedDate(warnings)
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown tab %q", tab))
		return
	}
	if err != nil && !IsStatus(err, http.StatusNotFound) {
		respondAPIError(c, err)
		return
	}

	rows := make([]WarningRow, 0, len(warnings))
	for _, w := range warnings {
		rows = append(rows, NewWarningRow(w))
	}
	utils.RespondJSON(c, http.StatusOK, "List of warnings", rows)
}

func (h *Handler) ManageWarning(c *gin.Context) {
	h.changeWarning(c, "Warning managed", h.API.ManageWarning)
}

func (h *Handler) UnmanageWarning(c *gin.Context) {
	h.changeWarning(c, "Warning unmanaged", h.API.UnmanageWarning)
}

type warningChange func(ctx context.Context, token string, id uint) (models.Warning, error)

func (h *Handler) changeWarning(c *gin.Context, message string, fn warningChange) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	warning, err := fn(c.Request.Context(), c.GetString(ctxToken), id)
	if err != nil {
		respondAPIError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, message, NewWarningRow(warning))
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid id"))
		return 0, false
	}
	return uint(id), true
}

// respondAPIError relays API failures with their status; transport failures become 502.
func respondAPIError(c *gin.Context, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		utils.WithError(err, "webclient").Error("API call failed")
		utils.RespondError(c, http.StatusBadGateway, errors.New("The API is unavailable."))
		return
	}

	if len(apiErr.Errors) > 0 {
		utils.RespondErrors(c, apiErr.StatusCode, apiErr.Message, apiErr.Errors)
		return
	}
	utils.RespondError(c, apiErr.StatusCode, errors.New(apiErr.Message))
}
