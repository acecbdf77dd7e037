package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/chemsecure/hub"
	"github.com/yeremiapane/chemsecure/middlewares"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WarningController struct {
	Warnings *services.WarningService
	Hub      *hub.Hub
}

func NewWarningController(warnings *services.WarningService, h *hub.Hub) *WarningController {
	return &WarningController{Warnings: warnings, Hub: h}
}

// GetWarnings -> pending (unmanaged) warnings
func (wc *WarningController) GetWarnings(c *gin.Context) {
	warnings, err := wc.Warnings.ListPending(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Pending warnings", warnings)
}

func (wc *WarningController) GetManagedWarnings(c *gin.Context) {
	warnings, err := wc.Warnings.ListManaged(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Managed warnings", warnings)
}

func (wc *WarningController) ManageWarning(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	warning, err := wc.Warnings.MarkManaged(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	wc.Hub.WarningManaged(warning)
	utils.RespondJSON(c, http.StatusOK, "Warning managed", warning)
}

func (wc *WarningController) UnmanageWarning(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	warning, err := wc.Warnings.MarkUnmanaged(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	wc.Hub.WarningUnmanaged(warning)
	utils.RespondJSON(c, http.StatusOK, "Warning unmanaged", warning)
}

// AddWarning stores the snapshot sent by the client. An empty or null body is rejected.
func (wc *WarningController) AddWarning(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var input *services.WarningInput
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &input); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	warning, err := wc.Warnings.Add(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.WithFields("warning", map[string]interface{}{
		"warning_id": warning.ID,
		"tank_id":    warning.TankID,
		"user_id":    c.GetString(middlewares.ContextUserID),
	}).Info("Warning created")
	wc.Hub.WarningCreated(warning)

	utils.RespondJSON(c, http.StatusCreated, "Warning created", warning)
}

// GetWarningStats counts warnings per state for the dashboard header.
func (wc *WarningController) GetWarningStats(c *gin.Context) {
	stats, err := wc.Warnings.Stats(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Warning stats", stats)
}

// Stream upgrades to a websocket that receives warning events until the client leaves.
func (wc *WarningController) Stream(c *gin.Context) {
	if wc.Hub == nil {
		utils.RespondError(c, http.StatusServiceUnavailable, errors.New("live feed disabled"))
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wc.Hub.Register(ws, c.GetString(middlewares.ContextUserID))

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	wc.Hub.Unregister(ws)
}
