package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/middlewares"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
)

type TankController struct {
	Tanks *services.TankService
}

func NewTankController(tanks *services.TankService) *TankController {
	return &TankController{Tanks: tanks}
}

// GetAllTanks -> every tank, without owner details
func (tc *TankController) GetAllTanks(c *gin.Context) {
	tanks, err := tc.Tanks.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tanks", models.TankViews(tanks))
}

func (tc *TankController) GetTankByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	tank, err := tc.Tanks.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tank detail", tank.View())
}

func (tc *TankController) CreateTank(c *gin.Context) {
	var req services.TankInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tank, err := tc.Tanks.Create(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/Tank/%d", tank.ID))
	utils.RespondJSON(c, http.StatusCreated, "Tank created", tank)
}

func (tc *TankController) UpdateTank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req services.TankInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := tc.Tanks.Update(c.Request.Context(), id, req); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondNoContent(c)
}

func (tc *TankController) DeleteTank(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := tc.Tanks.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondNoContent(c)
}

// UpdateTankVolume expects the new volume as a bare JSON number.
func (tc *TankController) UpdateTankVolume(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var volume *float64
	if err := json.NewDecoder(c.Request.Body).Decode(&volume); err != nil || volume == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("The new volume is required."))
		return
	}

	err := tc.Tanks.UpdateVolume(c.Request.Context(), id, *volume)
	if errors.Is(err, services.ErrConflict) {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("Error consulting volume"))
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondNoContent(c)
}

// GetUserTanks -> tanks owned by the caller
func (tc *TankController) GetUserTanks(c *gin.Context) {
	userID := c.GetString(middlewares.ContextUserID)
	if userID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("User not found."))
		return
	}

	tanks, err := tc.Tanks.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of user tanks", models.TankViews(tanks))
}
