package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
)

var errInvalidID = errors.New("invalid id")

// respondServiceError maps service errors onto status codes.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	var serr *services.StoreError

	switch {
	case errors.As(err, &verr):
		utils.RespondErrors(c, http.StatusBadRequest, verr.Error(), verr.Errors)
	case errors.As(err, &serr):
		utils.RespondError(c, http.StatusBadRequest, serr)
	case errors.Is(err, services.ErrBadRequest):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrUnauthorized):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		utils.WithError(err, "controller").WithField("path", c.FullPath()).Error("request failed")
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errInvalidID)
		return 0, false
	}
	return uint(id), true
}
