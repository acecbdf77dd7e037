package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondErrors is used for validation failures that carry one entry per violated rule.
func RespondErrors(c *gin.Context, code int, message string, errs interface{}) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: message,
		Data:    errs,
	})
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
