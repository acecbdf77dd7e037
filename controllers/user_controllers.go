package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/services"
	"github.com/yeremiapane/chemsecure/utils"
)

type UserController struct {
	Users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{Users: users}
}

func (uc *UserController) GetUser(c *gin.Context) {
	user, err := uc.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User detail", user.View())
}

func (uc *UserController) GetAllUsers(c *gin.Context) {
	users, err := uc.Users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	utils.RespondJSON(c, http.StatusOK, "All users", views)
}
