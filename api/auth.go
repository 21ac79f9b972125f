package api

import (
	"net/http"

	"github.com/VeloPay/VeloPay-Console/api/apistrings"
	"github.com/VeloPay/VeloPay-Console/models"
	"github.com/VeloPay/VeloPay-Console/utils"
	"github.com/gin-gonic/gin"
)

// superAdminUserID identifies the configured console administrator; member
// accounts are provisioned by an external identity system.
const superAdminUserID int64 = 1

type Auth struct {
	server *Server
}

func (a Auth) router(server *Server) {
	a.server = server

	serverGroup := server.router.Group("/auth")
	serverGroup.POST("/login", a.login)
}

func (a *Auth) login(ctx *gin.Context) {
	request := models.LoginRequest{}

	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewError(apistrings.InvalidLoginInput))
		return
	}

	if request.Email != a.server.config.AdminEmail {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.IncorrectEmailPass))
		return
	}

	if err := utils.VerifyHashValue(request.Password, a.server.config.AdminPasswordHash); err != nil {
		ctx.JSON(http.StatusUnauthorized, models.NewError(apistrings.IncorrectEmailPass))
		return
	}

	token, err := TokenController.CreateToken(utils.TokenObject{
		UserID: superAdminUserID,
		Role:   "super_admin",
	})
	if err != nil {
		a.server.logger.Error("Token Error", err)
		ctx.JSON(http.StatusInternalServerError, models.NewError(apistrings.ServerError))
		return
	}

	ctx.JSON(http.StatusOK, models.LoginResponse{Token: token})
}
