package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/chemsecure/config"
	"github.com/yeremiapane/chemsecure/controllers"
	"github.com/yeremiapane/chemsecure/hub"
	"github.com/yeremiapane/chemsecure/middlewares"
	"github.com/yeremiapane/chemsecure/models"
	"github.com/yeremiapane/chemsecure/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg config.Config, h *hub.Hub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.HTTP.CORSOrigin))
	r.Use(middlewares.LoggerMiddleware())

	jwtSettings := cfg.JWT.Settings()

	authCtrl := controllers.NewAuthController(services.NewAuthService(db, jwtSettings))
	tankCtrl := controllers.NewTankController(services.NewTankService(db))
	userCtrl := controllers.NewUserController(services.NewUserService(db))
	warningCtrl := controllers.NewWarningController(services.NewWarningService(db), h)

	authenticated := middlewares.AuthMiddleware(jwtSettings)
	adminOnly := middlewares.RequireRoles(models.RoleAdmin)
	staffOnly := middlewares.RequireRoles(models.RoleAdmin, models.RoleManager)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// ----------------------------------------------------------------
	//                      AUTH
	// ----------------------------------------------------------------
	limiter := middlewares.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateBurst)
	auth := api.Group("/Auth")
	auth.Use(limiter.Limit())
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/admin/register", authCtrl.RegisterAdmin)
		auth.POST("/manager/register", authenticated, adminOnly, authCtrl.RegisterManager)
	}

	// ----------------------------------------------------------------
	//                      TANKS
	// ----------------------------------------------------------------
	tanks := api.Group("/Tank")
	{
		tanks.GET("", tankCtrl.GetAllTanks)
		tanks.GET("/user", authenticated, tankCtrl.GetUserTanks)
		tanks.GET("/:id", authenticated, tankCtrl.GetTankByID)
		tanks.POST("", authenticated, adminOnly, tankCtrl.CreateTank)
		tanks.PUT("/put/:id", authenticated, adminOnly, tankCtrl.UpdateTank)
		tanks.DELETE("/delete/:id", authenticated, adminOnly, tankCtrl.DeleteTank)
		tanks.PATCH("/update-volume/:id", tankCtrl.UpdateTankVolume)
	}

	// ----------------------------------------------------------------
	//                      USERS
	// ----------------------------------------------------------------
	users := api.Group("/User", authenticated, adminOnly)
	{
		users.GET("", userCtrl.GetAllUsers)
		users.GET("/:id", userCtrl.GetUser)
	}

	// ----------------------------------------------------------------
	//                      WARNINGS
	// ----------------------------------------------------------------
	warnings := api.Group("/Warning", authenticated)
	{
		warnings.GET("/warnings", staffOnly, warningCtrl.GetWarnings)
		warnings.GET("/managed-warnings", staffOnly, warningCtrl.GetManagedWarnings)
		warnings.GET("/stats", staffOnly, warningCtrl.GetWarningStats)
		warnings.PUT("/manage/:id", staffOnly, warningCtrl.ManageWarning)
		warnings.PUT("/unmanage/:id", staffOnly, warningCtrl.UnmanageWarning)
		warnings.POST("/add-warning", warningCtrl.AddWarning)
	}

	ws := r.Group("/ws", middlewares.WebSocketAuthMiddleware(jwtSettings), staffOnly)
	{
		ws.GET("/warnings", warningCtrl.Stream)
	}

	return r
}
