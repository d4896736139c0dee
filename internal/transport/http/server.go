package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "taskkeeper/internal/app"
	"taskkeeper/internal/bootstrap"
	"taskkeeper/internal/cache"
	"taskkeeper/internal/model"
	"taskkeeper/internal/platform/rabbitmq"
	"taskkeeper/internal/repository"
	"taskkeeper/internal/transport/http/handler"
	"taskkeeper/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	todoRepo := repository.NewTodoRepository(app.MySQL)
	todoListCache := cache.NewTodoListCache(
		app.Redis,
		time.Duration(app.Config.Redis.TodoListTTLSeconds)*time.Second,
		time.Duration(app.Config.Redis.TodoDirtyTTLSeconds)*time.Second,
	)
	auditPublisher := rabbitmq.NewAuditPublisher(app.MQConn, app.Config.RabbitMQ.AuditQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	todoService := appsvc.NewTodoService(todoRepo, auditPublisher, todoListCache)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	adminHandler := handler.NewAdminHandler(todoService)
	userHandler := handler.NewUserHandler(authService)

	authJWT := middleware.AuthJWT(app.Config.Auth.JWTSecret)

	v1 := router.Group("/api/v1")

	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	todoGroup := v1.Group("/todos")
	todoGroup.Use(authJWT)
	todoGroup.GET("", todoHandler.List)
	todoGroup.GET("/:id", todoHandler.Get)
	todoGroup.POST("", todoHandler.Create)
	todoGroup.PUT("/:id", todoHandler.Update)
	todoGroup.DELETE("/:id", todoHandler.Delete)

	adminGroup := v1.Group("/admin")
	adminGroup.Use(authJWT, middleware.RequireRole(model.RoleAdmin))
	adminGroup.GET("/todos", adminHandler.ListAll)
	adminGroup.DELETE("/todos/:id", adminHandler.Delete)

	userGroup := v1.Group("/users")
	userGroup.Use(authJWT)
	userGroup.GET("/me", userHandler.Me)
	userGroup.PUT("/password", userHandler.ChangePassword)

	return router
}
