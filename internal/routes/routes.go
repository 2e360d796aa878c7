package routes

import (
	"screensynced_backend/internal/handlers"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP маршруты приложения.
// guard — middleware аутентификации для защищенных групп.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	guard gin.HandlerFunc,
) {
	api := ginRouter.Group("/api")
	{
		api.GET("/health", appHandlers.HealthHandler.Check)
		api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		appHandlers.AuthHandler.RegisterRoutes(api, guard)
		appHandlers.UserHandler.RegisterRoutes(api, guard)
		appHandlers.BookmarkHandler.RegisterRoutes(api, guard)
	}
}
