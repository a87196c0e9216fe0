package handler

import (
	"github.com/gin-gonic/gin"

	"lead-capture-go/internal/auth"
	"lead-capture-go/internal/broadcast"
	"lead-capture-go/internal/export"
	"lead-capture-go/internal/middleware"
	"lead-capture-go/internal/subscription"
	"lead-capture-go/internal/table"
)

// Services bundles everything the HTTP surface depends on
type Services struct {
	Credentials  *auth.CredentialStore
	Subscription *subscription.Service
	Tables       *table.Manager
	Dispatcher   *broadcast.Dispatcher
	Exporter     *export.Adapter
}

// NewRouter wires all routes onto a gin engine. The manage and export
// groups sit behind the admin gate; intake and the region list are public.
func NewRouter(engine *gin.Engine, s Services) *gin.Engine {
	engine.Use(middleware.RequestID())

	subscribeHandler := NewSubscribeHandler(s.Subscription)
	adminHandler := NewAdminHandler(s.Credentials)
	manageHandler := NewManageHandler(s.Tables, s.Dispatcher)
	exportHandler := NewExportHandler(s.Exporter)

	api := engine.Group("/api")
	{
		api.GET("/get_regions", subscribeHandler.GetRegions)
		api.POST("/subscribe", subscribeHandler.Subscribe)

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)
			admin.POST("/change_password", adminHandler.ChangePassword)

			gated := admin.Group("")
			gated.Use(middleware.AdminGate(s.Credentials))
			{
				gated.GET("/manage/:table", manageHandler.List)
				gated.POST("/manage/:table", manageHandler.Create)
				gated.PUT("/manage/:table", manageHandler.Update)
				gated.DELETE("/manage/:table", manageHandler.Delete)

				gated.GET("/export/:table", exportHandler.Export)
			}
		}
	}

	return engine
}
