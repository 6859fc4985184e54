package routes

import (
	"argubot/controllers"
	"argubot/websocket"

	"github.com/gin-gonic/gin"
)

// SetupArgumentRoutes registers the argument-game endpoints.
func SetupArgumentRoutes(router *gin.Engine) {
	argument := router.Group("/argument")
	{
		argument.POST("/start", controllers.StartSession)
		argument.POST("/send", controllers.SendArgument)
		argument.POST("/end", controllers.EndSession)
		argument.GET("/status", controllers.SessionStatus)
		argument.DELETE("/remove", controllers.RemoveSession)
		argument.GET("/ws", websocket.ArgumentHandler)
	}
}
