package main

import (
	"context"
	"log"
	"strconv"

	"argubot/config"
	"argubot/controllers"
	"argubot/routes"
	"argubot/services"
	"argubot/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	responder, err := services.NewGeminiResponder(context.Background(), cfg.Gemini.ApiKey)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	finder := services.NewSerperFactFinder(cfg.Serper.ApiKey, cfg.Game.MaxFacts)
	if cfg.Serper.ApiKey == "" {
		log.Println("SERPER_API_KEY not set; arguing without fact citations")
	}

	reg := services.NewRegistry(services.GameConfig{
		Duration:      cfg.SessionDuration(),
		HistoryWindow: cfg.Game.HistoryWindow,
	}, responder, finder)
	controllers.InitArgumentController(reg)
	websocket.InitArgumentSocket(reg)

	router := setupRouter()
	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	router.OPTIONS("/*path", func(c *gin.Context) { c.Status(204) })

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":     "Welcome to the Argubot API!",
			"description": "The Undefeated Debate Champion",
			"endpoints": gin.H{
				"start":  "POST /argument/start",
				"send":   "POST /argument/send",
				"end":    "POST /argument/end",
				"status": "GET /argument/status?sessionId=",
				"live":   "GET /argument/ws",
				"health": "GET /health",
			},
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "Argubot API"})
	})

	routes.SetupArgumentRoutes(router)

	return router
}
