package routes

import (
	"oficina_assistant/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathAI = "/ai"

func addAIRoutes(rg *gin.RouterGroup, chatHandler *handlers.ChatHandler) {
	ai := rg.Group(PathAI)
	{
		ai.POST("/chat", chatHandler.Chat)
	}
}
