package routes

import (
	"net/http"
	"time"

	"messaging-service/docs"
	"messaging-service/internal/api/handlers"
	"messaging-service/internal/api/middleware"
	"messaging-service/internal/config"
	"messaging-service/internal/repositories/postgres"
	"messaging-service/internal/services"
	"messaging-service/internal/websocket"
	"messaging-service/pkg/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

const (
	NamespaceChats      = "chats"
	NamespaceGroupChats = "group-chats"
)

// Dependencies are the process-wide resources the router wires into
// repositories, services and hubs. Redis, Notifier and Uploader may be nil.
type Dependencies struct {
	DB       *gorm.DB
	Redis    *services.RedisService
	Notifier services.Notifier
	Uploader handlers.Uploader
	Config   *config.Config
}

type Router struct {
	engine          *gin.Engine
	chatHub         *websocket.Hub
	groupHub        *websocket.Hub
	chatWS          *handlers.WSHandler
	groupWS         *handlers.WSHandler
	chatHandler     *handlers.ChatHandler
	roomHandler     *handlers.RoomHandler
	mediaHandler    *handlers.MediaHandler
	presenceHandler *handlers.PresenceHandler
	rateLimitMW     *middleware.RateLimitMiddleware
	authMW          *middleware.AuthMiddleware
}

func NewRouter(deps Dependencies) *Router {
	cfg := deps.Config

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(cfg.WebSocket.AllowedOrigins))
	engine.Use(logger.GinMiddleware(logger.L()))

	// Initialize repositories
	messageRepo := postgres.NewMessageRepository(deps.DB)
	replyRepo := postgres.NewReplyRepository(deps.DB)
	roomRepo := postgres.NewRoomRepository(deps.DB)
	memberRepo := postgres.NewMembershipRepository(deps.DB)
	profileRepo := postgres.NewProfileRepository(deps.DB)

	// Initialize services
	messageService := services.NewMessageService(messageRepo, replyRepo, memberRepo, deps.Notifier)
	threadService := services.NewThreadService(messageRepo, replyRepo)
	roomService := services.NewRoomService(roomRepo)
	profileService := services.NewProfileService(profileRepo, deps.Redis)

	// Initialize hubs, one per namespace
	var (
		presence websocket.Presence
		online   handlers.OnlineLister
		limiter  middleware.RateLimiter
	)
	if deps.Redis != nil {
		presence, online, limiter = deps.Redis, deps.Redis, deps.Redis
	}
	hubOpts := websocket.HubOptions{
		SendBuffer:   cfg.WebSocket.SendBuffer,
		EventsPerSec: cfg.WebSocket.EventsPerSec,
		EventBurst:   cfg.WebSocket.EventBurst,
	}
	chatHub := websocket.NewHub(NamespaceChats, presence, hubOpts)
	groupHub := websocket.NewHub(NamespaceGroupChats, presence, hubOpts)
	chatHub.SetHandler(websocket.NewDirectHandler(
		websocket.NewBroadcaster(chatHub, roomService, messageService, threadService, profileService)))
	groupHub.SetHandler(websocket.NewGroupHandler(
		websocket.NewBroadcaster(groupHub, roomService, messageService, threadService, profileService)))

	upgrader := websocket.NewUpgrader(cfg.WebSocket.AllowedOrigins)

	return &Router{
		engine:          engine,
		chatHub:         chatHub,
		groupHub:        groupHub,
		chatWS:          handlers.NewWSHandler(chatHub, upgrader),
		groupWS:         handlers.NewWSHandler(groupHub, upgrader),
		chatHandler:     handlers.NewChatHandler(messageService, threadService),
		roomHandler:     handlers.NewRoomHandler(roomService),
		mediaHandler:    handlers.NewMediaHandler(deps.Uploader),
		presenceHandler: handlers.NewPresenceHandler(online, chatHub, groupHub),
		rateLimitMW:     middleware.NewRateLimitMiddleware(limiter),
		authMW:          middleware.NewAuthMiddleware(cfg.JWT.Secret),
	}
}

func (r *Router) SetupRoutes() {
	r.engine.GET("/kaithhealthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	docs.SwaggerInfo.BasePath = "/api/v1"
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.engine.Group("/api/v1")

	// WebSocket namespaces
	ws := api.Group("/ws")
	ws.Use(r.authMW.RequireAuth(), r.rateLimitMW.WebSocketRateLimit(10, time.Minute))
	{
		ws.GET("/"+NamespaceChats, r.chatWS.HandleWebSocket)
		ws.GET("/"+NamespaceGroupChats, r.groupWS.HandleWebSocket)
	}

	// Authenticated routes
	auth := api.Group("/")
	auth.Use(r.authMW.RequireAuth())
	{
		chat := auth.Group("/chat-messages")
		chat.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			chat.POST("", r.chatHandler.SendChatMessage)
			chat.GET("/thread", r.chatHandler.FindChatThread)
		}

		chatReplies := auth.Group("/chat-message-replies")
		chatReplies.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			chatReplies.POST("", r.chatHandler.ReplyChatMessage)
			chatReplies.GET("/thread/:chatMessageId", r.chatHandler.FindChatReplyThread)
		}

		group := auth.Group("/group-chat-messages")
		group.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			group.POST("", r.chatHandler.SendGroupMessage)
			group.GET("/thread", r.chatHandler.FindGroupThread)
		}

		groupReplies := auth.Group("/group-chat-message-replies")
		groupReplies.Use(r.rateLimitMW.RateLimit(200, time.Minute))
		{
			groupReplies.POST("", r.chatHandler.ReplyGroupMessage)
			groupReplies.GET("/thread/:groupChatMessageId", r.chatHandler.FindGroupReplyThread)
		}

		auth.POST("/chat-rooms", r.rateLimitMW.RateLimit(100, time.Minute), r.roomHandler.ResolveRoom)
		auth.POST("/media", r.rateLimitMW.RateLimit(30, time.Minute), r.mediaHandler.Upload)

		presence := auth.Group("/presence")
		presence.Use(r.rateLimitMW.RateLimit(100, time.Minute))
		{
			presence.GET("/online", r.presenceHandler.GetOnlineUsers)
			presence.GET("/connections", r.presenceHandler.GetConnections)
		}
	}
}

// Hubs returns the websocket hubs; the caller runs and stops them.
func (r *Router) Hubs() []*websocket.Hub {
	return []*websocket.Hub{r.chatHub, r.groupHub}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
