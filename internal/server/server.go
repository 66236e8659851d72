package server

import (
	"context"
	"log"
	"strings"
	"time"

	"anoa.com/postpilot/internal/config"
	"anoa.com/postpilot/internal/middleware"
	"anoa.com/postpilot/pkg/mediakind"
	"anoa.com/postpilot/pkg/ratelimiter"
	"anoa.com/postpilot/pkg/storage"

	postHttp "anoa.com/postpilot/internal/modules/post/delivery/http"
	postRepo "anoa.com/postpilot/internal/modules/post/repository"
	postService "anoa.com/postpilot/internal/modules/post/service"

	statHttp "anoa.com/postpilot/internal/modules/stat/delivery/http"
	statService "anoa.com/postpilot/internal/modules/stat/service"

	uploadHttp "anoa.com/postpilot/internal/modules/upload/delivery/http"
	uploadRepo "anoa.com/postpilot/internal/modules/upload/repository"
	uploadService "anoa.com/postpilot/internal/modules/upload/service"

	userHttp "anoa.com/postpilot/internal/modules/user/delivery/http"
	userRepo "anoa.com/postpilot/internal/modules/user/repository"
	userService "anoa.com/postpilot/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	usersRepo := userRepo.NewUserRepository(db)
	authSvc := userService.NewAuthService(usersRepo, cfg.JWTSecret, cfg.JWTTTL)
	authHandler := userHttp.NewAuthHandler(authSvc)

	uploadsRepo := uploadRepo.NewUploadRepository(db)
	uploadSvc := uploadService.NewUploadService(uploadsRepo, fileStorage, cfg.CloudinaryUploadFolder)
	uploadHandler := uploadHttp.NewUploadHandler(uploadSvc)

	// A nil *redis.Client must stay a nil interface so the limiter's
	// disabled path kicks in.
	var limiter ratelimiter.Client
	if redisClient != nil {
		limiter = redisClient
	}

	postsRepo := postRepo.NewPostRepository(db)
	postSvc := postService.NewPostService(postsRepo, mediakind.URLClassifier{}, fileStorage, limiter, postService.Options{
		PublishWindow:   cfg.PublishWindow,
		RateLimitGlobal: cfg.RateLimitGlobal,
		RateLimitPost:   cfg.RateLimitPost,
	})
	postHandler := postHttp.NewPostHandler(postSvc)

	statSvc := statService.NewStatService(postsRepo)
	statHandler := statHttp.NewStatHandler(statSvc)

	// Reclaim uploads that never got attached to a post
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("running orphan upload cleanup...")
			if err := uploadSvc.CleanupOrphanUploads(context.Background()); err != nil {
				log.Printf("orphan upload cleanup failed: %v", err)
			}
		}
	}()

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret, cfg.AgentAPIKey)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Machine-to-machine routes for the publishing agent
	agent := api.Group("")
	{
		agent.GET("/posts/pending", authMiddleware.RequireAgentKey(), postHandler.GetPendingPosts)
		agent.PATCH("/posts/:post_id", authMiddleware.RequireAuthOrAgentKey(), postHandler.UpdatePost)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/posts", postHandler.CreatePost)
		protected.GET("/posts", postHandler.GetPosts)
		protected.GET("/posts/stats", statHandler.GetPostStats)
		protected.GET("/posts/:post_id", postHandler.GetPostByID)
		protected.DELETE("/posts/:post_id", postHandler.DeletePost)

		protected.POST("/upload", uploadHandler.Upload)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
