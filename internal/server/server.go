package server

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"sukamaju.desa.id/portal/internal/middleware"
	"sukamaju.desa.id/portal/internal/pdf"
	"sukamaju.desa.id/portal/pkg/storage"

	galleryHttp "sukamaju.desa.id/portal/internal/modules/gallery/delivery/http"
	galleryRepo "sukamaju.desa.id/portal/internal/modules/gallery/repository"
	galleryService "sukamaju.desa.id/portal/internal/modules/gallery/service"

	requestHttp "sukamaju.desa.id/portal/internal/modules/letterrequest/delivery/http"
	requestRepo "sukamaju.desa.id/portal/internal/modules/letterrequest/repository"
	requestService "sukamaju.desa.id/portal/internal/modules/letterrequest/service"

	typeHttp "sukamaju.desa.id/portal/internal/modules/lettertype/delivery/http"
	typeRepo "sukamaju.desa.id/portal/internal/modules/lettertype/repository"
	typeService "sukamaju.desa.id/portal/internal/modules/lettertype/service"

	newsHttp "sukamaju.desa.id/portal/internal/modules/news/delivery/http"
	newsRepo "sukamaju.desa.id/portal/internal/modules/news/repository"
	newsService "sukamaju.desa.id/portal/internal/modules/news/service"

	notifHttp "sukamaju.desa.id/portal/internal/modules/notification/delivery/http"
	notifRepo "sukamaju.desa.id/portal/internal/modules/notification/repository"
	notifService "sukamaju.desa.id/portal/internal/modules/notification/service"

	officialHttp "sukamaju.desa.id/portal/internal/modules/official/delivery/http"
	officialRepo "sukamaju.desa.id/portal/internal/modules/official/repository"
	officialService "sukamaju.desa.id/portal/internal/modules/official/service"

	searchService "sukamaju.desa.id/portal/internal/modules/search/service"

	uploadHttp "sukamaju.desa.id/portal/internal/modules/upload/delivery/http"
	uploadRepo "sukamaju.desa.id/portal/internal/modules/upload/repository"
	uploadService "sukamaju.desa.id/portal/internal/modules/upload/service"

	userHttp "sukamaju.desa.id/portal/internal/modules/user/delivery/http"
	userRepo "sukamaju.desa.id/portal/internal/modules/user/repository"
	userService "sukamaju.desa.id/portal/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	usersRepository := userRepo.NewUserRepository(db)

	fileStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := searchService.NewSearchService(meiliClient)

	// Notification module
	notificationRepository := notifRepo.NewNotificationRepository(db)
	notificationSvc := notifService.NewNotificationService(notificationRepository, redisClient)
	notificationHandler := notifHttp.NewNotificationHandler(notificationSvc, redisClient)

	// Letter catalog
	letterTypeRepository := typeRepo.NewLetterTypeRepository(db)
	letterTypeSvc := typeService.NewLetterTypeService(letterTypeRepository)
	letterTypeHandler := typeHttp.NewLetterTypeHandler(letterTypeSvc)

	// Letter requests. The citizen auth service doubles as the account
	// resolver so a submission always leaves a loggable warga behind.
	requestRepository := requestRepo.NewLetterRequestRepository(db)
	citizenAuthSvc := userService.NewCitizenAuthService(usersRepository, requestRepository, userService.NewPasswordPolicyFromEnv())

	renderer := pdf.NewRenderer(pdf.VillageFromEnv())

	requestSvc := requestService.NewLetterRequestService(
		requestRepository,
		letterTypeRepository,
		citizenAuthSvc,
		notificationSvc,
		renderer,
		fileStorage,
	)
	requestHandler := requestHttp.NewLetterRequestHandler(requestSvc, usersRepository)

	authSvc := userService.NewAuthService(usersRepository)
	authHandler := userHttp.NewAuthHandler(authSvc, citizenAuthSvc)

	// Content modules
	newsRepository := newsRepo.NewNewsRepository(db)
	newsSvc := newsService.NewNewsService(newsRepository, searchSvc, redisClient)
	newsHandler := newsHttp.NewNewsHandler(newsSvc)

	galleryRepository := galleryRepo.NewGalleryRepository(db)
	gallerySvc := galleryService.NewGalleryService(galleryRepository)
	galleryHandler := galleryHttp.NewGalleryHandler(gallerySvc)

	officialRepository := officialRepo.NewOfficialRepository(db)
	officialSvc := officialService.NewOfficialService(officialRepository)
	officialHandler := officialHttp.NewOfficialHandler(officialSvc)

	uploadRepository := uploadRepo.NewUploadRepository(db)
	uploadSvc := uploadService.NewUploadService(uploadRepository, fileStorage)
	uploadHandler := uploadHttp.NewUploadHandler(uploadSvc)

	// Orphan upload cleanup job
	go func() {
		ticker := time.NewTicker(12 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			log.Println("Running orphan upload cleanup...")
			if err := uploadSvc.CleanupOrphanUploads(context.Background()); err != nil {
				log.Printf("Error cleaning up orphan uploads: %v", err)
			} else {
				log.Println("Orphan upload cleanup completed.")
			}
		}
	}()

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(usersRepository)

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/warga/login", authHandler.WargaLogin)
	}

	api.GET("/letter-types", letterTypeHandler.GetAllLetterTypes)
	api.GET("/letter-types/:id", letterTypeHandler.GetLetterType)
	api.POST("/letter-requests", requestHandler.Submit)

	api.GET("/news", newsHandler.GetPublished)
	api.GET("/news/search", newsHandler.Search)
	api.GET("/news/:slug", newsHandler.GetBySlug)
	api.GET("/gallery", galleryHandler.GetAllItems)
	api.GET("/officials", officialHandler.GetAllOfficials)

	// Authenticated routes (admin or warga)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/upload", uploadHandler.UploadFile)
		protected.POST("/auth/warga/set-password", authHandler.SetPassword)
		protected.GET("/user/letter-requests", requestHandler.ListMine)
		protected.GET("/user/download-surat/:id", requestHandler.Download)

		// Admin back office
		adminGroup := protected.Group("/admin")
		adminGroup.Use(authMiddleware.RequireAdmin())
		{
			adminGroup.POST("/letter-types", letterTypeHandler.CreateLetterType)
			adminGroup.PUT("/letter-types/:id", letterTypeHandler.UpdateLetterType)
			adminGroup.DELETE("/letter-types/:id", letterTypeHandler.DeleteLetterType)

			adminGroup.GET("/letter-requests", requestHandler.GetAll)
			adminGroup.GET("/letter-requests/:id", requestHandler.Get)
			adminGroup.PUT("/letter-requests/:id", requestHandler.Update)
			adminGroup.DELETE("/letter-requests/:id", requestHandler.Delete)
			adminGroup.POST("/generate-letter/:id", requestHandler.GenerateLetter)

			adminGroup.GET("/news", newsHandler.GetAll)
			adminGroup.POST("/news", newsHandler.CreateNews)
			adminGroup.PUT("/news/:id", newsHandler.UpdateNews)
			adminGroup.DELETE("/news/:id", newsHandler.DeleteNews)

			adminGroup.POST("/gallery", galleryHandler.CreateItem)
			adminGroup.DELETE("/gallery/:id", galleryHandler.DeleteItem)

			adminGroup.POST("/officials", officialHandler.CreateOfficial)
			adminGroup.PUT("/officials/:id", officialHandler.UpdateOfficial)
			adminGroup.DELETE("/officials/:id", officialHandler.DeleteOfficial)

			adminGroup.GET("/notifications", notificationHandler.GetNotifications)
			adminGroup.GET("/notifications/unread-count", notificationHandler.UnreadCount)
			adminGroup.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
			adminGroup.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
			adminGroup.GET("/notifications/ws", notificationHandler.HandleWebSocket)
		}
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

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
