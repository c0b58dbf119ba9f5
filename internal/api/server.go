package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/babyduj/shower-api/docs"
	v1 "github.com/babyduj/shower-api/internal/api/handler/v1"
	"github.com/babyduj/shower-api/internal/api/middleware"
	"github.com/babyduj/shower-api/internal/config"
	"github.com/babyduj/shower-api/internal/events"
	"github.com/babyduj/shower-api/internal/repository"
	"github.com/babyduj/shower-api/internal/repository/dao"
	"github.com/babyduj/shower-api/internal/service"
)

const basePath = "/api/v1"

type Server struct {
	Config  *config.AppConfig
	Router  *gin.Engine
	Origins *middleware.OriginList

	hub   *events.Hub
	store service.PhotoStore
	users *service.UserService
}

// NewServer wires every page behind the router. origins is shared with the
// config watcher so CORS changes apply without a restart. store may be nil,
// which disables photo uploads.
func NewServer(conf *config.AppConfig, db *gorm.DB, origins *middleware.OriginList, hub *events.Hub, store service.PhotoStore) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	if conf.Storage != nil && conf.Storage.MaxUploadMB > 0 {
		engine.MaxMultipartMemory = conf.Storage.MaxUploadMB << 20
	}

	s := &Server{
		Config:  conf,
		Router:  engine,
		Origins: origins,
		hub:     hub,
		store:   store,
		users:   service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db))),
	}

	s.MountMiddlewares()
	s.MountHandlers(db)

	return s
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(middleware.ConfigCORS(s.Origins))
}

func (s *Server) MountHandlers(db *gorm.DB) {
	authn := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	voteRepo := repository.NewVoteRepository(dao.NewVoteDAO(db))

	authHandler := v1.NewAuthHandler(s.Config.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(s.users)
	voteHandler := v1.NewVoteHandler(service.NewVoteService(voteRepo, s.hub), s.users)
	predictionHandler := v1.NewPredictionHandler(
		service.NewPredictionService(repository.NewPredictionRepository(dao.NewPredictionDAO(db)), s.hub),
		s.users,
	)
	resultsHandler := v1.NewResultsHandler(
		service.NewResultsService(repository.NewRevealRepository(dao.NewRevealDAO(db)), voteRepo, s.hub),
		s.users,
	)
	giftHandler := v1.NewGiftHandler(
		service.NewGiftService(repository.NewGiftRepository(dao.NewGiftDAO(db)), s.hub),
		s.users,
	)
	guestBookHandler := v1.NewGuestBookHandler(
		service.NewGuestBookService(repository.NewGuestBookRepository(dao.NewGuestBookDAO(db)), s.hub),
		s.users,
	)
	galleryHandler := v1.NewGalleryHandler(
		service.NewGalleryService(repository.NewGalleryRepository(dao.NewGalleryDAO(db)), s.store, s.hub),
		s.users,
		s.maxUploadBytes(),
	)
	eventsHandler := v1.NewEventsHandler(s.hub)

	open := s.Router.Group(basePath)
	{
		open.POST("/auth/signup", authHandler.HandleSignup)
		open.POST("/auth/login", authHandler.HandleLogin)
		open.GET("/events", eventsHandler.HandleEvents)
		open.GET("/results", resultsHandler.HandleGetResults)
		open.GET("/gifts", giftHandler.HandleListGifts)
	}

	// Readable signed out; a token, when present, personalises the answer.
	public := s.Router.Group(basePath, authn.IdentifyJWT())
	{
		public.GET("/votes", voteHandler.HandleGetVotes)
		public.GET("/predictions", predictionHandler.HandleGetPredictions)
		public.GET("/guestbook", guestBookHandler.HandleListEntries)
		public.GET("/guestbook/:entryID", guestBookHandler.HandleGetEntry)
		public.GET("/gallery", galleryHandler.HandleListPhotos)
	}

	private := s.Router.Group(basePath, authn.VerifyJWT())
	{
		private.GET("/users/me", userHandler.HandleGetMe)
		private.PATCH("/users/:userID/admin", userHandler.HandleSetAdmin)

		private.PUT("/votes/me", voteHandler.HandleCastVote)
		private.PUT("/predictions/me", predictionHandler.HandlePutPrediction)
		private.PUT("/results/reveal", resultsHandler.HandleSetReveal)

		private.POST("/gifts", giftHandler.HandleCreateGift)
		private.DELETE("/gifts/:giftID", giftHandler.HandleDeleteGift)
		private.POST("/gifts/:giftID/reservation", giftHandler.HandleReserveGift)
		private.DELETE("/gifts/:giftID/reservation", giftHandler.HandleUnreserveGift)

		private.PUT("/guestbook/me", guestBookHandler.HandleSign)
		private.PATCH("/guestbook/:entryID", guestBookHandler.HandleEditEntry)
		private.DELETE("/guestbook/:entryID", guestBookHandler.HandleDeleteEntry)

		private.POST("/gallery", galleryHandler.HandleAddPhoto)
		private.POST("/gallery/upload", galleryHandler.HandleUploadPhoto)
		private.DELETE("/gallery/:photoID", galleryHandler.HandleDeletePhoto)
		private.PUT("/gallery/:photoID/like", galleryHandler.HandleLike)
		private.DELETE("/gallery/:photoID/like", galleryHandler.HandleUnlike)
	}

	s.Router.GET("/", v1.HandleHealth)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Baby shower API"
	docs.SwaggerInfo.Description = "Gender votes, gift registry, guest book and photo gallery."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}

func (s *Server) maxUploadBytes() int64 {
	if s.Config.Storage == nil {
		return 0
	}

	return s.Config.Storage.MaxUploadMB << 20
}
