package container

import (
	"propdastak/internal/config"
	"propdastak/internal/repository"
	"propdastak/internal/service"
	"propdastak/pkg/database"
	"propdastak/pkg/logger"
	"propdastak/pkg/redis"
)

// Services holds the application services wired over the repositories.
type Services struct {
	Token    service.TokenService
	User     *service.UserService
	Property *service.PropertyService
	Lead     *service.LeadService
	Media    *service.MediaService
	Tracking *service.TrackingService
}

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client
	Services    *Services
}

// New creates a new dependency injection container
func New(cfg *config.Config, log *logger.Logger, db *database.PostgresDB) (*Container, error) {
	// Redis is optional: without it rankings fall through to the database.
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	eventRepo := repository.NewViewEventRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret)
	mediaService, err := service.NewMediaService(cfg.UploadDir, log)
	if err != nil {
		return nil, err
	}

	services := &Services{
		Token:    tokenService,
		User:     service.NewUserService(userRepo, tokenService, log),
		Property: service.NewPropertyService(propertyRepo, log),
		Lead:     service.NewLeadService(leadRepo, log),
		Media:    mediaService,
		Tracking: service.NewTrackingService(eventRepo, redisClient, log),
	}

	return &Container{
		Config:      cfg,
		Logger:      log,
		DB:          db,
		RedisClient: redisClient,
		Services:    services,
	}, nil
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// HasRedis returns true if the Redis client is available
func (c *Container) HasRedis() bool {
	return c.RedisClient != nil
}
