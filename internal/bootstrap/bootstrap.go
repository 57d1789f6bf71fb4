package bootstrap

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/streamhive/streamhive-backend/internal/config"
	"github.com/streamhive/streamhive-backend/internal/database"
	"github.com/streamhive/streamhive-backend/internal/events"
	"github.com/streamhive/streamhive-backend/internal/handlers"
	"github.com/streamhive/streamhive-backend/internal/metrics"
	"github.com/streamhive/streamhive-backend/internal/repository"
	"github.com/streamhive/streamhive-backend/internal/services"
	"github.com/streamhive/streamhive-backend/internal/storage"
	"github.com/streamhive/streamhive-backend/internal/utils"
)

type AppContext struct {
	Config        *config.Config
	Logger        *zap.Logger
	Sugar         *zap.SugaredLogger
	Mongo         *mongo.Client
	Redis         *redis.Client
	JWT           *utils.JWTManager
	Events        *events.Publisher
	Users         *handlers.UserHandler
	Videos        *handlers.VideoHandler
	Subscriptions *handlers.SubscriptionHandler
}

type CleanupFn func(context.Context)

func Init(configPath string) (*AppContext, CleanupFn, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := utils.NewLogger(cfg.App.Env)
	sugar := logger.Sugar()

	app := &AppContext{Config: cfg, Logger: logger, Sugar: sugar}
	sugar.Infof("Starting service in %s environment", cfg.App.Env)

	metrics.Init()
	go metrics.Serve(cfg.Metrics.Addr, logger)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		return nil, nil, err
	}
	app.Mongo = mongoClient

	rdb, err := database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, sugar)
	if err != nil {
		return nil, nil, err
	}
	app.Redis = rdb

	store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket, cfg.S3.PublicRead)
	if err != nil {
		return nil, nil, err
	}

	jwtMgr, err := utils.NewJWTManager(
		cfg.JWT.PrivateKeyPath,
		cfg.JWT.PublicKeyPath,
		cfg.JWT.AccessTTLMinutes,
		cfg.JWT.RefreshTTLDays,
	)
	if err != nil {
		return nil, nil, err
	}
	app.JWT = jwtMgr

	publisher := events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	app.Events = publisher

	userRepo := repository.NewMongoUserRepo(db)
	videoRepo := repository.NewMongoVideoRepo(db)
	subRepo := repository.NewMongoSubscriptionRepo(db)

	resolver := services.NewURLResolver(store, rdb, cfg.PresignTTL)

	userSvc := services.NewUserService(userRepo, store, jwtMgr, publisher, cfg.Security.PasswordHashCost, logger)
	videoSvc := services.NewVideoService(videoRepo, store, resolver, publisher, logger)
	subSvc := services.NewSubscriptionService(subRepo, userRepo)

	app.Users = handlers.NewUserHandler(userSvc)
	app.Videos = handlers.NewVideoHandler(videoSvc)
	app.Subscriptions = handlers.NewSubscriptionHandler(subSvc)

	return app, func(ctx context.Context) {
		if cerr := logger.Sync(); cerr != nil {
			log.Printf("Logger sync error: %v", cerr)
		}
		if cerr := publisher.Close(); cerr != nil {
			sugar.Errorf("Kafka producer close error: %v", cerr)
		}
		if cerr := mongoClient.Disconnect(ctx); cerr != nil {
			sugar.Errorf("MongoDB disconnect error: %v", cerr)
		}
		if cerr := rdb.Close(); cerr != nil {
			sugar.Errorf("Redis client close error: %v", cerr)
		}
	}, nil
}
