package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/maze-runner/api"
	gameapi "github.com/beka-birhanu/maze-runner/api/game"
	api_i "github.com/beka-birhanu/maze-runner/api/i"
	"github.com/beka-birhanu/maze-runner/api/identity"
	"github.com/beka-birhanu/maze-runner/config"
	"github.com/beka-birhanu/maze-runner/infrastruture/leaderboard"
	logger "github.com/beka-birhanu/maze-runner/infrastruture/log"
	"github.com/beka-birhanu/maze-runner/infrastruture/metrics"
	"github.com/beka-birhanu/maze-runner/infrastruture/repo"
	"github.com/beka-birhanu/maze-runner/infrastruture/token"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	appMetrics     *metrics.Metrics
	userRepo       *repo.UserRepo
	resultRepo     *repo.ResultRepo
	scoreBoard     i.Leaderboard
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	mazeService    i.MazeService
	gameService    i.GameService
	authController api_i.Controller
	mazeController api_i.Controller
	gameController api_i.Controller
	router         *api.Router
	appLogger      *logger.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(ctx context.Context) {
	userRepo = repo.NewUserRepo(mongoClient, config.Envs.DBName, "users")
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating user indexes: %v", err))
		os.Exit(1)
	}

	resultRepo = repo.NewResultRepo(mongoClient, config.Envs.DBName, "results")
	if err := resultRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating result indexes: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Repositories initialized")
}

func initLeaderboard() {
	var err error
	scoreBoard, err = leaderboard.NewRedisLeaderboard(redisClient, config.Envs.LeaderboardKey)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating leaderboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Leaderboard initialized")
}

func initMazeService() {
	mazeLogger, err := logger.New("MAZE", logger.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = service.NewMazeService(&service.MazeConfig{
		MinSize: config.Envs.MazeMinSize,
		MaxSize: config.Envs.MazeMaxSize,
		Metrics: appMetrics,
		Logger:  mazeLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initGameService() {
	gameLogger, err := logger.New("GAME", logger.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game logger: %v", err))
		os.Exit(1)
	}

	gameService, err = service.NewGameService(&service.GameConfig{
		Mazes:       mazeService,
		Results:     resultRepo,
		Leaderboard: scoreBoard,
		Users:       userRepo,
		Metrics:     appMetrics,
		Logger:      gameLogger,
		DefaultSize: config.Envs.MazeDefaultSize,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Game service initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	mazeController, err = gameapi.NewMazeController(mazeService, config.Envs.MazeDefaultSize)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}

	gameController, err = gameapi.NewGameController(gameService, config.Envs.LeaderboardSize)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating game controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Mode:                    config.Envs.GinMode,
		Controllers:             []api_i.Controller{authController, mazeController, gameController},
		AuthorizationMiddleware: identity.Authoriz(t),
		MetricsHandler:          appMetrics.Handler(),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", logger.ColorGreen, os.Stdout)
	appMetrics = metrics.New()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(ctx)
	initLeaderboard()
	initMazeService()
	initGameService()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
