package main

import (
	"fmt"
	"os"

	"github.com/yungbote/codemorph-backend/internal/clients/redis"
	"github.com/yungbote/codemorph-backend/internal/db"
	"github.com/yungbote/codemorph-backend/internal/http/handlers"
	"github.com/yungbote/codemorph-backend/internal/platform/envutil"
	"github.com/yungbote/codemorph-backend/internal/platform/gemini"
	"github.com/yungbote/codemorph-backend/internal/platform/logger"
	"github.com/yungbote/codemorph-backend/internal/repos"
	"github.com/yungbote/codemorph-backend/internal/server"
	"github.com/yungbote/codemorph-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	port := envutil.GetEnv("PORT", "8080", log)
	languagesPath := envutil.GetEnv("LANGUAGES_FILE", "", log)
	parallelism := envutil.GetEnvAsInt("TRANSLATION_PARALLELISM", 4, log)

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	gormDB := dbService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	resultRepo := repos.NewConversionResultRepo(gormDB, log)
	profileRepo := repos.NewSessionProfileRepo(gormDB, log)

	// History cache is optional: without Redis every history read hits the
	// database directly.
	historyCache, err := redis.NewHistoryCache(log)
	if err != nil {
		log.Warn("Redis history cache unavailable", "error", err)
		historyCache = nil
	}

	// Model provider
	aiClient, err := gemini.NewClient(log)
	if err != nil {
		log.Error("Could not init Gemini client", "error", err)
		os.Exit(1)
	}

	// Speech provider is optional: without it audio uploads are rejected.
	speechProvider, err := services.NewSpeechProviderService(log)
	if err != nil {
		log.Warn("Could not init speech provider", "error", err)
		speechProvider = nil
	}

	// Services
	log.Info("Setting up Services from main...")
	languages := services.DefaultLanguages()
	if languagesPath != "" {
		languages = services.LoadLanguages(languagesPath, log)
	}
	conversionService := services.NewConversionService(log, aiClient, languages, parallelism)
	analysisService := services.NewAnalysisService(log, aiClient)
	resultService := services.NewResultService(gormDB, log, resultRepo, historyCache)
	profileService := services.NewProfileService(gormDB, log, profileRepo, aiClient)
	chatService := services.NewChatService(log, aiClient, profileService)

	// Handlers
	convertHandler := handlers.NewConvertHandler(log, conversionService, analysisService, resultService, speechProvider)
	analyzeHandler := handlers.NewAnalyzeHandler(log, analysisService)
	chatHandler := handlers.NewChatHandler(log, chatService)
	profileHandler := handlers.NewProfileHandler(log, profileService)

	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		ConvertHandler: convertHandler,
		AnalyzeHandler: analyzeHandler,
		ChatHandler:    chatHandler,
		ProfileHandler: profileHandler,
	})

	log.Info("Starting server", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
