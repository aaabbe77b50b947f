package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/learnflow-api/internal/config"
	"github.com/yourusername/learnflow-api/internal/handler"
	"github.com/yourusername/learnflow-api/internal/middleware"
	pgRepo "github.com/yourusername/learnflow-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/learnflow-api/internal/repository/redis"
	"github.com/yourusername/learnflow-api/internal/service"
	"github.com/yourusername/learnflow-api/internal/ws"
	"github.com/yourusername/learnflow-api/pkg/auth"
	"github.com/yourusername/learnflow-api/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	userRepo := pgRepo.NewUserRepo(db)
	quizRepo := pgRepo.NewQuizRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	progressRepo := pgRepo.NewProgressRepo(db)
	voteRepo := pgRepo.NewVoteRepo(db)
	badgeRepo := pgRepo.NewBadgeRepo(db)

	cacheRepo, err := redisRepo.NewCacheRepo(redisClient)
	if err != nil {
		log.Printf("Failed to initialize CacheRepo: %v", err)
		os.Exit(1)
	}

	// Инициализируем JWT сервис
	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs)
	if err != nil {
		log.Printf("Failed to initialize JWTService: %v", err)
		os.Exit(1)
	}

	// Инициализация WebSocket Hub
	hub := ws.NewHub()
	go hub.Run()

	// Генератор викторин: Gemini при наличии ключа, иначе fallback
	var generator service.QuizGenerator
	if cfg.AI.APIKey != "" {
		generator = service.NewGeminiGenerator(cfg.AI.APIKey, cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSec)*time.Second)
		log.Printf("AI генератор: Gemini (%s)", cfg.AI.Model)
	} else {
		generator = service.FallbackGenerator{}
		log.Println("AI генератор: API-ключ не задан, используется fallback")
	}

	// Отправка email: Resend при наличии ключа, иначе noop
	var emailService service.EmailService = &service.NoopEmailService{}
	if cfg.Email.APIKey != "" {
		resendService, errEmail := service.NewResendEmailService(cfg.Email.APIKey, cfg.Email.From)
		if errEmail != nil {
			log.Printf("Failed to initialize ResendEmailService: %v", errEmail)
			os.Exit(1)
		}
		emailService = resendService
		log.Println("Email уведомления: Resend")
	} else {
		log.Println("Email уведомления: API-ключ не задан, отключены")
	}

	// Минтер бейджей на Cardano preprod через Blockfrost
	minter := service.NewBlockfrostMinter(
		cfg.Blockchain.APIKey,
		cfg.Blockchain.BaseURL,
		cfg.Blockchain.PolicyID,
		time.Duration(cfg.Blockchain.TimeoutSec)*time.Second,
	)

	// Инициализируем сервисы
	authService := service.NewAuthService(userRepo, jwtService)
	quizService := service.NewQuizService(quizRepo, resultRepo, voteRepo, badgeRepo)
	resultService := service.NewResultService(resultRepo, quizRepo, db, hub)
	voteService := service.NewVoteService(db, hub)
	leaderboardService := service.NewLeaderboardService(progressRepo, userRepo)
	aiQuizService := service.NewAIQuizService(quizRepo, cacheRepo, generator, hub, cfg.AI.MaxPerHour)
	badgeService := service.NewBadgeService(badgeRepo, resultRepo, quizRepo, userRepo, minter, emailService, hub)
	userService := service.NewUserService(userRepo, progressRepo, resultRepo, badgeRepo)

	// Инициализируем обработчики
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService, resultService, voteService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)
	aiQuizHandler := handler.NewAIQuizHandler(aiQuizService)
	badgeHandler := handler.NewBadgeHandler(badgeService)
	userHandler := handler.NewUserHandler(userService)
	wsHandler := handler.NewWSHandler(hub, jwtService)

	// Инициализируем middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode

	// Инициализируем роутер Gin
	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS (синхронизировано с CheckOrigin в ws_handler.go)
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173", "https://learnflow.vercel.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		// Аутентификация
		authGroup := api.Group("/auth")
		authGroup.Use(rateLimiter.Limit(middleware.DefaultAuthRateLimitConfig()))
		{
			authGroup.POST("/register", rateLimiter.Limit(middleware.StrictAuthRateLimitConfig()), authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authMiddleware.RequireAuth(), authHandler.Refresh)
		}

		// Викторины
		quizzes := api.Group("/quizzes")
		{
			// Публичные маршруты: аутентификация опциональна, от нее зависит
			// статус разблокировки
			quizzes.GET("", authMiddleware.OptionalAuth(), quizHandler.ListQuizzes)

			// Генерация новой викторины (требует аутентификации)
			quizzes.POST("/generate",
				authMiddleware.RequireAuth(),
				rateLimiter.Limit(middleware.GenerateRateLimitConfig()),
				aiQuizHandler.Generate)

			quizWithID := quizzes.Group("/:id")
			quizWithID.Use(middleware.ExtractUintParam("id", "quizID"))
			{
				quizWithID.GET("", authMiddleware.OptionalAuth(), quizHandler.GetQuiz)
				quizWithID.GET("/votes", quizHandler.GetVoteStats)

				authedQuizzes := quizWithID.Group("")
				authedQuizzes.Use(authMiddleware.RequireAuth())
				{
					authedQuizzes.POST("/results", quizHandler.SubmitResult)
					authedQuizzes.POST("/vote", quizHandler.Vote)
					authedQuizzes.GET("/vote", quizHandler.GetMyVote)
				}
			}
		}

		// Лидерборд (публичные маршруты)
		leaderboard := api.Group("/leaderboard")
		{
			leaderboard.GET("", leaderboardHandler.GetTop)
			leaderboard.GET("/stats", leaderboardHandler.GetStats)
			leaderboard.GET("/export", leaderboardHandler.Export)
			leaderboard.GET("/me", authMiddleware.RequireAuth(), leaderboardHandler.GetMyRank)
		}

		// Бейджи
		badges := api.Group("/badges")
		badges.Use(authMiddleware.RequireAuth())
		{
			badges.POST("/mint", badgeHandler.Mint)
		}

		// Профиль текущего пользователя
		me := api.Group("/me")
		me.Use(authMiddleware.RequireAuth())
		{
			me.GET("/progress", userHandler.GetProgress)
			me.GET("/analytics", userHandler.GetAnalytics)
			me.GET("/badges", badgeHandler.ListMine)
			me.PUT("/name", userHandler.UpdateName)
		}

		// Администрирование
		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.AdminOnly())
		{
			admin.POST("/quizzes/init", quizHandler.InitializeQuizzes)
		}
	}

	// WebSocket маршрут
	router.GET("/ws", wsHandler.HandleConnection)

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Server started on port %s", cfg.Server.Port)

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Останавливаем WebSocket хаб
	hub.Shutdown()

	// Создаем контекст с таймаутом для graceful shutdown сервера
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
