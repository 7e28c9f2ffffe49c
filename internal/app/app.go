package app

import (
	"context"
	"ery_cursos_backend/internal/config"
	"ery_cursos_backend/internal/controller"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/service"
	"ery_cursos_backend/pkg/configwatcher"
	"ery_cursos_backend/pkg/database"
	"ery_cursos_backend/pkg/logger"
	"ery_cursos_backend/pkg/monitoring"
	"ery_cursos_backend/pkg/security"
	"ery_cursos_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user         *repository.UserRepository
	unit         *repository.UnitRepository
	assignment   *repository.AssignmentRepository
	completion   *repository.CompletionRepository
	notification *repository.NotificationRepository
	submission   *repository.SubmissionRepository
	grade        *repository.GradeRepository
}

type services struct {
	auth         *service.AuthService
	user         *service.UserService
	storage      *service.StorageService
	progress     *service.ProgressService
	assignment   *service.AssignmentService
	notification *service.NotificationService
	submission   *service.SubmissionService
	grade        *service.GradeService
}

type controllers struct {
	auth         *controller.AuthController
	user         *controller.UserController
	course       *controller.CourseController
	progress     *controller.ProgressController
	assignment   *controller.AssignmentController
	notification *controller.NotificationController
	submission   *controller.SubmissionController
	grade        *controller.GradeController
	health       *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		unit:         repository.NewUnitRepository(db),
		assignment:   repository.NewAssignmentRepository(db),
		completion:   repository.NewCompletionRepository(db),
		notification: repository.NewNotificationRepository(db),
		submission:   repository.NewSubmissionRepository(db),
		grade:        repository.NewGradeRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.storage = service.NewStorageService(cfg)
	s.notification = service.NewNotificationService(repos.notification, repos.user)

	// Completion facts live in the database first; the Redis snapshot and
	// the in-memory mirror absorb reads and writes when it is down.
	cacheTTL := time.Duration(cfg.Course.CacheTTLMinutes) * time.Minute
	dbProvider := service.NewDBProgressProvider(repos.completion)
	cacheProvider := service.NewRedisProgressProvider(rdb, cacheTTL)
	memoryProvider := service.NewMemoryProgressProvider()
	chain := []service.ProgressProvider{dbProvider, cacheProvider, memoryProvider}

	s.progress = service.NewProgressService(
		chain,
		memoryProvider,
		cacheProvider,
		repos.completion,
		service.NewCelebrationPolicy(),
		s.notification,
		&cfg.Course,
	)

	s.assignment = service.NewAssignmentService(repos.assignment, &cfg.Course)
	s.submission = service.NewSubmissionService(repos.submission, repos.assignment, s.storage)
	s.grade = service.NewGradeService(repos.grade, repos.submission)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		user:         controller.NewUserController(s.user),
		progress:     controller.NewProgressController(s.progress),
		course:       controller.NewCourseController(repos.unit),
		assignment:   controller.NewAssignmentController(s.assignment),
		notification: controller.NewNotificationController(s.notification),
		submission:   controller.NewSubmissionController(s.submission),
		grade:        controller.NewGradeController(s.grade),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// startBackgroundTasks runs the scheduled-notification dispatcher on a
// ticker.
func (a *App) startBackgroundTasks(s *services) {
	interval := time.Duration(a.Config.Notification.DispatchIntervalSeconds) * time.Second

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			delivered, err := s.notification.DispatchDue(time.Now())
			if err != nil {
				logger.Log.Error("notification dispatch error", zap.Error(err))
				continue
			}
			if delivered > 0 {
				logger.Log.Info("dispatched scheduled notifications", zap.Int("count", delivered))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, &cfg.Course)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, repos, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("ery-cursos", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		// Most settings need a restart; the watcher exists so edits are
		// validated and surfaced immediately instead of on the next boot.
		if reloaded, ok := newCfg.(*config.Config); ok {
			logger.Log.Info("config file reloaded",
				zap.Strings("units", reloaded.Course.Units),
				zap.Int("lessons_per_unit", reloaded.Course.LessonsPerUnit))
		}
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
