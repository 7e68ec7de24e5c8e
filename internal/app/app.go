package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/diillson/course-platform-go/internal/adapter/database"
	"github.com/diillson/course-platform-go/internal/adapter/http"
	"github.com/diillson/course-platform-go/internal/adapter/memory"
	"github.com/diillson/course-platform-go/internal/app/course"
	"github.com/diillson/course-platform-go/internal/app/enrollment"
	"github.com/diillson/course-platform-go/internal/app/identity"
	"github.com/diillson/course-platform-go/internal/app/lesson"
	"github.com/diillson/course-platform-go/internal/app/module"
	"github.com/diillson/course-platform-go/internal/app/test"
	"github.com/diillson/course-platform-go/internal/app/user"
	"github.com/diillson/course-platform-go/internal/domain/repository"
	"github.com/diillson/course-platform-go/internal/infra/metrics"
	"github.com/diillson/course-platform-go/internal/infra/middleware"
	"github.com/diillson/course-platform-go/pkg/cache"
	"github.com/diillson/course-platform-go/pkg/config"
	"github.com/diillson/course-platform-go/pkg/ratelimit"
	"github.com/diillson/course-platform-go/pkg/security"
	"github.com/diillson/course-platform-go/pkg/validation"
	"gorm.io/gorm/logger"
)

// App agrega todas as dependências da aplicação já conectadas
type App struct {
	Logger     *zap.Logger
	Config     *config.Config
	DB         *database.Database
	Cache      cache.Cache
	APIMetrics *metrics.APIMetrics
	Middleware *middleware.Middleware

	UserHandler       *http.UserHandler
	CourseHandler     *http.CourseHandler
	ModuleHandler     *http.ModuleHandler
	EnrollmentHandler *http.EnrollmentHandler
	TestHandler       *http.TestHandler
	LessonHandler     *http.LessonHandler
	HealthChecker     *http.HealthChecker
	MetricsHandler    *middleware.MetricsHandler
}

// repositories agrupa os repositórios por trás de um driver de armazenamento
type repositories struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	modules     repository.ModuleRepository
	enrollments repository.EnrollmentRepository
	tests       repository.TestRepository
	lessons     repository.LessonRepository
}

// NewApp cria uma nova instância da aplicação com todas as dependências
// injetadas
func NewApp(ctx context.Context, logger *zap.Logger) (*App, error) {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	return NewAppWithConfig(ctx, cfg, logger)
}

// NewAppWithConfig monta a aplicação a partir de uma configuração já
// carregada
func NewAppWithConfig(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) (*App, error) {
	var apiMetrics *metrics.APIMetrics
	if cfg.Metrics.Enabled {
		apiMetrics = metrics.NewAPIMetrics()
	}

	var db *database.Database
	var repos repositories

	// O driver memory atende desenvolvimento e testes sem banco externo
	if cfg.Database.Driver == "memory" {
		zapLogger.Info("usando repositórios em memória")
		repos = repositories{
			users:       memory.NewUserRepository(),
			courses:     memory.NewCourseRepository(),
			modules:     memory.NewModuleRepository(),
			enrollments: memory.NewEnrollmentRepository(),
			tests:       memory.NewTestRepository(),
			lessons:     memory.NewLessonRepository(),
		}
	} else {
		var err error
		db, err = database.NewDatabase(ctx, database.Config{
			Driver:          cfg.Database.Driver,
			DSN:             cfg.Database.DSN,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        logger.Warn,
			SlowThreshold:   cfg.Database.SlowThreshold,
			MigrationDir:    cfg.Database.MigrationDir,
			SkipMigrations:  cfg.Database.SkipMigrations,
		}, zapLogger)
		if err != nil {
			return nil, err
		}

		repos = repositories{
			users:       database.NewUserRepository(db.DB(), zapLogger),
			courses:     database.NewCourseRepository(db.DB(), zapLogger),
			modules:     database.NewModuleRepository(db.DB(), zapLogger),
			enrollments: database.NewEnrollmentRepository(db.DB(), zapLogger),
			tests:       database.NewTestRepository(db.DB(), zapLogger),
			lessons:     database.NewLessonRepository(db.DB(), zapLogger),
		}
	}

	appCache, cacheChecker, redisClient := buildCache(ctx, cfg, apiMetrics, zapLogger)

	secret := security.GetJWTSecret()
	if len(secret) == 0 {
		secret = []byte(cfg.Auth.JWTSecret)
	}

	keyManager, err := security.NewKeyManager(secret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, zapLogger)
	if err != nil {
		return nil, err
	}

	resolver := identity.NewResolver(keyManager, repos.users, zapLogger)
	cpfValidator := validation.AcceptAllCPFValidator{}

	userService := user.NewService(repos.users, resolver, keyManager, cpfValidator, apiMetrics, zapLogger)
	courseService := course.NewService(repos.users, repos.courses, repos.enrollments, resolver, appCache, apiMetrics, zapLogger)
	moduleService := module.NewService(repos.users, repos.courses, repos.modules, repos.enrollments, resolver, zapLogger)
	enrollmentService := enrollment.NewService(repos.users, repos.enrollments, repos.courses, resolver, apiMetrics, zapLogger)
	testService := test.NewService(repos.users, repos.tests, resolver, zapLogger)
	lessonService := lesson.NewService(repos.users, repos.courses, repos.modules, repos.lessons, repos.enrollments, resolver, zapLogger)

	var limiter *ratelimit.RedisLimiter
	if redisClient != nil {
		limiter = ratelimit.NewRedisLimiter(redisClient, zapLogger)
	}

	serviceName := cfg.Tracing.ServiceName
	middlewares := middleware.NewMiddleware(zapLogger, resolver, apiMetrics, limiter, serviceName)

	var dbChecker http.DatabaseChecker
	if db != nil {
		dbChecker = db
	}

	return &App{
		Logger:     zapLogger,
		Config:     cfg,
		DB:         db,
		Cache:      appCache,
		APIMetrics: apiMetrics,
		Middleware: middlewares,

		UserHandler:       http.NewUserHandler(userService, cfg.Auth.RefreshTokenTTL, cfg.Auth.SecureCookies, zapLogger),
		CourseHandler:     http.NewCourseHandler(courseService, zapLogger),
		ModuleHandler:     http.NewModuleHandler(moduleService, zapLogger),
		EnrollmentHandler: http.NewEnrollmentHandler(enrollmentService, zapLogger),
		TestHandler:       http.NewTestHandler(testService, zapLogger),
		LessonHandler:     http.NewLessonHandler(lessonService, zapLogger),
		HealthChecker:     http.NewHealthChecker(dbChecker, cacheChecker, zapLogger),
		MetricsHandler:    middleware.NewMetricsHandler(apiMetrics, zapLogger),
	}, nil
}

// buildCache monta o cache conforme a configuração: redis quando
// disponível, memória como padrão, no-op quando desabilitado
func buildCache(ctx context.Context, cfg *config.Config, apiMetrics *metrics.APIMetrics, zapLogger *zap.Logger) (cache.Cache, http.CacheChecker, *redis.Client) {
	if !cfg.Cache.Enabled {
		return &cache.NoOpCache{}, nil, nil
	}

	if cfg.Cache.Type == "redis" && cfg.Cache.Redis.Address != "" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.Redis.Address, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, zapLogger)
		if err != nil {
			zapLogger.Error("falha ao conectar ao Redis, usando cache em memória",
				zap.String("address", cfg.Cache.Redis.Address),
				zap.Error(err))
		} else {
			redisClient, err := cache.NewRedisClientWithConfig(&redis.Options{
				Addr:     cfg.Cache.Redis.Address,
				Password: cfg.Cache.Redis.Password,
				DB:       cfg.Cache.Redis.DB,
			}, zapLogger)
			if err != nil {
				zapLogger.Warn("cliente Redis para rate limiting indisponível", zap.Error(err))
			}
			return redisCache, redisCache, redisClient
		}
	}

	memCache := cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, zapLogger)
	return memCache, memCache, nil
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.Logger())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.IgnoreFavicon())
	router.Use(a.Middleware.Metrics())
	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}
	router.Use(a.Middleware.IPRateLimit())

	// Autenticação e usuários. A resolução do token acontece dentro dos
	// serviços; o cadastro de administrador decide sozinho entre o
	// bootstrap sem token e a exigência de admin autenticado.
	router.POST("/login", a.Middleware.LoginRateLimit(), a.UserHandler.Login)
	router.POST("/refresh", a.UserHandler.Refresh)
	router.POST("/logout", a.UserHandler.Logout)

	users := router.Group("/users")
	{
		users.POST("/administrators", a.Middleware.LoginRateLimit(), a.UserHandler.CreateAdministrator)
		users.POST("/students", a.Middleware.LoginRateLimit(), a.UserHandler.CreateStudent)
		users.GET("/me", a.UserHandler.GetMe)
		users.PATCH("/me", a.UserHandler.UpdateMe)
		users.DELETE("/me", a.UserHandler.DeleteMe)
		users.GET("/me/courses", a.CourseHandler.GetMyCourses)
	}

	courses := router.Group("/courses")
	{
		courses.POST("", a.CourseHandler.CreateCourse)
		courses.GET("", a.CourseHandler.GetAllCourses)
		courses.GET("/:id", a.CourseHandler.GetCourse)
		courses.PATCH("/:id", a.CourseHandler.UpdateCourse)
		courses.DELETE("/:id", a.CourseHandler.DeleteCourse)
		courses.POST("/:id/ratings", a.CourseHandler.RateCourse)
		courses.POST("/:id/modules", a.ModuleHandler.CreateModule)
		courses.GET("/:id/modules", a.ModuleHandler.GetModulesByCourse)
	}

	modules := router.Group("/modules")
	{
		modules.GET("/:id", a.ModuleHandler.GetModule)
		modules.PATCH("/:id", a.ModuleHandler.UpdateModule)
		modules.GET("/:id/tests", a.TestHandler.GetTestsByModule)
		modules.POST("/:id/lessons", a.LessonHandler.CreateLesson)
		modules.GET("/:id/lessons", a.LessonHandler.GetLessonsByModule)
	}

	tests := router.Group("/tests")
	{
		tests.POST("", a.TestHandler.CreateTest)
		tests.GET("", a.TestHandler.GetTestsByQuestion)
		tests.GET("/:id", a.TestHandler.GetTest)
		tests.POST("/:id/answers", a.TestHandler.CreateAnswer)
		tests.GET("/:id/answers", a.TestHandler.GetMyAnswers)
	}

	router.GET("/lessons/:id", a.LessonHandler.GetLesson)

	enrollments := router.Group("/enrollments")
	{
		enrollments.POST("", a.EnrollmentHandler.CreateEnrollment)
		enrollments.GET("", a.EnrollmentHandler.GetMyEnrollments)
	}

	router.GET("/health/liveness", a.HealthChecker.LivenessCheck)
	router.GET("/health/readiness", a.HealthChecker.ReadinessCheck)
	router.GET("/health/detailed", a.Middleware.RequireAdmin, a.HealthChecker.DetailedHealth)

	if a.Config.Metrics.Enabled {
		path := a.Config.Metrics.PrometheusPath
		if path == "" {
			path = "/metrics"
		}
		router.GET(path, a.Middleware.RequireAdmin, a.MetricsHandler.Handler())
		a.Logger.Info("Endpoint de métricas Prometheus registrado", zap.String("path", path))
	}
}

// Close libera os recursos da aplicação
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
