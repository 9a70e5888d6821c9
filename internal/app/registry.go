package app

import (
	"database/sql"

	"github.com/Satyam6458/HR-Management/internal/auth"
	"github.com/Satyam6458/HR-Management/internal/auth/token"
	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/department"
	"github.com/Satyam6458/HR-Management/internal/employee"
	"github.com/Satyam6458/HR-Management/internal/holiday"
	"github.com/Satyam6458/HR-Management/internal/leave"
	"github.com/Satyam6458/HR-Management/internal/leavetype"
	"github.com/Satyam6458/HR-Management/internal/ledger"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka"
	"github.com/Satyam6458/HR-Management/internal/middleware"
	"github.com/Satyam6458/HR-Management/internal/position"
	"github.com/Satyam6458/HR-Management/internal/rbac"
	"github.com/Satyam6458/HR-Management/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// Dependencies are the shared connections every module is built from.
// Redis is optional; without it list caching and idempotency are skipped.
type Dependencies struct {
	Config       *config.Config
	DB           *sql.DB
	GormDB       *gorm.DB
	Redis        *redis.Client
	Entitlements map[string]int
	Logger       *zap.Logger
}

// leaveOptions translates LEDGER_LOCK_MODE into the leave service's
// serialization strategy.
func leaveOptions(cfg config.LedgerConfig, outbox kafka.OutboxRepository) leave.Options {
	opts := leave.Options{Outbox: outbox}
	switch cfg.LockMode {
	case config.LockModeMutex:
		opts.Locker = ledger.NewKeyedMutex()
	case config.LockModeRow:
		opts.RowLock = true
	default:
		opts.Locker = ledger.NoopLocker{}
	}
	return opts
}

func newGuard(cfg *config.Config, issuer *token.Issuer, rbacService rbac.Service, rdb *redis.Client) middleware.Guard {
	return middleware.NewGuard(middleware.GuardConfig{
		Tokens: issuer,
		RBAC:   rbacService,
		Redis:  rdb,
		Rate:   rate.Limit(float64(cfg.Rate.PerMinute) / 60),
		Burst:  cfg.Rate.Burst,

		UserRate:  rate.Limit(float64(cfg.Rate.UserPerMinute) / 60),
		UserBurst: cfg.Rate.UserBurst,
	})
}

func registerModules(router *gin.Engine, deps Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = zap.L()
	}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(deps.GormDB)
	authRepo := auth.NewRepository(deps.GormDB)
	departmentRepo := department.NewRepository(deps.GormDB)
	employeeRepo := employee.NewRepository(deps.GormDB)
	holidayRepo := holiday.NewRepository(deps.GormDB)
	leaveRepo := leave.NewRepository(deps.GormDB)
	leaveTypeRepo := leavetype.NewRepository(deps.GormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.GormDB)
	positionRepo := position.NewRepository(deps.GormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer("")
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	issuer := token.NewIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	guard := newGuard(cfg, issuer, rbacService, deps.Redis)

	// --- Services ---
	authService := auth.NewService(authRepo, employeeRepo, auth.Options{
		Issuer:               issuer,
		EmployeeTokenEnabled: cfg.Auth.EmployeeTokenEnabled,
	}, logger)
	departmentService := department.NewService(deps.DB, departmentRepo, deps.Redis, logger)
	employeeService := employee.NewService(employeeRepo, deps.Entitlements, logger)
	holidayService := holiday.NewService(deps.DB, holidayRepo, deps.Redis, logger)
	leaveService := leave.NewServiceWithOptions(deps.DB, leaveRepo, leaveOptions(cfg.Ledger, outboxRepo), logger)
	leaveTypeService := leavetype.NewService(deps.DB, leaveTypeRepo, deps.Redis, logger)
	positionService := position.NewService(deps.DB, positionRepo, deps.Redis, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, logger).WithCookies(cfg.IsProduction(), int(cfg.Auth.TokenTTL.Seconds()))
	departmentHandler := department.NewHandler(departmentService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger).
		WithUploads(cfg.Upload.Dir, int64(cfg.Upload.MaxSizeMB)<<20)
	holidayHandler := holiday.NewHandler(holidayService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService, logger)
	positionHandler := position.NewHandler(positionService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("")
	{
		auth.RegisterRoutes(api, authHandler, guard)
		department.RegisterRoutes(api, departmentHandler, guard)
		employee.RegisterRoutes(api, employeeHandler, guard)
		holiday.RegisterRoutes(api, holidayHandler, guard)
		leave.RegisterRoutes(api, leaveHandler, guard)
		leavetype.RegisterRoutes(api, leaveTypeHandler, guard)
		position.RegisterRoutes(api, positionHandler, guard)
		rbac.RegisterRoutes(api, rbacHandler, guard)
	}

	return nil
}
