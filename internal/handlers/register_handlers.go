package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
	portssvc "github.com/visit2sat/banking-ledger/internal/core/ports/services"
	"github.com/visit2sat/banking-ledger/internal/middleware"
	"github.com/visit2sat/banking-ledger/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	registerValidations()

	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerTransactionRoutes(v1, services.Transaction, movementRateLimit(cfg))
}

// movementRateLimit builds the per-IP rate limiter applied to movement
// processing.
func movementRateLimit(cfg *config.Config) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(cfg.TxnRateLimit)
	if err != nil {
		// Fall back to the documented default rather than refusing to start.
		rate, _ = limiter.NewRateFromFormatted("60-M")
	}
	store := memory.NewStore()
	return middleware.RateLimit(limiter.New(store, rate))
}

// registerValidations installs custom binding validations on gin's
// validator engine.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountkind", func(fl validator.FieldLevel) bool {
			switch domain.AccountKind(fl.Field().String()) {
			case domain.Savings, domain.Current:
				return true
			}
			return false
		})
	}
}
