package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/saldos-api/internal/application/auth"
	"github.com/jhoicas/saldos-api/internal/application/balances"
	"github.com/jhoicas/saldos-api/internal/application/usecase"
	"github.com/jhoicas/saldos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BalancesUC *balances.UseCase
	MaterialUC *usecase.MaterialUseCase
	CatalogUC  *usecase.CatalogUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Conciliación de saldos (protegido)
	balanceHandler := NewBalanceHandler(deps.BalancesUC)
	balancesGroup := protected.Group("/balances")
	balancesGroup.Get("/", balanceHandler.Compare)
	balancesGroup.Get("/report", balanceHandler.Report)

	// Materiales (consulta para todos; corrección solo admin)
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials := protected.Group("/materials")
	materials.Get("/search", materialHandler.Search)
	materials.Get("/:code", materialHandler.GetByCode)
	materials.Put("/:code", RequireRole(entity.RoleAdmin), materialHandler.Update)

	// Catálogos (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	protected.Get("/companies", catalogHandler.Companies)
	protected.Get("/groups", catalogHandler.Groups)
	protected.Get("/subgroups", catalogHandler.Subgroups)
}
