package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stock-register/internal/application/analytics"
	"github.com/jhoicas/stock-register/internal/application/audit"
	"github.com/jhoicas/stock-register/internal/application/inventory"
	"github.com/jhoicas/stock-register/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements     *inventory.MovementUseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Trail         *audit.Trail
	Dashboard     *appanalytics.DashboardUseCase
	Overview      *appanalytics.BranchOverviewUseCase
	Hub           *ws.Hub // opcional; sin hub no se registra /ws
	JWTSecret     string
	JWTIssuer     string
}

const localScope = "ws_scope"

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	api := app.Group("/api", auth)

	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Replenishment)
	api.Get("/catalog", inventoryHandler.GetCatalog)
	api.Get("/stock", inventoryHandler.GetStock)
	api.Get("/stock/replenishment", inventoryHandler.GetReplenishmentList)
	api.Get("/notifications", inventoryHandler.GetNotifications)

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Movements, deps.Trail)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Put("/:id", movementHandler.Edit)
	movements.Delete("/:id", movementHandler.Delete)

	reports := api.Group("/reports")
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	reports.Get("/summary", dashboardHandler.GetSummary)
	reports.Get("/daily", dashboardHandler.GetDaily)

	headOffice := api.Group("/head-office", RequireRole(entity.RoleHeadOffice))
	headOfficeHandler := NewHeadOfficeHandler(deps.Overview)
	headOffice.Get("/branches", headOfficeHandler.GetBranches)
	headOffice.Get("/employees", headOfficeHandler.GetEmployees)
	headOffice.Get("/suppliers", headOfficeHandler.GetSuppliers)

	auditGroup := api.Group("/audit")
	auditHandler := NewAuditHandler(deps.Trail)
	auditGroup.Get("/edits", auditHandler.GetEdits)
	auditGroup.Get("/deletions", auditHandler.GetDeletions)

	if deps.Hub != nil {
		hub := deps.Hub
		app.Use("/ws", auth, func(c *fiber.Ctx) error {
			if !websocket.IsWebSocketUpgrade(c) {
				return c.SendStatus(fiber.StatusUpgradeRequired)
			}
			scope, err := ResolveScope(c)
			if err != nil {
				return writeError(c, err)
			}
			c.Locals(localScope, scope)
			return c.Next()
		})
		app.Get("/ws", websocket.New(func(c *websocket.Conn) {
			scope, _ := c.Locals(localScope).(domaininv.BranchScope)
			hub.Serve(c, scope)
		}))
	}
}
