package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"printhub/internal/auth"
	"printhub/internal/http/middleware"
	"printhub/internal/service"
)

// Services bundles the application services the routes depend on.
type Services struct {
	Documents service.DocumentService
	Users     service.UserService
	Printers  service.PrinterService
	Passwords service.PasswordService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, jwt *auth.JWTManager, log *zap.Logger, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	userOnly := middleware.RequireAuth(jwt, log, auth.RoleUser)
	printerOnly := middleware.RequireAuth(jwt, log, auth.RolePrinter)
	anyAccount := middleware.RequireAuth(jwt, log)

	// Accounts
	users := app.Group("/users")
	users.Post("/register", RegisterUser(svcs.Users))
	users.Post("/login", LoginUser(svcs.Users))
	users.Get("/me", userOnly, UserProfile(svcs.Users))
	users.Put("/me/password", userOnly, ChangeUserPassword(svcs.Users))
	users.Get("/me/documents", userOnly, ListOwnerDocuments(svcs.Documents))

	printers := app.Group("/printers")
	printers.Post("/register", RegisterPrinter(svcs.Printers))
	printers.Post("/login", LoginPrinter(svcs.Printers))
	printers.Get("/", anyAccount, ListPrinters(svcs.Printers))
	printers.Get("/me", printerOnly, PrinterProfile(svcs.Printers))
	printers.Put("/me/address", printerOnly, UpdatePrinterAddress(svcs.Printers))
	printers.Put("/me/password", printerOnly, ChangePrinterPassword(svcs.Printers))
	printers.Get("/me/documents", printerOnly, ListPrinterDocuments(svcs.Documents))

	// Password recovery works for both account kinds.
	app.Post("/forgot-password", ForgotPassword(svcs.Passwords))
	app.Post("/reset-password/:token", ResetPassword(svcs.Passwords))

	// Documents
	docs := app.Group("/documents")
	docs.Post("/", userOnly, UploadDocument(svcs.Documents))
	docs.Get("/:id", anyAccount, GetDocument(svcs.Documents))
	docs.Get("/:id/file", anyAccount, DownloadDocument(svcs.Documents))
	docs.Put("/:id/status", printerOnly, UpdateDocumentStatus(svcs.Documents))
	docs.Delete("/:id", anyAccount, DeleteDocument(svcs.Documents))
}
