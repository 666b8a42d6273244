package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/yourorg/guiapericial/internal/config"
	"github.com/yourorg/guiapericial/internal/debug"
	"github.com/yourorg/guiapericial/internal/handlers"
)

// Register monta todas las rutas del backend sobre la app Fiber.
func Register(app *fiber.App, cfg config.Config,
	auth *handlers.AuthHandler,
	comprobantes *handlers.ComprobantesHandler,
	consultas *handlers.ConsultasHandler,
	health *handlers.HealthHandler,
) {
	// Health check
	app.Get("/health", health.Health)

	// ============================================================================
	// REGISTRO Y AUTENTICACIÓN
	// ============================================================================
	app.Post("/send", auth.Registrar)
	app.Get("/verificar", auth.Verificar)
	app.Post("/login", auth.Login)

	// ============================================================================
	// COMPROBANTES DE PAGO
	// ============================================================================
	app.Post("/enviar-comprobante", comprobantes.EnviarComprobante)

	// ============================================================================
	// CONSULTAS (gratuita y de presupuesto)
	// ============================================================================
	app.Post("/consultas/gratis", consultas.Gratis)
	app.Post("/consultas/presupuesto", consultas.Presupuesto)

	// ============================================================================
	// DEBUG DASHBOARD WEBSOCKET
	// ============================================================================
	// Vista en vivo de los despachos de correo (los envíos son fire-and-forget).
	// Solo se monta con DEBUG_DASHBOARD=true.
	if debug.IsEnabled() {
		app.Use("/ws/debug", func(c *fiber.Ctx) error {
			if websocket.IsWebSocketUpgrade(c) {
				return c.Next()
			}
			return fiber.ErrUpgradeRequired
		})
		app.Get("/ws/debug", websocket.New(func(c *websocket.Conn) {
			debug.HandleWebSocketFiber(c)
		}))
	}

	// Archivos estáticos (gracias.html, verificado.html, zona-privada.html, ...)
	app.Static("/", cfg.PublicDir)
}
