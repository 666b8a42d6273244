package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler responde el health check del backend.
type HealthHandler struct {
	client *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// Health handles GET /health. Hace ping a MongoDB con timeout corto;
// si el almacén no responde el servicio se reporta degradado.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	if h.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := h.client.Ping(ctx, nil); err != nil {
			log.Printf("⚠️  health: base de datos sin respuesta: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).SendString("degraded")
		}
	}
	return c.SendString("OK")
}
