package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/guiapericial/internal/uploads"
)

// ErrorHandler es el manejador de errores de la app Fiber. Reconoce los
// errores de subida (tamaño y formato) y los mapea a sus códigos; todo lo
// demás se loguea y sale como 500 genérico.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, uploads.ErrArchivoDemasiadoGrande) {
		return c.Status(fiber.StatusRequestEntityTooLarge).SendString("Archivo demasiado grande.")
	}
	if errors.Is(err, uploads.ErrFormatoNoPermitido) {
		return c.Status(fiber.StatusBadRequest).SendString("Formato no permitido. Sube PDF, imagen o TXT.")
	}

	// fiber.ErrRequestEntityTooLarge (BodyLimit) y demás errores propios de Fiber
	var fe *fiber.Error
	if errors.As(err, &fe) {
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			return c.Status(fe.Code).SendString("Archivo demasiado grande.")
		}
		return c.Status(fe.Code).SendString(fe.Message)
	}

	log.Printf("❌ Error no manejado en %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).SendString("Error del servidor")
}
