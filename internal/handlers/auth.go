package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/guiapericial/internal/config"
	"github.com/yourorg/guiapericial/internal/mailer"
	"github.com/yourorg/guiapericial/internal/models"
	"github.com/yourorg/guiapericial/internal/store"
	"github.com/yourorg/guiapericial/internal/validation"
)

// AuthHandler atiende registro, verificación de correo y login.
type AuthHandler struct {
	store  store.Inscripciones
	sender mailer.Sender
	cfg    config.Config
}

func NewAuthHandler(st store.Inscripciones, sender mailer.Sender, cfg config.Config) *AuthHandler {
	return &AuthHandler{store: st, sender: sender, cfg: cfg}
}

// nuevoToken genera un token opaco de verificación: 32 bytes aleatorios en hex.
func nuevoToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// baseURL es la base pública para enlaces en correos: FRONTEND_URL si está
// configurada, si no el scheme+host de la petición entrante.
func (h *AuthHandler) baseURL(c *fiber.Ctx) string {
	if h.cfg.FrontendURL != "" {
		return h.cfg.FrontendURL
	}
	return strings.TrimRight(c.BaseURL(), "/")
}

// Registrar handles POST /send.
// Valida el formulario, comprueba unicidad del correo, guarda la inscripción
// con la contraseña hasheada y envía el correo de verificación.
func (h *AuthHandler) Registrar(c *fiber.Ctx) error {
	var req models.RegistroRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Todos los campos son obligatorios."})
	}

	req.Nombre = strings.TrimSpace(req.Nombre)
	req.Apellido = strings.TrimSpace(req.Apellido)
	req.Correo = strings.TrimSpace(strings.ToLower(req.Correo))

	// Primer campo vacío en orden de declaración; la respuesta al cliente
	// es el mensaje genérico del formulario.
	if err := validation.CamposRequeridos(
		validation.Campo{Nombre: "nombre", Valor: req.Nombre},
		validation.Campo{Nombre: "apellido", Valor: req.Apellido},
		validation.Campo{Nombre: "correo", Valor: req.Correo},
		validation.Campo{Nombre: "contrasena", Valor: req.Contrasena},
		validation.Campo{Nombre: "direccion", Valor: req.Direccion},
		validation.Campo{Nombre: "ciudad", Valor: req.Ciudad},
		validation.Campo{Nombre: "cp", Valor: req.CP},
		validation.Campo{Nombre: "pais", Valor: req.Pais},
	); err != nil {
		log.Printf("[REGISTRO] %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Todos los campos son obligatorios."})
	}

	// Pre-lectura de unicidad; el índice único cubre la carrera.
	if _, err := h.store.BuscarPorCorreo(c.Context(), req.Correo); err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Este correo ya está registrado."})
	} else if !errors.Is(err, store.ErrNoEncontrado) {
		log.Printf("❌ Error consultando inscripción: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Error en el servidor al guardar o enviar el correo."})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Error en el servidor al guardar o enviar el correo."})
	}

	token, err := nuevoToken()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Error en el servidor al guardar o enviar el correo."})
	}

	ins := &models.Inscripcion{
		Nombre:     req.Nombre,
		Apellido:   req.Apellido,
		Correo:     req.Correo,
		Contrasena: string(hash),
		Direccion:  req.Direccion,
		Ciudad:     req.Ciudad,
		CP:         req.CP,
		Pais:       req.Pais,
		Verificado: false,
		Token:      token,
	}
	if err := h.store.Crear(c.Context(), ins); err != nil {
		if errors.Is(err, store.ErrDuplicado) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Este correo ya está registrado."})
		}
		log.Printf("❌ Error al registrar usuario: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Error en el servidor al guardar o enviar el correo."})
	}

	enlace := fmt.Sprintf("%s/verificar?token=%s", h.baseURL(c), token)
	correo := mailer.Mensaje{
		DeNombre: "Guía Técnica Pericial",
		Para:     req.Correo,
		Asunto:   "Verifica tu correo",
		HTML: fmt.Sprintf(`
			<h3>Hola %s %s,</h3>
			<p>Gracias por tu interés. Haz clic en el siguiente enlace para verificar tu correo:</p>
			<a href="%s">%s</a>
			<br><br><small>Este mensaje es automático, por favor no respondas.</small>
		`, nl2br(req.Nombre), nl2br(req.Apellido), enlace, enlace),
	}

	// El envío es síncrono: si falla, la inscripción ya quedó guardada y el
	// cliente recibe un 500 (inconsistencia aceptada, remediación manual).
	if err := h.sender.Enviar(correo); err != nil {
		log.Printf("❌ Error enviando correo de verificación a %s: %v", req.Correo, err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Error en el servidor al guardar o enviar el correo."})
	}

	return c.Status(fiber.StatusOK).JSON(models.MensajeResponse{Message: "Correo de verificación enviado correctamente."})
}

// Verificar handles GET /verificar?token=.
// Canjea el token (un solo uso) y redirige a la página estática de confirmación.
func (h *AuthHandler) Verificar(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).SendString("Token inválido.")
	}

	if _, err := h.store.Verificar(c.Context(), token); err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			return c.Status(fiber.StatusNotFound).SendString("Token no encontrado o expirado.")
		}
		log.Printf("❌ Error en la verificación: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Error al verificar el correo.")
	}

	return c.Redirect("/verificado.html", fiber.StatusFound)
}

// Login handles POST /login.
// Sin sesión ni token: devuelve los datos básicos y el cliente recuerda su
// estado por su cuenta. La contraseña se comprueba antes que el flag de
// verificación.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Todos los campos son obligatorios."})
	}
	req.Correo = strings.TrimSpace(strings.ToLower(req.Correo))
	if req.Correo == "" || req.Contrasena == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Todos los campos son obligatorios."})
	}

	ins, err := h.store.BuscarPorCorreo(c.Context(), req.Correo)
	if err != nil {
		if errors.Is(err, store.ErrNoEncontrado) {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Usuario no encontrado."})
		}
		log.Printf("❌ Error en login: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "Error del servidor"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ins.Contrasena), []byte(req.Contrasena)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Contraseña incorrecta."})
	}

	if !ins.Verificado {
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: "Debes verificar tu correo antes de iniciar sesión."})
	}

	return c.Status(fiber.StatusOK).JSON(models.LoginResponse{
		Message:  "Inicio de sesión exitoso",
		Nombre:   ins.Nombre,
		Apellido: ins.Apellido,
		Correo:   ins.Correo,
	})
}
