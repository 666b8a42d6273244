package handlers

import (
	"fmt"
	"html"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/yourorg/guiapericial/internal/config"
	"github.com/yourorg/guiapericial/internal/mailer"
	"github.com/yourorg/guiapericial/internal/uploads"
	"github.com/yourorg/guiapericial/internal/validation"
)

// ConsultasHandler atiende las dos variantes de consulta del sitio:
// la gratuita (texto corto, sin adjuntos) y la de pago/presupuesto
// (descripción más adjunto opcional).
type ConsultasHandler struct {
	sender mailer.Sender
	cfg    config.Config
}

func NewConsultasHandler(sender mailer.Sender, cfg config.Config) *ConsultasHandler {
	return &ConsultasHandler{sender: sender, cfg: cfg}
}

// Gratis handles POST /consultas/gratis (urlencoded).
func (h *ConsultasHandler) Gratis(c *fiber.Ctx) error {
	// FormValue devuelve memoria del contexto reciclado de fasthttp; los
	// correos se despachan después de responder, así que hay que copiar.
	nombre := utils.CopyString(c.FormValue("nombre"))
	correo := utils.CopyString(c.FormValue("correo"))
	asunto := utils.CopyString(c.FormValue("asunto"))
	mensaje := utils.CopyString(c.FormValue("mensaje"))

	if validation.CamposRequeridos(
		validation.Campo{Nombre: "nombre", Valor: nombre},
		validation.Campo{Nombre: "correo", Valor: correo},
		validation.Campo{Nombre: "mensaje", Valor: mensaje},
	) != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Faltan datos.")
	}
	if !validation.CorreoValido(correo) {
		return c.Status(fiber.StatusBadRequest).SendString("Correo inválido.")
	}
	if utf8.RuneCountInString(mensaje) > h.cfg.MaxFreeChars {
		return c.Status(fiber.StatusBadRequest).
			SendString(fmt.Sprintf("La consulta gratuita admite hasta %d caracteres.", h.cfg.MaxFreeChars))
	}

	// Redirige ya; los correos salen en segundo plano
	if err := c.Redirect(paginaGracias(h.cfg), fiber.StatusFound); err != nil {
		return err
	}

	sujetoAdmin := "Consulta GRATUITA - " + nombre
	if asunto != "" {
		sujetoAdmin += " - " + asunto
	}
	admin := mailer.Mensaje{
		DeNombre: "Consultas",
		Para:     h.cfg.AdminEmail,
		Asunto:   sujetoAdmin,
		HTML: fmt.Sprintf(`
			<h3>Consulta GRATUITA recibida</h3>
			<p><b>Nombre:</b> %s</p>
			<p><b>Correo:</b> %s</p>
			%s
			<p><b>Mensaje:</b><br>%s</p>
		`, html.EscapeString(nombre), html.EscapeString(correo), filaOpcional("Asunto", asunto), nl2br(mensaje)),
	}

	usuario := mailer.Mensaje{
		DeNombre: "Guía Técnica Pericial",
		Para:     correo,
		Asunto:   "Hemos recibido tu consulta gratuita",
		HTML: fmt.Sprintf(`
			<h2>¡Gracias, %s!</h2>
			<p>Hemos recibido tu consulta gratuita. En breve te responderemos.</p>
			%s
			<p><b>Tu consulta:</b><br>%s</p>
		`, html.EscapeString(nombre), filaOpcional("Asunto", asunto), nl2br(mensaje)),
	}

	despacharCorreos(h.sender, admin, usuario, nil)
	return nil
}

// Presupuesto handles POST /consultas/presupuesto (multipart, adjunto opcional).
func (h *ConsultasHandler) Presupuesto(c *fiber.Ctx) error {
	nombre := utils.CopyString(c.FormValue("nombre"))
	correo := utils.CopyString(c.FormValue("correo"))
	asunto := utils.CopyString(c.FormValue("asunto"))
	descripcion := utils.CopyString(c.FormValue("descripcion"))

	adjunto, err := uploads.Guardar(c, "adjunto", uploads.Opciones{
		Dir:        h.cfg.UploadDir,
		Permitidos: uploads.TiposAdjunto,
		MaxBytes:   uploads.MaxAdjunto,
	})
	if err != nil {
		return err
	}

	if validation.CamposRequeridos(
		validation.Campo{Nombre: "nombre", Valor: nombre},
		validation.Campo{Nombre: "correo", Valor: correo},
		validation.Campo{Nombre: "descripcion", Valor: descripcion},
	) != nil {
		adjunto.Eliminar()
		return c.Status(fiber.StatusBadRequest).SendString("Faltan datos.")
	}
	if !validation.CorreoValido(correo) {
		adjunto.Eliminar()
		return c.Status(fiber.StatusBadRequest).SendString("Correo inválido.")
	}

	if err := c.Redirect(paginaGracias(h.cfg), fiber.StatusFound); err != nil {
		adjunto.Eliminar()
		return err
	}

	sujetoAdmin := "Consulta de PAGO (PRESUPUESTO) - " + nombre
	if asunto != "" {
		sujetoAdmin += " - " + asunto
	}
	admin := mailer.Mensaje{
		DeNombre: "Consultas",
		Para:     h.cfg.AdminEmail,
		Asunto:   sujetoAdmin,
		HTML: fmt.Sprintf(`
			<h3>Consulta de PAGO (para PRESUPUESTO)</h3>
			<p><b>Nombre:</b> %s</p>
			<p><b>Correo:</b> %s</p>
			%s
			<p><b>Descripción:</b><br>%s</p>
			<p><i>Revisar y responder al usuario con el precio y método de pago (PayPal).</i></p>
		`, html.EscapeString(nombre), html.EscapeString(correo), filaOpcional("Asunto", asunto), nl2br(descripcion)),
	}
	if adjunto != nil {
		admin.AdjuntoRuta = adjunto.Ruta
		admin.AdjuntoNombre = adjunto.NombreOriginal
	}

	// El usuario nunca recibe el adjunto de vuelta
	usuario := mailer.Mensaje{
		DeNombre: "Guía Técnica Pericial",
		Para:     correo,
		Asunto:   "Hemos recibido tu consulta (te enviaremos presupuesto)",
		HTML: fmt.Sprintf(`
			<h2>¡Gracias, %s!</h2>
			<p>Hemos recibido tu consulta. La revisaremos y te enviaremos un <b>presupuesto</b> en breve.</p>
			%s
			<p><b>Descripción enviada:</b><br>%s</p>
		`, html.EscapeString(nombre), filaOpcional("Asunto", asunto), nl2br(descripcion)),
	}

	despacharCorreos(h.sender, admin, usuario, adjunto.Eliminar)
	return nil
}
