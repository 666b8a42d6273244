package handlers

import (
	"fmt"
	"html"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/yourorg/guiapericial/internal/config"
	"github.com/yourorg/guiapericial/internal/mailer"
	"github.com/yourorg/guiapericial/internal/uploads"
	"github.com/yourorg/guiapericial/internal/validation"
)

// ComprobantesHandler recibe comprobantes de pago y los reenvía por correo.
type ComprobantesHandler struct {
	sender mailer.Sender
	cfg    config.Config
}

func NewComprobantesHandler(sender mailer.Sender, cfg config.Config) *ComprobantesHandler {
	return &ComprobantesHandler{sender: sender, cfg: cfg}
}

// paginaGracias construye la URL de redirección de éxito de los formularios.
func paginaGracias(cfg config.Config) string {
	if cfg.FrontendURL != "" {
		return cfg.FrontendURL + "/gracias.html"
	}
	return "/gracias.html"
}

// EnviarComprobante handles POST /enviar-comprobante (multipart).
// Valida y responde de inmediato con la redirección; los correos (admin con
// adjunto, usuario sin adjunto) se despachan después, en segundo plano, y el
// archivo temporal se elimina cuando ambos terminan.
func (h *ComprobantesHandler) EnviarComprobante(c *fiber.Ctx) error {
	// Copias: los correos salen tras responder y el contexto se recicla.
	nombre := utils.CopyString(c.FormValue("nombre"))
	correo := utils.CopyString(c.FormValue("correo"))
	concepto := utils.CopyString(c.FormValue("concepto"))

	archivo, err := uploads.Guardar(c, "comprobante", uploads.Opciones{
		Dir:        h.cfg.UploadDir,
		Permitidos: uploads.TiposComprobante,
		MaxBytes:   uploads.MaxComprobante,
	})
	if err != nil {
		// formato/tamaño: lo mapea el ErrorHandler (400/413)
		return err
	}

	log.Printf("[FORM] nombre: %q correo: %q concepto: %q file? %v", nombre, correo, concepto, archivo != nil)

	if validation.CamposRequeridos(
		validation.Campo{Nombre: "nombre", Valor: nombre},
		validation.Campo{Nombre: "correo", Valor: correo},
		validation.Campo{Nombre: "concepto", Valor: concepto},
	) != nil || archivo == nil {
		archivo.Eliminar()
		return c.Status(fiber.StatusBadRequest).SendString("Faltan datos del formulario.")
	}

	if !validation.CorreoValido(correo) {
		archivo.Eliminar()
		return c.Status(fiber.StatusBadRequest).SendString("El correo del usuario no es válido.")
	}

	// Redirige YA al usuario (no bloquea por SMTP)
	if err := c.Redirect(paginaGracias(h.cfg), fiber.StatusFound); err != nil {
		archivo.Eliminar()
		return err
	}

	admin := mailer.Mensaje{
		DeNombre: "Comprobantes",
		Para:     h.cfg.AdminEmail,
		Asunto:   fmt.Sprintf("Comprobante de pago - %s - %s", concepto, nombre),
		HTML: fmt.Sprintf(`
			<h3>Nuevo comprobante de pago</h3>
			<p><b>Nombre:</b> %s</p>
			<p><b>Correo:</b> %s</p>
			<p><b>Concepto:</b> %s</p>
		`, html.EscapeString(nombre), html.EscapeString(correo), html.EscapeString(concepto)),
		AdjuntoRuta:   archivo.Ruta,
		AdjuntoNombre: archivo.NombreOriginal,
	}

	usuario := mailer.Mensaje{
		DeNombre: "Guía Técnica Pericial",
		Para:     correo,
		Asunto:   "Hemos recibido tu comprobante de pago",
		HTML:     h.htmlGraciasUsuario(nombre, correo, concepto),
	}

	despacharCorreos(h.sender, admin, usuario, archivo.Eliminar)
	return nil
}

// htmlGraciasUsuario es el correo de confirmación al usuario, con el CTA de
// vuelta a la zona privada construido sobre la base pública.
func (h *ComprobantesHandler) htmlGraciasUsuario(nombre, correo, concepto string) string {
	base := h.cfg.FrontendURL
	if base == "" {
		base = "http://localhost:" + h.cfg.Puerto
	}
	return fmt.Sprintf(`
		<!doctype html><html><head><meta charset="utf-8"><title>Confirmación de envío</title></head>
		<body style="font-family:Arial,Helvetica,sans-serif; background:#f8f8f3; margin:0; padding:20px;">
		  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0"
		         style="max-width:600px;margin:0 auto;background:#ffffff;border:1px solid #e5e5e5;border-radius:8px;">
		    <tr><td style="padding:24px; text-align:center;">
		      <h1 style="color:#198754; margin:0 0 12px 0;">✅ ¡Gracias, %s!</h1>
		      <p style="margin:0 0 16px 0; color:#333;">Hemos recibido tu comprobante de pago correctamente.</p>
		      <p style="margin:0 0 16px 0; color:#333;">
		        <b>Concepto:</b> %s<br>
		        <b>Correo:</b> %s
		      </p>
		      <p style="margin:0 0 16px 0; color:#333;">En breve verificaremos la información y te contactaremos.</p>
		      <div style="margin-top:24px;">
		        <a href="%s/zona-privada.html"
		           style="background:#9DA588;color:#fff;text-decoration:none;padding:10px 16px;border-radius:6px;display:inline-block;">
		          Volver a la Zona Privada
		        </a>
		      </div>
		    </td></tr>
		  </table>
		  <p style="text-align:center; color:#888; font-size:12px; margin-top:12px;">
		    Este mensaje es automático. No respondas a este correo.
		  </p>
		</body></html>
	`, html.EscapeString(nombre), html.EscapeString(concepto), html.EscapeString(correo), base)
}
