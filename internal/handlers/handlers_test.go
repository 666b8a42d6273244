package handlers_test

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/yourorg/guiapericial/internal/config"
	"github.com/yourorg/guiapericial/internal/handlers"
	"github.com/yourorg/guiapericial/internal/mailer"
	"github.com/yourorg/guiapericial/internal/store"
)

// grabadorCorreos es un Sender que graba los mensajes enviados. Los
// despachos asíncronos se sincronizan por el canal notifica.
type grabadorCorreos struct {
	mu       sync.Mutex
	enviados []mailer.Mensaje
	notifica chan mailer.Mensaje
	fallar   bool
}

func newGrabador() *grabadorCorreos {
	return &grabadorCorreos{notifica: make(chan mailer.Mensaje, 8)}
}

func (g *grabadorCorreos) Enviar(m mailer.Mensaje) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.fallar {
		return errors.New("smtp: conexión rechazada")
	}
	g.enviados = append(g.enviados, m)
	select {
	case g.notifica <- m:
	default:
	}
	return nil
}

func (g *grabadorCorreos) mensajes() []mailer.Mensaje {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]mailer.Mensaje, len(g.enviados))
	copy(out, g.enviados)
	return out
}

func configPrueba(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Puerto:       "3001",
		AdminEmail:   "admin@example.com",
		EmailFrom:    "noreply@example.com",
		MaxFreeChars: 500,
		UploadDir:    t.TempDir(),
	}
}

// appPrueba levanta una app Fiber con las mismas rutas y manejo de errores
// que el servidor real, sobre el almacén y el mailer indicados.
func appPrueba(st store.Inscripciones, sender mailer.Sender, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:    12 << 20,
		ErrorHandler: handlers.ErrorHandler,
	})

	auth := handlers.NewAuthHandler(st, sender, cfg)
	comprobantes := handlers.NewComprobantesHandler(sender, cfg)
	consultas := handlers.NewConsultasHandler(sender, cfg)

	app.Post("/send", auth.Registrar)
	app.Get("/verificar", auth.Verificar)
	app.Post("/login", auth.Login)
	app.Post("/enviar-comprobante", comprobantes.EnviarComprobante)
	app.Post("/consultas/gratis", consultas.Gratis)
	app.Post("/consultas/presupuesto", consultas.Presupuesto)
	return app
}

func peticionJSON(metodo, ruta, cuerpo string) *http.Request {
	req, _ := http.NewRequest(metodo, ruta, strings.NewReader(cuerpo))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func peticionFormulario(ruta string, valores url.Values) *http.Request {
	req, _ := http.NewRequest(http.MethodPost, ruta, strings.NewReader(valores.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// archivoPrueba describe el archivo de un formulario multipart de test.
type archivoPrueba struct {
	Campo     string
	Nombre    string
	TipoMIME  string
	Contenido []byte
}

func peticionMultipart(ruta string, campos map[string]string, archivo *archivoPrueba) *http.Request {
	var cuerpo bytes.Buffer
	w := multipart.NewWriter(&cuerpo)
	for k, v := range campos {
		_ = w.WriteField(k, v)
	}
	if archivo != nil {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name=%q; filename=%q`, archivo.Campo, archivo.Nombre))
		h.Set("Content-Type", archivo.TipoMIME)
		parte, _ := w.CreatePart(h)
		_, _ = parte.Write(archivo.Contenido)
	}
	_ = w.Close()

	req, _ := http.NewRequest(http.MethodPost, ruta, &cuerpo)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
