package handlers

import (
	"fmt"
	"html"
	"log"
	"strings"
	"sync"

	"github.com/yourorg/guiapericial/internal/debug"
	"github.com/yourorg/guiapericial/internal/mailer"
)

// despacharCorreos lanza los dos correos (admin y usuario) en paralelo,
// sin bloquear la respuesta ya enviada al cliente. Cada envío es
// independiente y best-effort: un fallo se loguea y nada más, no hay
// reintento ni aviso al remitente. Cuando ambos terminan se ejecuta
// `despues` (limpieza del archivo temporal), con éxito o sin él.
func despacharCorreos(s mailer.Sender, admin, usuario mailer.Mensaje, despues func()) {
	go func() {
		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			enviarYLoguear(s, admin, "[MAIL ADMIN]")
		}()
		go func() {
			defer wg.Done()
			enviarYLoguear(s, usuario, "[MAIL USER ]")
		}()

		wg.Wait()
		if despues != nil {
			despues()
		}
	}()
}

func enviarYLoguear(s mailer.Sender, m mailer.Mensaje, tag string) {
	if err := s.Enviar(m); err != nil {
		log.Printf("%s rejected %s: %v", tag, m.Para, err)
		debug.MailEvent(m.Para, m.Asunto, "fallido", err)
		return
	}
	log.Printf("%s fulfilled %s", tag, m.Para)
	debug.MailEvent(m.Para, m.Asunto, "enviado", nil)
}

// nl2br escapa el texto del usuario y convierte saltos de línea en <br>
// para los cuerpos HTML de los correos.
func nl2br(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// filaOpcional genera la fila de asunto solo si el usuario lo rellenó.
func filaOpcional(etiqueta, valor string) string {
	if strings.TrimSpace(valor) == "" {
		return ""
	}
	return fmt.Sprintf("<p><b>%s:</b> %s</p>", etiqueta, html.EscapeString(valor))
}
