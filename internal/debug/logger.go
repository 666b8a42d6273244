package debug

import (
	"log"
	"os"
)

var (
	enabled = false
)

func init() {
	// Leer la variable de entorno DEBUG_DASHBOARD
	enabled = os.Getenv("DEBUG_DASHBOARD") == "true"
	if enabled {
		log.Println("🐛 Debug Dashboard habilitado")
	}
}

// IsEnabled retorna si el dashboard de debugging está habilitado
func IsEnabled() bool {
	return enabled
}

// MailEvent notifica al dashboard el resultado de un envío de correo.
// destino y asunto identifican el mensaje; estado es "enviado" o "fallido".
func MailEvent(destino, asunto, estado string, err error) {
	if !enabled {
		return
	}
	detalle := ""
	if err != nil {
		detalle = err.Error()
	}
	SendMailEvent(destino, asunto, estado, detalle)
}
