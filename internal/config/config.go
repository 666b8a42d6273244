package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config agrupa toda la configuración del backend leída de variables de entorno.
// Se construye una sola vez en el arranque y se comparte de solo lectura.
type Config struct {
	Puerto string // puerto HTTP de escucha

	// MongoDB
	MongoURI string
	DBNombre string

	// SMTP
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	// Remitente y destino de notificaciones
	EmailFrom  string // dirección remitente de todos los correos
	AdminEmail string // buzón del administrador

	// FRONTEND_URL: base pública para construir enlaces de verificación y CTAs.
	// Si está vacía se usa el scheme+host de la petición entrante.
	FrontendURL string

	MaxFreeChars int    // tope de caracteres de la consulta gratuita
	UploadDir    string // directorio temporal de subidas
	PublicDir    string // archivos estáticos (gracias.html, verificado.html, ...)
}

// Load lee la configuración desde el entorno aplicando valores por defecto.
func Load() Config {
	cfg := Config{
		Puerto:       getenv("PORT", "3001"),
		MongoURI:     getenv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBNombre:     getenv("DB_NAME", "guiapericial"),
		SMTPHost:     getenv("SMTP_HOST", "127.0.0.1"),
		SMTPPort:     getenvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
		FrontendURL:  strings.TrimRight(os.Getenv("FRONTEND_URL"), "/"),
		MaxFreeChars: getenvInt("MAX_FREE_CHARS", 500),
		UploadDir:    getenv("UPLOAD_DIR", "uploads"),
		PublicDir:    getenv("PUBLIC_DIR", "public"),
	}

	// EMAIL_FROM cae al usuario SMTP, igual que el transporte original
	cfg.EmailFrom = getenv("EMAIL_FROM", cfg.SMTPUser)

	if cfg.AdminEmail == "" {
		log.Println("⚠️  ADMIN_EMAIL no configurado: las notificaciones al administrador fallarán")
	}
	return cfg
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("valor inválido %s=%q, usando %d", key, v, def)
		return def
	}
	return n
}
