// Package mailer envía los correos transaccionales del sitio por SMTP.
package mailer

import (
	"gopkg.in/gomail.v2"

	"github.com/yourorg/guiapericial/internal/config"
)

// Mensaje es un correo saliente. AdjuntoRuta apunta a un archivo local
// temporal; AdjuntoNombre es el nombre con el que viaja el adjunto.
type Mensaje struct {
	DeNombre      string // nombre visible del remitente ("Consultas", "Guía Técnica Pericial", ...)
	Para          string
	Asunto        string
	HTML          string
	AdjuntoRuta   string
	AdjuntoNombre string
}

// Sender envía un mensaje. La implementación SMTP se comparte entre todos
// los handlers; los tests usan un doble que graba los mensajes.
type Sender interface {
	Enviar(m Mensaje) error
}

// SMTP implementa Sender con un dialer gomail construido una vez en el arranque.
type SMTP struct {
	dialer *gomail.Dialer
	de     string
}

// NewSMTP construye el transporte a partir de la configuración.
func NewSMTP(cfg config.Config) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		de:     cfg.EmailFrom,
	}
}

func (s *SMTP) Enviar(m Mensaje) error {
	msg := gomail.NewMessage()
	if m.DeNombre != "" {
		msg.SetAddressHeader("From", s.de, m.DeNombre)
	} else {
		msg.SetHeader("From", s.de)
	}
	msg.SetHeader("To", m.Para)
	msg.SetHeader("Subject", m.Asunto)
	msg.SetBody("text/html", m.HTML)
	if m.AdjuntoRuta != "" {
		if m.AdjuntoNombre != "" {
			msg.Attach(m.AdjuntoRuta, gomail.Rename(m.AdjuntoNombre))
		} else {
			msg.Attach(m.AdjuntoRuta)
		}
	}
	return s.dialer.DialAndSend(msg)
}
