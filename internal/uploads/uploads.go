// Package uploads guarda archivos de formularios multipart en almacenamiento
// temporal local, aplicando las restricciones de tipo y tamaño de cada
// endpoint. Todo archivo guardado se elimina tras el despacho de correos o
// ante cualquier fallo de validación.
package uploads

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	// ErrFormatoNoPermitido indica un tipo MIME fuera de la lista del endpoint.
	ErrFormatoNoPermitido = errors.New("formato no permitido")
	// ErrArchivoDemasiadoGrande indica que el archivo supera el límite del endpoint.
	ErrArchivoDemasiadoGrande = errors.New("archivo demasiado grande")
)

// Límites por endpoint (coinciden con los formularios del sitio).
const (
	MaxComprobante int64 = 5 << 20  // 5 MiB
	MaxAdjunto     int64 = 10 << 20 // 10 MiB
)

// Tipos MIME aceptados por endpoint.
var (
	TiposComprobante = []string{"application/pdf", "image/png", "image/jpeg", "image/jpg"}
	TiposAdjunto     = []string{"application/pdf", "image/png", "image/jpeg", "image/jpg", "text/plain"}
)

// Opciones parametriza una subida.
type Opciones struct {
	Dir        string
	Permitidos []string
	MaxBytes   int64
}

// Archivo es una subida ya validada y persistida en disco temporal.
type Archivo struct {
	Ruta           string
	NombreOriginal string
	TipoMIME       string
	Tamano         int64
}

// Guardar valida y persiste el archivo del campo dado bajo un nombre
// aleatorio. Devuelve (nil, nil) si el campo no viene en el formulario:
// la obligatoriedad la decide cada handler.
func Guardar(c *fiber.Ctx, campo string, op Opciones) (*Archivo, error) {
	fh, err := c.FormFile(campo)
	if err != nil {
		return nil, nil
	}

	tipo := fh.Header.Get("Content-Type")
	if i := strings.IndexByte(tipo, ';'); i >= 0 {
		tipo = strings.TrimSpace(tipo[:i])
	}
	if !permitido(op.Permitidos, tipo) {
		return nil, ErrFormatoNoPermitido
	}
	if fh.Size > op.MaxBytes {
		return nil, ErrArchivoDemasiadoGrande
	}

	if err := os.MkdirAll(op.Dir, 0o755); err != nil {
		return nil, err
	}
	ruta := filepath.Join(op.Dir, uuid.NewString())
	if err := c.SaveFile(fh, ruta); err != nil {
		return nil, err
	}
	return &Archivo{
		Ruta:           ruta,
		NombreOriginal: fh.Filename,
		TipoMIME:       tipo,
		Tamano:         fh.Size,
	}, nil
}

// Eliminar borra el archivo temporal. Es incondicional y tolerante: un
// archivo ya ausente no es un error.
func (a *Archivo) Eliminar() {
	if a == nil || a.Ruta == "" {
		return
	}
	if err := os.Remove(a.Ruta); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️  no se pudo eliminar el archivo temporal %s: %v", a.Ruta, err)
	}
}

func permitido(lista []string, tipo string) bool {
	for _, t := range lista {
		if strings.EqualFold(t, tipo) {
			return true
		}
	}
	return false
}
