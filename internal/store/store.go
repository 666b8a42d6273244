// Package store es el adaptador de persistencia para las inscripciones.
// Es el único mutador del documento: los handlers nunca retienen una
// inscripción cargada entre peticiones.
package store

import (
	"context"
	"errors"

	"github.com/yourorg/guiapericial/internal/models"
)

var (
	// ErrDuplicado indica que ya existe una inscripción con ese correo.
	ErrDuplicado = errors.New("correo ya registrado")
	// ErrNoEncontrado indica que no hay inscripción para la búsqueda dada.
	ErrNoEncontrado = errors.New("inscripción no encontrada")
)

// Inscripciones expone las operaciones de persistencia que usan los handlers.
type Inscripciones interface {
	// Crear inserta una inscripción nueva. Devuelve ErrDuplicado si el
	// correo ya está registrado.
	Crear(ctx context.Context, ins *models.Inscripcion) error

	// BuscarPorCorreo devuelve la inscripción con ese correo o ErrNoEncontrado.
	BuscarPorCorreo(ctx context.Context, correo string) (*models.Inscripcion, error)

	// Verificar canjea un token de verificación: marca verificado=true y
	// elimina el token en una sola operación. El token es de un solo uso,
	// por lo que un segundo canje devuelve ErrNoEncontrado.
	Verificar(ctx context.Context, token string) (*models.Inscripcion, error)
}
