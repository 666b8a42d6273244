package store

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yourorg/guiapericial/internal/models"
)

// Memoria es una implementación en memoria de Inscripciones.
// Se usa en tests y para levantar el servidor sin MongoDB.
type Memoria struct {
	mu        sync.RWMutex
	porCorreo map[string]*models.Inscripcion
}

// NewMemoria crea un almacén vacío.
func NewMemoria() *Memoria {
	return &Memoria{porCorreo: make(map[string]*models.Inscripcion)}
}

func (m *Memoria) Crear(_ context.Context, ins *models.Inscripcion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, existe := m.porCorreo[ins.Correo]; existe {
		return ErrDuplicado
	}
	if ins.ID.IsZero() {
		ins.ID = primitive.NewObjectID()
	}
	copia := *ins
	m.porCorreo[ins.Correo] = &copia
	return nil
}

func (m *Memoria) BuscarPorCorreo(_ context.Context, correo string) (*models.Inscripcion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ins, ok := m.porCorreo[correo]
	if !ok {
		return nil, ErrNoEncontrado
	}
	copia := *ins
	return &copia, nil
}

func (m *Memoria) Verificar(_ context.Context, token string) (*models.Inscripcion, error) {
	if token == "" {
		return nil, ErrNoEncontrado
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ins := range m.porCorreo {
		if ins.Token == token {
			ins.Verificado = true
			ins.Token = ""
			copia := *ins
			return &copia, nil
		}
	}
	return nil, ErrNoEncontrado
}
