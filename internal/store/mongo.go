package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourorg/guiapericial/internal/models"
)

// Coleccion es el nombre de la colección de inscripciones.
const Coleccion = "inscripciones"

// MongoStore implementa Inscripciones sobre una colección de MongoDB.
type MongoStore struct {
	col *mongo.Collection
}

// NewMongo crea el adaptador sobre la base de datos dada.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection(Coleccion)}
}

// Collection expone la colección subyacente (para índices y health checks).
func (s *MongoStore) Collection() *mongo.Collection {
	return s.col
}

func (s *MongoStore) Crear(ctx context.Context, ins *models.Inscripcion) error {
	res, err := s.col.InsertOne(ctx, ins)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicado
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		ins.ID = oid
	}
	return nil
}

func (s *MongoStore) BuscarPorCorreo(ctx context.Context, correo string) (*models.Inscripcion, error) {
	var ins models.Inscripcion
	err := s.col.FindOne(ctx, bson.M{"correo": correo}).Decode(&ins)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &ins, nil
}

func (s *MongoStore) Verificar(ctx context.Context, token string) (*models.Inscripcion, error) {
	// $set + $unset en una sola operación: el canje es atómico y el token
	// queda inutilizable para un segundo intento.
	actualizar := bson.M{
		"$set":   bson.M{"verificado": true},
		"$unset": bson.M{"token": ""},
	}
	var ins models.Inscripcion
	err := s.col.FindOneAndUpdate(ctx, bson.M{"token": token}, actualizar,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&ins)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoEncontrado
	}
	if err != nil {
		return nil, err
	}
	return &ins, nil
}
