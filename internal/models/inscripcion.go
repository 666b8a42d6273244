package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Inscripcion es el registro persistido de un alta de usuario, verificada o no.
// Contrasena guarda siempre el hash bcrypt, nunca el texto plano.
// Token existe solo mientras la cuenta está sin verificar; el canje lo elimina.
type Inscripcion struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Nombre     string             `bson:"nombre" json:"nombre"`
	Apellido   string             `bson:"apellido" json:"apellido"`
	Correo     string             `bson:"correo" json:"correo"`
	Contrasena string             `bson:"contrasena" json:"-"`
	Direccion  string             `bson:"direccion" json:"direccion"`
	Ciudad     string             `bson:"ciudad" json:"ciudad"`
	CP         string             `bson:"cp" json:"cp"`
	Pais       string             `bson:"pais" json:"pais"`
	Verificado bool               `bson:"verificado" json:"verificado"`
	Token      string             `bson:"token,omitempty" json:"-"`
}
