package models

// RegistroRequest represents the registration form sent by the client.
type RegistroRequest struct {
	Nombre     string `json:"nombre" form:"nombre"`
	Apellido   string `json:"apellido" form:"apellido"`
	Correo     string `json:"correo" form:"correo"`
	Contrasena string `json:"contrasena" form:"contrasena"`
	Direccion  string `json:"direccion" form:"direccion"`
	Ciudad     string `json:"ciudad" form:"ciudad"`
	CP         string `json:"cp" form:"cp"`
	Pais       string `json:"pais" form:"pais"`
}

// LoginRequest represents credentials provided by the client.
type LoginRequest struct {
	Correo     string `json:"correo" form:"correo"`
	Contrasena string `json:"contrasena" form:"contrasena"`
}

// LoginResponse is returned upon successful authentication.
// Nunca incluye el hash de la contraseña.
type LoginResponse struct {
	Message  string `json:"message"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Correo   string `json:"correo"`
}

// MensajeResponse is a simple success shape for API responses.
type MensajeResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a simple error shape for API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}
