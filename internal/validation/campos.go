package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// correoRegex exige parte-local "@" dominio-con-punto, sin espacios.
var correoRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CorreoValido hace la comprobación sintáctica básica de un correo.
func CorreoValido(correo string) bool {
	return correoRegex.MatchString(correo)
}

// CampoFaltante representa un campo obligatorio ausente o vacío.
type CampoFaltante struct {
	Campo string
}

func (e *CampoFaltante) Error() string {
	return fmt.Sprintf("falta el campo obligatorio %q", e.Campo)
}

// Campo empareja el nombre de un campo del formulario con su valor.
type Campo struct {
	Nombre string
	Valor  string
}

// CamposRequeridos devuelve un *CampoFaltante para el primer campo vacío,
// en el orden declarado, o nil si todos están presentes.
func CamposRequeridos(campos ...Campo) error {
	for _, c := range campos {
		if strings.TrimSpace(c.Valor) == "" {
			return &CampoFaltante{Campo: c.Nombre}
		}
	}
	return nil
}
