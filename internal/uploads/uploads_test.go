package uploads

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// enviarArchivo pasa un multipart por un handler que llama a Guardar y
// devuelve el resultado.
func enviarArchivo(t *testing.T, op Opciones, campo, nombre, tipo string, contenido []byte) (*Archivo, error) {
	t.Helper()

	var cuerpo bytes.Buffer
	w := multipart.NewWriter(&cuerpo)
	if campo != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, campo, nombre))
		h.Set("Content-Type", tipo)
		parte, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		if _, err := parte.Write(contenido); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var archivo *Archivo
	var errGuardar error

	app := fiber.New()
	app.Post("/subir", func(c *fiber.Ctx) error {
		archivo, errGuardar = Guardar(c, "archivo", op)
		return c.SendString("ok")
	})

	req, _ := http.NewRequest(http.MethodPost, "/subir", &cuerpo)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if _, err := app.Test(req); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return archivo, errGuardar
}

func TestGuardarYEliminar(t *testing.T) {
	op := Opciones{Dir: t.TempDir(), Permitidos: TiposComprobante, MaxBytes: MaxComprobante}

	archivo, err := enviarArchivo(t, op, "archivo", "recibo.pdf", "application/pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Guardar: %v", err)
	}
	if archivo == nil {
		t.Fatal("expected archivo, got nil")
	}
	if archivo.NombreOriginal != "recibo.pdf" {
		t.Errorf("expected NombreOriginal 'recibo.pdf', got %q", archivo.NombreOriginal)
	}
	if archivo.TipoMIME != "application/pdf" {
		t.Errorf("expected TipoMIME 'application/pdf', got %q", archivo.TipoMIME)
	}

	// El archivo existe hasta que se elimina
	if _, err := os.Stat(archivo.Ruta); err != nil {
		t.Fatalf("expected saved file: %v", err)
	}
	archivo.Eliminar()
	if _, err := os.Stat(archivo.Ruta); !os.IsNotExist(err) {
		t.Errorf("expected file removed, got %v", err)
	}

	// Eliminar es tolerante: repetir no falla ni sobre nil
	archivo.Eliminar()
	var nulo *Archivo
	nulo.Eliminar()
}

func TestGuardarCampoAusente(t *testing.T) {
	op := Opciones{Dir: t.TempDir(), Permitidos: TiposComprobante, MaxBytes: MaxComprobante}

	// Sin parte de archivo: (nil, nil), la obligatoriedad la decide el handler
	archivo, err := enviarArchivo(t, op, "", "", "", nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if archivo != nil {
		t.Errorf("expected nil archivo, got %+v", archivo)
	}
}

func TestGuardarFormatoNoPermitido(t *testing.T) {
	op := Opciones{Dir: t.TempDir(), Permitidos: TiposComprobante, MaxBytes: MaxComprobante}

	_, err := enviarArchivo(t, op, "archivo", "nota.txt", "text/plain", []byte("hola"))
	if err != ErrFormatoNoPermitido {
		t.Errorf("expected ErrFormatoNoPermitido, got %v", err)
	}

	// Nada queda en disco tras el rechazo
	restos, _ := os.ReadDir(op.Dir)
	if len(restos) != 0 {
		t.Errorf("expected empty dir, found %d files", len(restos))
	}
}

func TestGuardarContentTypeConParametros(t *testing.T) {
	op := Opciones{Dir: t.TempDir(), Permitidos: TiposAdjunto, MaxBytes: MaxAdjunto}

	// "text/plain; charset=utf-8" cuenta como text/plain
	archivo, err := enviarArchivo(t, op, "archivo", "nota.txt", "text/plain; charset=utf-8", []byte("hola"))
	if err != nil {
		t.Fatalf("Guardar: %v", err)
	}
	if archivo.TipoMIME != "text/plain" {
		t.Errorf("expected normalized 'text/plain', got %q", archivo.TipoMIME)
	}
	archivo.Eliminar()
}

func TestGuardarDemasiadoGrande(t *testing.T) {
	op := Opciones{Dir: t.TempDir(), Permitidos: TiposComprobante, MaxBytes: 16}

	_, err := enviarArchivo(t, op, "archivo", "recibo.pdf", "application/pdf", bytes.Repeat([]byte{'x'}, 17))
	if err != ErrArchivoDemasiadoGrande {
		t.Errorf("expected ErrArchivoDemasiadoGrande, got %v", err)
	}
}
