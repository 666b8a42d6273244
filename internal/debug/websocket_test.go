package debug

import (
	"testing"
	"time"

	"github.com/gofiber/websocket/v2"
)

func nuevoHubPrueba() *WebSocketHub {
	return &WebSocketHub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]bool),
	}
}

// hasClients debe poder consultarse mientras run() registra clientes;
// con -race esto delata cualquier lectura del mapa fuera del lock.
func TestHubHasClientsConcurrente(t *testing.T) {
	h := nuevoHubPrueba()
	go h.run()

	if h.hasClients() {
		t.Fatal("hub recién creado no debería tener clientes")
	}

	listo := make(chan struct{})
	go func() {
		defer close(listo)
		for i := 0; i < 1000; i++ {
			h.hasClients()
		}
	}()

	h.register <- &websocket.Conn{}
	<-listo

	limite := time.Now().Add(2 * time.Second)
	for !h.hasClients() {
		if time.Now().After(limite) {
			t.Fatal("el hub no registró al cliente")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
