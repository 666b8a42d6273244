package debug

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
)

// WebSocketHub maneja las conexiones WebSocket del dashboard de debugging
type WebSocketHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
}

var (
	Hub *WebSocketHub
)

func init() {
	Hub = &WebSocketHub{
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		clients:    make(map[*websocket.Conn]bool),
	}
	go Hub.run()
}

func (h *WebSocketHub) run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Dashboard conectado. Total clientes: %d", len(h.clients))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()
			log.Printf("🔌 Dashboard desconectado. Total clientes: %d", len(h.clients))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				err := client.WriteMessage(websocket.TextMessage, message)
				if err != nil {
					log.Printf("Error enviando mensaje al dashboard: %v", err)
					client.Close()
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// hasClients consulta bajo lock si hay dashboards conectados; run()
// muta el mapa concurrentemente.
func (h *WebSocketHub) hasClients() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients) > 0
}

// HandleWebSocketFiber maneja las conexiones WebSocket de Fiber
func HandleWebSocketFiber(conn *websocket.Conn) {
	Hub.register <- conn

	// Leer mensajes del cliente (para comandos futuros)
	defer func() {
		Hub.unregister <- conn
	}()

	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}
}

// MailEventMessage representa el resultado de un despacho de correo.
// Los envíos son fire-and-forget: el dashboard es la única vista en vivo
// de los fallos de entrega.
type MailEventMessage struct {
	Type      string `json:"type"`
	Destino   string `json:"destino"`
	Asunto    string `json:"asunto"`
	Estado    string `json:"estado"` // "enviado" | "fallido"
	Detalle   string `json:"detalle,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// SendMailEvent envía un evento de correo al dashboard
func SendMailEvent(destino, asunto, estado, detalle string) {
	if Hub == nil || !Hub.hasClients() {
		return
	}

	msg := MailEventMessage{
		Type:      "mail",
		Destino:   destino,
		Asunto:    asunto,
		Estado:    estado,
		Detalle:   detalle,
		Timestamp: time.Now().UnixMilli(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error al serializar evento de correo para dashboard: %v", err)
		return
	}

	select {
	case Hub.broadcast <- data:
	default:
	}
}
