// Package ws difunde los eventos del log de movimientos a los clientes websocket conectados.
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/stock-register/internal/application/dto"
	"github.com/jhoicas/stock-register/internal/application/inventory"
	domaininv "github.com/jhoicas/stock-register/internal/domain/inventory"
	"github.com/jhoicas/stock-register/pkg/logger"
)

var _ inventory.Notifier = (*Hub)(nil)

// Conn lo que el hub necesita de una conexión; *websocket.Conn lo satisface.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type subscription struct {
	conn  Conn
	scope domaininv.BranchScope
}

// Hub registra clientes con su alcance y les reenvía solo los eventos de sus sucursales.
type Hub struct {
	clients    map[Conn]domaininv.BranchScope
	register   chan subscription
	unregister chan Conn
	broadcast  chan dto.StockEventDTO
	done       chan struct{} // se cierra cuando Run termina
	mutex      sync.Mutex
	log        *logger.Logger
}

// NewHub construye el hub. buffer es la capacidad de la cola de eventos pendientes.
func NewHub(log *logger.Logger, buffer int) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	if buffer <= 0 {
		buffer = 64
	}
	return &Hub{
		clients:    make(map[Conn]domaininv.BranchScope),
		register:   make(chan subscription),
		unregister: make(chan Conn),
		broadcast:  make(chan dto.StockEventDTO, buffer),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run atiende registros y difusiones hasta que ctx se cancele; entonces cierra todas las conexiones.
// Después de Run, Register cierra la conexión recibida y Unregister retorna sin bloquear.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.clients {
				_ = conn.Close()
				delete(h.clients, conn)
			}
			h.mutex.Unlock()
			return

		case sub := <-h.register:
			h.mutex.Lock()
			h.clients[sub.conn] = sub.scope
			n := len(h.clients)
			h.mutex.Unlock()
			h.log.Debug().Str("scope", sub.scope.String()).Int("clients", n).Msg("cliente ws conectado")

		case conn := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				_ = conn.Close()
			}
			h.mutex.Unlock()

		case event := <-h.broadcast:
			message, err := json.Marshal(event)
			if err != nil {
				h.log.Error().Err(err).Str("type", event.Type).Msg("serializar evento ws")
				continue
			}
			h.mutex.Lock()
			for conn, scope := range h.clients {
				if !scope.Includes(event.Branch) {
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					_ = conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// Publish encola el evento sin bloquear; si la cola está llena el evento se descarta.
func (h *Hub) Publish(event dto.StockEventDTO) {
	select {
	case h.broadcast <- event:
	default:
		h.log.Warn().Str("type", event.Type).Str("branch", event.Branch).Msg("cola ws llena, evento descartado")
	}
}

// Register suscribe conn a los eventos de scope.
func (h *Hub) Register(conn Conn, scope domaininv.BranchScope) {
	select {
	case h.register <- subscription{conn: conn, scope: scope}:
	case <-h.done:
		_ = conn.Close()
	}
}

// Unregister da de baja conn y la cierra.
func (h *Hub) Unregister(conn Conn) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Done se cierra cuando Run terminó.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Clients número de conexiones activas.
func (h *Hub) Clients() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Serve mantiene abierta una conexión websocket ya autenticada hasta que el cliente la cierre.
// Los mensajes entrantes se ignoran: el canal es solo de servidor a cliente.
func (h *Hub) Serve(c *websocket.Conn, scope domaininv.BranchScope) {
	h.Register(c, scope)
	defer h.Unregister(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
