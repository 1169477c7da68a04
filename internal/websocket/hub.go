package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Messages for global broadcast to every client.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Messages targeted at one department's subscribers.
	targeted chan targetedMessage

	// A map of department IDs to the set of clients subscribed to it.
	subscriptions map[string]map[*Client]bool
}

type targetedMessage struct {
	departmentID string
	message      []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:     make(chan []byte),
		Register:      make(chan *Client),
		Unregister:    make(chan *Client),
		targeted:      make(chan targetedMessage),
		clients:       make(map[*Client]bool),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
			// Clients connected through a department endpoint are
			// subscribed to that department's feed on registration.
			if client.DepartmentID != "" {
				h.addSubscription(client, client.DepartmentID)
			}
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeSubscription(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		case tm := <-h.targeted:
			for client := range h.subscriptions[tm.departmentID] {
				select {
				case client.Send <- tm.message:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeSubscription(client)
				}
			}
		}
	}
}

// BroadcastTo queues a message for every client subscribed to a
// department. Delivery happens on the hub's loop, which owns the
// client maps, so this is safe to call from any goroutine.
func (h *Hub) BroadcastTo(departmentID string, message []byte) {
	h.targeted <- targetedMessage{departmentID: departmentID, message: message}
}

func (h *Hub) addSubscription(client *Client, departmentID string) {
	if h.subscriptions[departmentID] == nil {
		h.subscriptions[departmentID] = make(map[*Client]bool)
	}
	h.subscriptions[departmentID][client] = true
}

func (h *Hub) removeSubscription(client *Client) {
	for departmentID, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, departmentID)
			}
		}
	}
}
