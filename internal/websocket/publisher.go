package websocket

// EventPublisher defines the interface for publishing events to WebSocket clients
type EventPublisher interface {
	// Publish sends an event to all connected clients
	Publish(event Event)
}

// Publish implements EventPublisher by broadcasting to all clients
func (h *Hub) Publish(event Event) {
	h.Broadcast(event)
}

// Ensure Hub implements EventPublisher
var _ EventPublisher = (*Hub)(nil)
