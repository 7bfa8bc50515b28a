package service

// Event names pushed to connected clients.
const (
	EventLevelUp            = "level_up"
	EventMarketSold         = "market_sold"
	EventCovenTaskCompleted = "coven_task_completed"
)

// Publisher delivers real-time events to a player's open connections.
// Implemented by the websocket hub; delivery is best-effort.
type Publisher interface {
	Publish(playerID int64, event string, payload any)
}

// NopPublisher drops every event; used in tests and tools.
type NopPublisher struct{}

func (NopPublisher) Publish(int64, string, any) {}
