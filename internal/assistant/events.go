package assistant

// Role identifies the author of a transcript message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry of the transcript. Text grows while Streaming is set.
type Message struct {
	ID        int64  `json:"id"`
	Role      Role   `json:"role"`
	Text      string `json:"text"`
	Streaming bool   `json:"streaming,omitempty"`
}

// EventType names a controller notification.
type EventType string

const (
	EventOpened EventType = "opened"
	EventUpdate EventType = "update"
	EventFocus  EventType = "focus"
	EventClosed EventType = "closed"
)

// Snapshot is the complete panel state at one instant.
type Snapshot struct {
	Open      bool      `json:"open"`
	PageSlug  string    `json:"page_slug,omitempty"`
	PageTitle string    `json:"page_title,omitempty"`
	Messages  []Message `json:"messages"`
	Pending   bool      `json:"pending"`
	Input     string    `json:"input"`
}

// Event is delivered to subscribers after every state change.
type Event struct {
	Type     EventType `json:"type"`
	Snapshot Snapshot  `json:"snapshot"`
}

// subscriberBuffer is the per-subscriber queue length. When a subscriber
// falls behind, its oldest queued event is dropped.
const subscriberBuffer = 32

func deliver(ch chan Event, ev Event) {
	select {
	case ch <- ev:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- ev:
	default:
	}
}
