package conversation

// EventKind classifies an inbound message.
type EventKind string

const (
	KindText     EventKind = "text"
	KindLocation EventKind = "location"
	KindImage    EventKind = "image"
	KindVideo    EventKind = "video"
	KindAudio    EventKind = "audio"
)

// Event is the minimal envelope the engine needs from the chat
// provider: who sent it, what kind it is, and the kind-specific
// payload. Wire-format parsing happens upstream.
type Event struct {
	From      string
	Kind      EventKind
	Text      string
	Latitude  float64
	Longitude float64
	MediaID   string
}
