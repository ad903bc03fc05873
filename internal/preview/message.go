package preview

// MessageType identifies a preview message.
type MessageType string

const (
	// MessageHTML carries the mount point's content after a render.
	MessageHTML MessageType = "html"

	// MessageError reports a failure to the client.
	MessageError MessageType = "error"

	// MessageEvent forwards a DOM event from the client.
	MessageEvent MessageType = "event"

	// MessageHash forwards a location fragment change from the client.
	MessageHash MessageType = "hash"
)

// ServerMessage is sent to the browser.
type ServerMessage struct {
	Type     MessageType `json:"type"`
	HTML     string      `json:"html,omitempty"`
	Hash     string      `json:"hash"`
	Revision uint64      `json:"revision,omitempty"`
	Code     string      `json:"code,omitempty"`
	Error    string      `json:"error,omitempty"`
}

// ClientMessage is received from the browser.
type ClientMessage struct {
	Type MessageType `json:"type"`

	// Path addresses the event target by element-child indexes below the
	// mount point.
	Path  []int   `json:"path,omitempty"`
	Event string  `json:"event,omitempty"`
	Key   string  `json:"key,omitempty"`
	Value *string `json:"value,omitempty"`

	Hash string `json:"hash,omitempty"`
}
