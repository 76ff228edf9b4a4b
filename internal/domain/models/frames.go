package models

const (
	FrameFilter = "filter"
	FrameClick  = "click"
)

// ClientFrame is a message sent by the browser over the live session socket.
// Filter text is not length checked; the socket read limit bounds it.
type ClientFrame struct {
	Type  string `json:"type" validate:"required,oneof=filter click"`
	Text  string `json:"text"`
	Index int    `json:"index" validate:"gte=0"`
}
