package service

// Dashboard feed message types
const (
	MsgBookingConfirmed      = "booking_confirmed"
	MsgQuestionSubmitted     = "question_submitted"
	MsgQuestionStatusChanged = "question_status_changed"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	Broadcast(msgType string, payload interface{})
}

type nopBroadcaster struct{}

func (nopBroadcaster) Broadcast(string, interface{}) {}
