package models

import "strings"

// MessageType is the payload kind of a message or reply.
type MessageType string

const (
	MessageTypeText     MessageType = "TEXT"
	MessageTypeImage    MessageType = "IMAGE"
	MessageTypeLink     MessageType = "LINK"
	MessageTypeLocation MessageType = "LOCATION"
)

// String returns the string representation of the MessageType
func (mt MessageType) String() string {
	return string(mt)
}

// IsValid checks if the MessageType is a recognised enum value
func (mt MessageType) IsValid() bool {
	switch mt {
	case MessageTypeText, MessageTypeImage, MessageTypeLink, MessageTypeLocation:
		return true
	default:
		return false
	}
}

// AllMessageTypes returns every recognised message type, in declaration order.
func AllMessageTypes() []MessageType {
	return []MessageType{MessageTypeText, MessageTypeImage, MessageTypeLink, MessageTypeLocation}
}

func messageTypeList() string {
	names := make([]string, 0, 4)
	for _, mt := range AllMessageTypes() {
		names = append(names, mt.String())
	}
	return strings.Join(names, ", ")
}
