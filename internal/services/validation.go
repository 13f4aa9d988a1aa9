package services

import (
	"strings"

	"messaging-service/internal/models"

	"github.com/google/uuid"
)

// field pairs an input value with the name it is reported under.
type field struct {
	name  string
	value string
}

// requireFields fails on the first blank field, in the order given.
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return models.NewRequiredFieldError(f.name)
		}
	}
	return nil
}

func requireUUIDs(fields ...field) error {
	for _, f := range fields {
		if _, err := uuid.Parse(f.value); err != nil {
			return models.NewInvalidIDError(f.name)
		}
	}
	return nil
}

func parseMessageType(raw string) (models.MessageType, error) {
	mt := models.MessageType(raw)
	if !mt.IsValid() {
		return "", models.NewInvalidMessageTypeError("type")
	}
	return mt, nil
}

// validateMessage runs the three checks every write shares: presence, then
// the type enum, then identifier format.
func validateMessage(required []field, rawType string, ids []field) (models.MessageType, error) {
	if err := requireFields(required...); err != nil {
		return "", err
	}
	mt, err := parseMessageType(rawType)
	if err != nil {
		return "", err
	}
	if err := requireUUIDs(ids...); err != nil {
		return "", err
	}
	return mt, nil
}
