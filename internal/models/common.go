package models

import (
	"github.com/google/uuid"
)

// ensureID assigns a fresh UUID when id is empty.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}
