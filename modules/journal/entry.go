package journal

import (
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Entry is one human-readable notification from the node. The feed keeps
// them in emission order.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

func newEntry(severity Severity, message string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Severity:  severity,
		Message:   message,
	}
}
