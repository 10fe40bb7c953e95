package journal

import (
	"fmt"
	"sync"

	evbus "github.com/asaskevich/EventBus"
	"github.com/sirupsen/logrus"
)

// Topics carried by the feed bus.
const (
	TopicEntry    = "journal/entry"
	TopicMint     = "ledger/mint"
	TopicTransfer = "ledger/transfer"
)

// Journal is the node's notification feed. Entries travel synchronously
// over the bus, so subscribers see them in emission order; every entry is
// also retained for export and mirrored to the operational logger.
type Journal struct {
	bus evbus.Bus
	log *logrus.Logger

	mu      sync.RWMutex
	entries []Entry
}

func New(logger *logrus.Logger) *Journal {
	return &Journal{
		bus: evbus.New(),
		log: logger,
	}
}

func (j *Journal) Info(format string, args ...interface{}) Entry {
	return j.emit(SeverityInfo, format, args...)
}

func (j *Journal) Warn(format string, args ...interface{}) Entry {
	return j.emit(SeverityWarn, format, args...)
}

func (j *Journal) Error(format string, args ...interface{}) Entry {
	return j.emit(SeverityError, format, args...)
}

func (j *Journal) emit(severity Severity, format string, args ...interface{}) Entry {
	entry := newEntry(severity, fmt.Sprintf(format, args...))

	j.mu.Lock()
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	switch severity {
	case SeverityWarn:
		j.log.Warn(entry.Message)
	case SeverityError:
		j.log.Error(entry.Message)
	default:
		j.log.Info(entry.Message)
	}

	j.bus.Publish(TopicEntry, entry)
	return entry
}

// Subscribe registers a handler for feed entries. Handlers run on the
// emitter's goroutine and must not block.
func (j *Journal) Subscribe(handler func(Entry)) error {
	return j.bus.Subscribe(TopicEntry, handler)
}

func (j *Journal) Unsubscribe(handler func(Entry)) error {
	return j.bus.Unsubscribe(TopicEntry, handler)
}

// Publish forwards a payload on a side topic (mints, transfers) for
// collaborators that persist or render them.
func (j *Journal) Publish(topic string, payload interface{}) {
	j.bus.Publish(topic, payload)
}

func (j *Journal) SubscribeTopic(topic string, handler interface{}) error {
	return j.bus.Subscribe(topic, handler)
}

func (j *Journal) UnsubscribeTopic(topic string, handler interface{}) error {
	return j.bus.Unsubscribe(topic, handler)
}

func (j *Journal) Entries() []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}
