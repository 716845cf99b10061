package ws

import (
	"encoding/json"
	"time"
)

const EventDatasetReloaded = "dataset_reloaded"

type DatasetReloadedEvent struct {
	Type       string `json:"type"`
	Generation uint64 `json:"generation"`
	Source     string `json:"source"`
	Synthetic  bool   `json:"synthetic"`
	Timestamp  string `json:"timestamp"`
}

// Notifier tells connected dashboards to refetch after a reload.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) DatasetReloaded(generation uint64, source string, synthetic bool) {
	if n == nil || n.hub == nil {
		return
	}
	evt := DatasetReloadedEvent{
		Type:       EventDatasetReloaded,
		Generation: generation,
		Source:     source,
		Synthetic:  synthetic,
		Timestamp:  n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
