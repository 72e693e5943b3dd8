package events

import "time"

type Event struct {
	Type      string         `json:"type"`
	OccuredAt time.Time      `json:"occured_at"`
	Data      map[string]any `json:"data"`
}

func NewEvent(typ string, data map[string]any) Event {
	return Event{Type: typ, OccuredAt: time.Now().UTC(), Data: data}
}
