package event

import (
	"github.com/fundwit/go-commons/types"
)

const (
	EventCategoryCreated    = "CREATED"
	EventCategoryDeleted    = "DELETED"
	EventCategoryRecomputed = "RECOMPUTED"
)

const (
	SourceTypeTimeEntry    = "TIME_ENTRY"
	SourceTypeDailySummary = "DAILY_SUMMARY"
)

type EventCategory string

type Event struct {
	SourceId   types.ID `json:"sourceId"`
	SourceType string   `json:"sourceType"`
	SourceDesc string   `json:"sourceDesc"`

	EventCategory EventCategory `json:"eventCategory"` // CREATED, DELETED, RECOMPUTED
}

type EventRecord struct {
	ID types.ID `json:"id"`

	Event

	Timestamp types.Timestamp `json:"timestamp" sql:"type:DATETIME(6)"`
	Synced    bool            `json:"synced"`
}

func (r *EventRecord) TableName() string {
	return "events"
}
