package domain

import (
	"github.com/fundwit/go-commons/types"
)

// TimeEntry is one logged interval of operator activity on a machine.
// Start, End and DurationMinutes are stored independently and validated
// consistent at creation time; entries are immutable once saved.
type TimeEntry struct {
	ID types.ID `json:"id"`

	Date            Date            `json:"date" gorm:"type:CHAR(10);index:idx_entry_key"`
	Start           types.Timestamp `json:"start" gorm:"column:start_time" sql:"type:DATETIME(6) NOT NULL"`
	End             types.Timestamp `json:"end" gorm:"column:end_time" sql:"type:DATETIME(6) NOT NULL"`
	DurationMinutes int             `json:"durationMinutes"`

	OperatorID types.ID `json:"operatorId" gorm:"index:idx_entry_key"`
	MachineID  types.ID `json:"machineId" gorm:"index:idx_entry_key"`
	OrderID    *string  `json:"orderId" gorm:"type:VARCHAR(64)"`

	ActivityCode string `json:"activityCode" gorm:"type:CHAR(2)"`

	Output int    `json:"output"`
	Scrap  int    `json:"scrap"`
	Notes  string `json:"notes" gorm:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (e *TimeEntry) TableName() string {
	return "time_entries"
}

// Hours converts the stored duration to fractional hours.
func (e *TimeEntry) Hours() float64 {
	return float64(e.DurationMinutes) / 60
}

func (e *TimeEntry) SummaryKey() SummaryKey {
	return SummaryKey{Date: e.Date, MachineID: e.MachineID, OperatorID: e.OperatorID}
}

type TimeEntryCreation struct {
	Date  string `json:"date" binding:"required,len=10"`
	Start string `json:"start" binding:"required,len=5"` // "HH:MM"
	End   string `json:"end" binding:"required,len=5"`

	OperatorID types.ID `json:"operatorId" binding:"required"`
	MachineID  types.ID `json:"machineId" binding:"required"`
	OrderID    *string  `json:"orderId" binding:"omitempty,lte=64"`

	ActivityCode string `json:"activityCode" binding:"required,len=2"`

	Output int    `json:"output" binding:"gte=0"`
	Scrap  int    `json:"scrap" binding:"gte=0"`
	Notes  string `json:"notes" binding:"lte=65535"`
}

type TimeEntryQuery struct {
	Date       string   `json:"date" form:"date" binding:"required,len=10"`
	MachineID  types.ID `json:"machineId" form:"machineId" binding:"required"`
	OperatorID types.ID `json:"operatorId" form:"operatorId" binding:"required"`
}

// TimeEntryBulkDeletion deletes every entry of a date, optionally narrowed
// to one machine and/or one operator.
type TimeEntryBulkDeletion struct {
	Date       string   `json:"date" form:"date" binding:"required,len=10"`
	MachineID  types.ID `json:"machineId" form:"machineId"`
	OperatorID types.ID `json:"operatorId" form:"operatorId"`
}
