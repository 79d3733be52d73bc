package domain

import (
	"github.com/fundwit/go-commons/types"
)

// Machine carries the reference data the incentive engine needs: the daily
// output target, the value paid per unit above target, and the wall-clock
// window during which produced units count toward the bonus.
type Machine struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name" binding:"required,lte=255" gorm:"unique_index:uni_machine_name"`

	Target    int     `json:"target" binding:"gte=0"`
	UnitValue float64 `json:"unitValue" binding:"gte=0"`

	// bonus window bounds, wall-clock "HH:MM"
	BonusStart string `json:"bonusStart" gorm:"type:CHAR(5)"`
	BonusEnd   string `json:"bonusEnd" gorm:"type:CHAR(5)"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (m *Machine) TableName() string {
	return "machines"
}

type MachineCreation struct {
	Name string `json:"name" binding:"required,lte=255"`

	Target    int     `json:"target" binding:"gte=0"`
	UnitValue float64 `json:"unitValue" binding:"gte=0"`

	BonusStart string `json:"bonusStart" binding:"omitempty,len=5"`
	BonusEnd   string `json:"bonusEnd" binding:"omitempty,len=5"`
}

type MachineUpdating struct {
	Name string `json:"name" binding:"omitempty,lte=255"`

	Target    *int     `json:"target" binding:"omitempty,gte=0"`
	UnitValue *float64 `json:"unitValue" binding:"omitempty,gte=0"`

	BonusStart *string `json:"bonusStart" binding:"omitempty,len=5"`
	BonusEnd   *string `json:"bonusEnd" binding:"omitempty,len=5"`
}

// ReportSettings holds the semaphore thresholds for monthly reports.
// Efficiency at or above GreenFrom is green, below RedBelow is red,
// anything between is yellow. Stored as a singleton row.
type ReportSettings struct {
	ID types.ID `json:"id"`

	RedBelow  float64 `json:"redBelow" binding:"gte=0"`
	GreenFrom float64 `json:"greenFrom" binding:"gte=0"`
}

func (s *ReportSettings) TableName() string {
	return "report_settings"
}
