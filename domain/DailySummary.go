package domain

import (
	"fmt"

	"github.com/fundwit/go-commons/types"
)

// DailySummary is the derived daily total for one (date, machine, operator)
// key. It is rebuilt from scratch out of the time entries of its key on
// every entry mutation and is never edited independently of them.
type DailySummary struct {
	ID types.ID `json:"id"`

	Date       Date     `json:"date" gorm:"type:CHAR(10);unique_index:uni_summary_key"`
	MachineID  types.ID `json:"machineId" gorm:"unique_index:uni_summary_key"`
	OperatorID types.ID `json:"operatorId" gorm:"unique_index:uni_summary_key"`

	TurnStart types.Timestamp `json:"turnStart" sql:"type:DATETIME(6)"`
	TurnEnd   types.Timestamp `json:"turnEnd" sql:"type:DATETIME(6)"`

	OrderRefs string `json:"orderRefs" gorm:"type:TEXT"`
	Notes     string `json:"notes" gorm:"type:TEXT"`

	SetupHours       float64 `json:"setupHours"`
	OperativeHours   float64 `json:"operativeHours"`
	RepairHours      float64 `json:"repairHours"`
	RestHours        float64 `json:"restHours"`
	DowntimeHours    float64 `json:"downtimeHours"`
	MaintenanceHours float64 `json:"maintenanceHours"`
	LackOfWorkHours  float64 `json:"lackOfWorkHours"`
	AuxiliaryHours   float64 `json:"auxiliaryHours"`

	Output      int `json:"output"`
	Scrap       int `json:"scrap"`
	BonusOutput int `json:"bonusOutput"`
	BonusScrap  int `json:"bonusScrap"`

	Changeovers int `json:"changeovers"`

	ProductiveHours     float64 `json:"productiveHours"`     // operative + setup
	AuxiliaryTotalHours float64 `json:"auxiliaryTotalHours"` // maintenance + rest + auxiliary
	DowntimeTotalHours  float64 `json:"downtimeTotalHours"`  // lack-of-work + repair + downtime
	TotalHours          float64 `json:"totalHours"`

	HourlyRate float64 `json:"hourlyRate"` // output per operative hour

	UnitValue   float64 `json:"unitValue"` // machine unit value at computation time
	Amount      float64 `json:"amount"`
	BonusAmount float64 `json:"bonusAmount"`

	ComputeTime types.Timestamp `json:"computeTime" sql:"type:DATETIME(6) NOT NULL"`
}

func (s *DailySummary) TableName() string {
	return "daily_summaries"
}

// SummaryKey identifies one DailySummary.
type SummaryKey struct {
	Date       Date
	MachineID  types.ID
	OperatorID types.ID
}

func (k SummaryKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.Date, k.MachineID.String(), k.OperatorID.String())
}
