package report

import (
	"context"
	"fmt"
	"shopfloor/domain"
	"shopfloor/domain/refdata"
	"shopfloor/persistence"
	"sort"

	"github.com/fundwit/go-commons/types"
)

var (
	BuildMonthlyReportFunc = BuildMonthlyReport
)

type MonthlyReportQuery struct {
	Year  int `json:"year" form:"year" binding:"required,gte=2000,lte=2100"`
	Month int `json:"month" form:"month" binding:"required,gte=1,lte=12"`

	OperatorID types.ID `json:"operatorId" form:"operatorId"`
	MachineID  types.ID `json:"machineId" form:"machineId"`

	FromDay int `json:"fromDay" form:"fromDay" binding:"omitempty,gte=1,lte=31"`
	ToDay   int `json:"toDay" form:"toDay" binding:"omitempty,gte=1,lte=31"`
}

type SemaphoreColor string

const (
	SemaphoreRed    SemaphoreColor = "RED"
	SemaphoreYellow SemaphoreColor = "YELLOW"
	SemaphoreGreen  SemaphoreColor = "GREEN"
)

// ClassifySemaphore maps an efficiency ratio onto the three-state
// indicator using the configured thresholds.
func ClassifySemaphore(efficiency float64, settings domain.ReportSettings) SemaphoreColor {
	if efficiency < settings.RedBelow {
		return SemaphoreRed
	}
	if efficiency >= settings.GreenFrom {
		return SemaphoreGreen
	}
	return SemaphoreYellow
}

type OperatorRow struct {
	OperatorID  types.ID `json:"operatorId"`
	MachineID   types.ID `json:"machineId"`
	MachineName string   `json:"machineName"`

	DaysWorked int `json:"daysWorked"`

	Output int `json:"output"`
	Scrap  int `json:"scrap"`

	ProductiveHours float64 `json:"productiveHours"`
	OperativeHours  float64 `json:"operativeHours"`

	Amount      float64 `json:"amount"`
	BonusAmount float64 `json:"bonusAmount"`

	AverageRate float64 `json:"averageRate"` // output per operative hour

	BonusTarget int            `json:"bonusTarget"` // machine target x days worked
	Efficiency  float64        `json:"efficiency"`
	Semaphore   SemaphoreColor `json:"semaphore"`
}

type MachineRow struct {
	MachineID   types.ID `json:"machineId"`
	MachineName string   `json:"machineName"`

	ActiveDays int `json:"activeDays"`

	Output int `json:"output"`
	Scrap  int `json:"scrap"`

	RepairHours     float64 `json:"repairHours"`
	LackOfWorkHours float64 `json:"lackOfWorkHours"`
	DowntimeHours   float64 `json:"downtimeHours"`

	TargetPercent float64        `json:"targetPercent"`
	Efficiency    float64        `json:"efficiency"`
	Semaphore     SemaphoreColor `json:"semaphore"`
}

type TrendPoint struct {
	Date   domain.Date `json:"date"`
	Output int         `json:"output"`
	Scrap  int         `json:"scrap"`
}

type MonthlyReport struct {
	From domain.Date `json:"from"`
	To   domain.Date `json:"to"`

	OperatorRows []OperatorRow `json:"operatorRows"`
	MachineRows  []MachineRow  `json:"machineRows"`
	DailyTrend   []TrendPoint  `json:"dailyTrend"`
}

// BuildMonthlyReport aggregates the daily summaries of one month on demand.
// Nothing is persisted: the report is always rebuilt from the daily rows.
func BuildMonthlyReport(q MonthlyReportQuery, ctx context.Context) (*MonthlyReport, error) {
	from, to := periodOf(q)

	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	query := db.Where("date BETWEEN ? AND ?", from, to)
	if q.MachineID != 0 {
		query = query.Where("machine_id = ?", q.MachineID)
	}
	if q.OperatorID != 0 {
		query = query.Where("operator_id = ?", q.OperatorID)
	}
	summaries := []domain.DailySummary{}
	if err := query.Order("date ASC").Find(&summaries).Error; err != nil {
		return nil, err
	}

	machines, err := refdata.QueryMachinesFunc(ctx)
	if err != nil {
		return nil, err
	}
	machinesById := map[types.ID]domain.Machine{}
	for _, m := range machines {
		machinesById[m.ID] = m
	}

	settings, err := refdata.GetReportSettingsFunc(ctx)
	if err != nil {
		return nil, err
	}

	r := MonthlyReport{From: from, To: to}
	r.OperatorRows = buildOperatorRows(summaries, machinesById, *settings)
	r.MachineRows = buildMachineRows(summaries, machinesById, *settings)
	r.DailyTrend = buildDailyTrend(summaries)
	return &r, nil
}

func periodOf(q MonthlyReportQuery) (domain.Date, domain.Date) {
	fromDay := 1
	if q.FromDay > 0 {
		fromDay = q.FromDay
	}
	first := domain.Date(fmt.Sprintf("%04d-%02d-01", q.Year, q.Month))
	lastOfMonth := first.Time().AddDate(0, 1, -1).Day()
	toDay := lastOfMonth
	if q.ToDay > 0 && q.ToDay < lastOfMonth {
		toDay = q.ToDay
	}
	from := domain.Date(fmt.Sprintf("%04d-%02d-%02d", q.Year, q.Month, fromDay))
	to := domain.Date(fmt.Sprintf("%04d-%02d-%02d", q.Year, q.Month, toDay))
	return from, to
}

func buildOperatorRows(summaries []domain.DailySummary, machines map[types.ID]domain.Machine,
	settings domain.ReportSettings) []OperatorRow {

	type operatorKey struct {
		OperatorID types.ID
		MachineID  types.ID
	}
	rows := map[operatorKey]*OperatorRow{}
	order := []operatorKey{}

	for _, s := range summaries {
		k := operatorKey{OperatorID: s.OperatorID, MachineID: s.MachineID}
		row, found := rows[k]
		if !found {
			row = &OperatorRow{OperatorID: s.OperatorID, MachineID: s.MachineID}
			if m, ok := machines[s.MachineID]; ok {
				row.MachineName = m.Name
			}
			rows[k] = row
			order = append(order, k)
		}

		if s.TotalHours > 0 {
			row.DaysWorked++
		}
		row.Output += s.Output
		row.Scrap += s.Scrap
		row.ProductiveHours += s.ProductiveHours
		row.OperativeHours += s.OperativeHours
		row.Amount += s.Amount
		row.BonusAmount += s.BonusAmount
	}

	result := make([]OperatorRow, 0, len(order))
	for _, k := range order {
		row := rows[k]
		if row.OperativeHours > 0 {
			row.AverageRate = float64(row.Output) / row.OperativeHours
		}
		if m, ok := machines[k.MachineID]; ok {
			row.BonusTarget = m.Target * row.DaysWorked
			if row.BonusTarget > 0 {
				row.Efficiency = float64(row.Output-row.Scrap) / float64(row.BonusTarget)
			}
		}
		row.Semaphore = ClassifySemaphore(row.Efficiency, settings)
		result = append(result, *row)
	}
	return result
}

func buildMachineRows(summaries []domain.DailySummary, machines map[types.ID]domain.Machine,
	settings domain.ReportSettings) []MachineRow {

	rows := map[types.ID]*MachineRow{}
	activeDates := map[types.ID]map[domain.Date]bool{}
	order := []types.ID{}

	for _, s := range summaries {
		row, found := rows[s.MachineID]
		if !found {
			row = &MachineRow{MachineID: s.MachineID}
			if m, ok := machines[s.MachineID]; ok {
				row.MachineName = m.Name
			}
			rows[s.MachineID] = row
			activeDates[s.MachineID] = map[domain.Date]bool{}
			order = append(order, s.MachineID)
		}

		if s.TotalHours > 0 {
			activeDates[s.MachineID][s.Date] = true
		}
		row.Output += s.Output
		row.Scrap += s.Scrap
		row.RepairHours += s.RepairHours
		row.LackOfWorkHours += s.LackOfWorkHours
		row.DowntimeHours += s.DowntimeHours
	}

	result := make([]MachineRow, 0, len(order))
	for _, id := range order {
		row := rows[id]
		row.ActiveDays = len(activeDates[id])
		if m, ok := machines[id]; ok && m.Target > 0 && row.ActiveDays > 0 {
			row.Efficiency = float64(row.Output-row.Scrap) / float64(m.Target*row.ActiveDays)
			row.TargetPercent = row.Efficiency * 100
		}
		row.Semaphore = ClassifySemaphore(row.Efficiency, settings)
		result = append(result, *row)
	}
	return result
}

func buildDailyTrend(summaries []domain.DailySummary) []TrendPoint {
	points := map[domain.Date]*TrendPoint{}
	for _, s := range summaries {
		p, found := points[s.Date]
		if !found {
			p = &TrendPoint{Date: s.Date}
			points[s.Date] = p
		}
		p.Output += s.Output
		p.Scrap += s.Scrap
	}

	result := make([]TrendPoint, 0, len(points))
	for _, p := range points {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date < result[j].Date })
	return result
}
