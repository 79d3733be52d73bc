package summary

import (
	"shopfloor/domain"
	"sort"
	"strings"
)

const (
	orderRefSeparator = ", "
	noteSeparator     = "; "
)

// AggregationInput is everything a recompute reads: the entries of one
// (date, machine, operator) key, the activity enumeration, the machine
// reference data and the trailing production order of the prior day.
type AggregationInput struct {
	Key     domain.SummaryKey
	Entries []domain.TimeEntry

	Activities map[string]domain.Activity

	// Machine may be nil when reference data cannot be resolved;
	// classification still completes, pay fields stay zero.
	Machine *domain.Machine

	PriorOrder *string
}

// Aggregate rebuilds the daily summary of one key from scratch. It is a
// pure function: no reads, no writes, no clock. Returns nil when the entry
// set is empty.
func Aggregate(in AggregationInput) *domain.DailySummary {
	if len(in.Entries) == 0 {
		return nil
	}

	entries := make([]domain.TimeEntry, len(in.Entries))
	copy(entries, in.Entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Time().Before(entries[j].Start.Time())
	})

	s := domain.DailySummary{
		Date:       in.Key.Date,
		MachineID:  in.Key.MachineID,
		OperatorID: in.Key.OperatorID,

		TurnStart: entries[0].Start,
		TurnEnd:   entries[0].End,
	}

	window := BonusWindow{}
	if in.Machine != nil {
		window = BonusWindow{Start: in.Machine.BonusStart, End: in.Machine.BonusEnd}
	}

	orderRefs := []string{}
	seenOrders := map[string]bool{}
	notes := []string{}
	seenNotes := map[string]bool{}

	for _, e := range entries {
		if e.End.Time().After(s.TurnEnd.Time()) {
			s.TurnEnd = e.End
		}

		if e.OrderID != nil && !seenOrders[*e.OrderID] {
			seenOrders[*e.OrderID] = true
			orderRefs = append(orderRefs, *e.OrderID)
		}
		note := strings.TrimSpace(e.Notes)
		if note != "" && !seenNotes[note] {
			seenNotes[note] = true
			notes = append(notes, note)
		}

		hours := e.Hours()
		switch domain.BucketOfActivity(e.ActivityCode) {
		case domain.BucketSetup:
			s.SetupHours += hours
		case domain.BucketOperative:
			s.OperativeHours += hours
		case domain.BucketRepair:
			s.RepairHours += hours
		case domain.BucketRest:
			s.RestHours += hours
		case domain.BucketDowntime:
			s.DowntimeHours += hours
		case domain.BucketMaintenance:
			s.MaintenanceHours += hours
		case domain.BucketLackOfWork:
			s.LackOfWorkHours += hours
		default:
			s.AuxiliaryHours += hours
		}

		activity, known := in.Activities[e.ActivityCode]
		if known && activity.Productive {
			s.Output += e.Output
			s.Scrap += e.Scrap
			if window.Contains(e.Start, e.End) {
				s.BonusOutput += e.Output
				s.BonusScrap += e.Scrap
			}
		}
	}

	s.OrderRefs = strings.Join(orderRefs, orderRefSeparator)
	s.Notes = strings.Join(notes, noteSeparator)

	s.ProductiveHours = s.OperativeHours + s.SetupHours
	s.AuxiliaryTotalHours = s.MaintenanceHours + s.RestHours + s.AuxiliaryHours
	s.DowntimeTotalHours = s.LackOfWorkHours + s.RepairHours + s.DowntimeHours
	s.TotalHours = s.ProductiveHours + s.AuxiliaryTotalHours + s.DowntimeTotalHours

	if s.OperativeHours > 0 {
		s.HourlyRate = float64(s.Output) / s.OperativeHours
	}

	s.Changeovers = CountChangeovers(in.PriorOrder, entries)

	if in.Machine != nil {
		s.UnitValue = in.Machine.UnitValue
		s.Amount = ComputePay(s.Output, s.Scrap, in.Machine.Target, in.Machine.UnitValue)
		s.BonusAmount = ComputePay(s.BonusOutput, s.BonusScrap, in.Machine.Target, in.Machine.UnitValue)
	}

	return &s
}
