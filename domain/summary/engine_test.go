package summary_test

import (
	"shopfloor/domain"
	"shopfloor/domain/summary"
	"shopfloor/testinfra"
	"testing"

	. "github.com/onsi/gomega"
)

const demoDate = domain.Date("2025-03-10")

func demoActivities() map[string]domain.Activity {
	m := map[string]domain.Activity{}
	for _, a := range domain.DefaultActivities {
		m[a.Code] = a
	}
	return m
}

func demoMachine() *domain.Machine {
	return &domain.Machine{ID: 3, Name: "press 3", Target: 4000, UnitValue: 2,
		BonusStart: "09:00", BonusEnd: "13:00"}
}

func strPtr(s string) *string {
	return &s
}

func TestAggregate(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should have no effect on a key without entries", func(t *testing.T) {
		s := summary.Aggregate(summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Activities: demoActivities(),
			Machine:    demoMachine(),
		})
		Expect(s).To(BeNil())
	})

	t.Run("should reproduce the incentive scenario end to end", func(t *testing.T) {
		entries := []domain.TimeEntry{
			testinfra.BuildTimeEntry(demoDate, "09:00", "09:30", domain.ActivitySetup, strPtr("100"), 0, 0),
			testinfra.BuildTimeEntry(demoDate, "09:30", "13:00", domain.ActivityOperative, strPtr("100"), 5000, 200),
			testinfra.BuildTimeEntry(demoDate, "13:00", "14:00", domain.ActivityOperative, strPtr("101"), 1000, 0),
		}

		s := summary.Aggregate(summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Entries:    entries,
			Activities: demoActivities(),
			Machine:    demoMachine(),
		})
		Expect(s).ToNot(BeNil())

		Expect(s.TurnStart).To(Equal(entries[0].Start))
		Expect(s.TurnEnd).To(Equal(entries[2].End))
		Expect(s.OrderRefs).To(Equal("100, 101"))

		Expect(s.SetupHours).To(Equal(0.5))
		Expect(s.OperativeHours).To(Equal(4.5))
		Expect(s.ProductiveHours).To(Equal(5.0))
		Expect(s.TotalHours).To(Equal(5.0))

		Expect(s.Output).To(Equal(6000))
		Expect(s.Scrap).To(Equal(200))
		// net 5800, extra over target 1800, at 2 per unit
		Expect(s.Amount).To(Equal(3600.0))

		// the 13:00-14:00 entry leaves the bonus window
		Expect(s.BonusOutput).To(Equal(5000))
		Expect(s.BonusScrap).To(Equal(200))
		Expect(s.BonusAmount).To(Equal(1600.0))

		Expect(s.Changeovers).To(Equal(1))
		Expect(s.UnitValue).To(Equal(2.0))
		Expect(s.HourlyRate).To(BeNumerically("~", 6000.0/4.5, 1e-9))
	})

	t.Run("should be idempotent over an unchanged entry set", func(t *testing.T) {
		entries := []domain.TimeEntry{
			testinfra.BuildTimeEntry(demoDate, "08:00", "10:00", domain.ActivityOperative, strPtr("42"), 800, 10),
			testinfra.BuildTimeEntry(demoDate, "10:00", "10:30", domain.ActivityRest, nil, 0, 0),
		}
		in := summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Entries:    entries,
			Activities: demoActivities(),
			Machine:    demoMachine(),
		}

		first := summary.Aggregate(in)
		second := summary.Aggregate(in)
		Expect(*second).To(Equal(*first))
	})

	t.Run("should dispatch every entry into exactly one bucket", func(t *testing.T) {
		entries := []domain.TimeEntry{
			testinfra.BuildTimeEntry(demoDate, "06:00", "06:30", domain.ActivitySetup, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "06:30", "08:00", domain.ActivityOperative, nil, 100, 0),
			testinfra.BuildTimeEntry(demoDate, "08:00", "08:20", domain.ActivityRepair, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "08:20", "08:40", domain.ActivityRest, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "08:40", "09:10", domain.ActivityDowntime, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "09:10", "09:40", domain.ActivityMaintenance, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "09:40", "10:10", domain.ActivityLackOfWork, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "10:10", "10:40", domain.ActivityAuxiliary, nil, 0, 0),
			testinfra.BuildTimeEntry(demoDate, "10:40", "11:00", "99", nil, 0, 0), // unrecognized code
		}

		totalHours := 0.0
		for i := range entries {
			totalHours += entries[i].Hours()
		}

		s := summary.Aggregate(summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Entries:    entries,
			Activities: demoActivities(),
			Machine:    demoMachine(),
		})
		Expect(s.TotalHours).To(BeNumerically("~", totalHours, 1e-9))

		bucketSum := s.SetupHours + s.OperativeHours + s.RepairHours + s.RestHours +
			s.DowntimeHours + s.MaintenanceHours + s.LackOfWorkHours + s.AuxiliaryHours
		Expect(bucketSum).To(BeNumerically("~", totalHours, 1e-9))

		// the unrecognized code fell into the auxiliary bucket, not dropped
		Expect(s.AuxiliaryHours).To(BeNumerically("~", 0.5+1.0/3, 1e-9))
	})

	t.Run("should complete classification with pay fields zeroed when machine is missing", func(t *testing.T) {
		entries := []domain.TimeEntry{
			testinfra.BuildTimeEntry(demoDate, "09:00", "12:00", domain.ActivityOperative, strPtr("100"), 9000, 0),
		}
		s := summary.Aggregate(summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Entries:    entries,
			Activities: demoActivities(),
			Machine:    nil,
		})
		Expect(s.OperativeHours).To(Equal(3.0))
		Expect(s.Output).To(Equal(9000))
		Expect(s.UnitValue).To(BeZero())
		Expect(s.Amount).To(BeZero())
		Expect(s.BonusAmount).To(BeZero())
		Expect(s.BonusOutput).To(BeZero())
	})

	t.Run("should keep bonus-eligible totals a subset of raw totals", func(t *testing.T) {
		entries := []domain.TimeEntry{
			testinfra.BuildTimeEntry(demoDate, "08:00", "09:30", domain.ActivityOperative, strPtr("7"), 700, 30),
			testinfra.BuildTimeEntry(demoDate, "09:30", "11:00", domain.ActivityOperative, strPtr("7"), 900, 10),
			testinfra.BuildTimeEntry(demoDate, "12:30", "13:30", domain.ActivityOperative, strPtr("7"), 400, 5),
		}
		s := summary.Aggregate(summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Entries:    entries,
			Activities: demoActivities(),
			Machine:    demoMachine(),
		})
		Expect(s.BonusOutput <= s.Output).To(BeTrue())
		Expect(s.BonusScrap <= s.Scrap).To(BeTrue())
	})

	t.Run("should join distinct order refs and notes in first-seen order", func(t *testing.T) {
		e1 := testinfra.BuildTimeEntry(demoDate, "08:00", "09:00", domain.ActivityOperative, strPtr("300"), 10, 0)
		e1.Notes = "warm start"
		e2 := testinfra.BuildTimeEntry(demoDate, "09:00", "10:00", domain.ActivityOperative, strPtr("100"), 10, 0)
		e2.Notes = "  "
		e3 := testinfra.BuildTimeEntry(demoDate, "10:00", "11:00", domain.ActivityOperative, strPtr("300"), 10, 0)
		e3.Notes = "warm start"
		e4 := testinfra.BuildTimeEntry(demoDate, "11:00", "12:00", domain.ActivityOperative, nil, 10, 0)
		e4.Notes = "die changed"

		s := summary.Aggregate(summary.AggregationInput{
			Key:        domain.SummaryKey{Date: demoDate, MachineID: 3, OperatorID: 7},
			Entries:    []domain.TimeEntry{e1, e2, e3, e4},
			Activities: demoActivities(),
			Machine:    demoMachine(),
		})
		Expect(s.OrderRefs).To(Equal("300, 100"))
		Expect(s.Notes).To(Equal("warm start; die changed"))
	})
}
