package summary_test

import (
	"context"
	"shopfloor/domain"
	"shopfloor/domain/refdata"
	"shopfloor/domain/summary"
	"shopfloor/event"
	"shopfloor/persistence"
	"shopfloor/testinfra"
	"testing"

	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("shopfloor")
	*testDatabase = db
	err := db.DS.GormDB(context.Background()).AutoMigrate(
		&domain.TimeEntry{}, &domain.DailySummary{}, &domain.Activity{},
		&domain.Machine{}, &event.EventRecord{}).Error
	Expect(err).To(BeNil())
	Expect(refdata.SeedActivities(db.DS.GormDB(context.Background()))).To(BeNil())

	persistence.ActiveDataSourceManager = db.DS
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func saveEntries(t *testing.T, entries ...*domain.TimeEntry) {
	db := persistence.ActiveDataSourceManager.GormDB(context.Background())
	for _, e := range entries {
		Expect(db.Create(e).Error).To(BeNil())
	}
}

func TestRecomputeDaily(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should rebuild the summary from the entries of its key", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)
		m, err := refdata.CreateMachine(domain.MachineCreation{
			Name: "press 1", Target: 4000, UnitValue: 2, BonusStart: "09:00", BonusEnd: "13:00",
		}, context.Background())
		Expect(err).To(BeNil())

		e1 := testinfra.BuildTimeEntry(demoDate, "08:00", "08:30", domain.ActivitySetup, strPtr("100"), 0, 0)
		e2 := testinfra.BuildTimeEntry(demoDate, "08:30", "13:00", domain.ActivityOperative, strPtr("100"), 6000, 200)
		e1.MachineID, e1.OperatorID = m.ID, 7
		e2.MachineID, e2.OperatorID = m.ID, 7
		saveEntries(t, &e1, &e2)

		s, err := summary.RecomputeDaily(summary.DailySummaryQuery{
			Date: string(demoDate), MachineID: m.ID, OperatorID: 7}, context.Background())
		Expect(err).To(BeNil())
		Expect(s.SetupHours).To(Equal(0.5))
		Expect(s.OperativeHours).To(Equal(4.5))
		Expect(s.ProductiveHours).To(Equal(5.0))
		Expect(s.Output).To(Equal(6000))
		Expect(s.Amount).To(Equal(3600.0))
		Expect(s.OrderRefs).To(Equal("100"))
		Expect(s.ComputeTime.Time().IsZero()).To(BeFalse())
	})

	t.Run("should be idempotent and keep the row id", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		e := testinfra.BuildTimeEntry(demoDate, "08:00", "12:00", domain.ActivityOperative, nil, 3000, 0)
		e.MachineID, e.OperatorID = 1, 7
		saveEntries(t, &e)

		q := summary.DailySummaryQuery{Date: string(demoDate), MachineID: 1, OperatorID: 7}
		first, err := summary.RecomputeDaily(q, context.Background())
		Expect(err).To(BeNil())
		second, err := summary.RecomputeDaily(q, context.Background())
		Expect(err).To(BeNil())

		Expect(second.ID).To(Equal(first.ID))
		Expect(second.Output).To(Equal(first.Output))
		Expect(second.TotalHours).To(Equal(first.TotalHours))

		count := 0
		db := persistence.ActiveDataSourceManager.GormDB(context.Background())
		Expect(db.Model(&domain.DailySummary{}).Count(&count).Error).To(BeNil())
		Expect(count).To(Equal(1))
	})

	t.Run("should seed the changeover count with the prior day's trailing order", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		prior := testinfra.BuildTimeEntry("2025-03-09", "13:00", "17:00", domain.ActivityOperative, strPtr("A"), 0, 0)
		today := testinfra.BuildTimeEntry(demoDate, "08:00", "12:00", domain.ActivityOperative, strPtr("B"), 0, 0)
		prior.MachineID, prior.OperatorID = 1, 7
		today.MachineID, today.OperatorID = 1, 7
		saveEntries(t, &prior, &today)

		s, err := summary.RecomputeDaily(summary.DailySummaryQuery{
			Date: string(demoDate), MachineID: 1, OperatorID: 7}, context.Background())
		Expect(err).To(BeNil())
		Expect(s.Changeovers).To(Equal(1))
	})

	t.Run("should delete the stale row and return nothing when the key has no entries", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		e := testinfra.BuildTimeEntry(demoDate, "08:00", "12:00", domain.ActivityOperative, nil, 3000, 0)
		e.MachineID, e.OperatorID = 1, 7
		saveEntries(t, &e)

		q := summary.DailySummaryQuery{Date: string(demoDate), MachineID: 1, OperatorID: 7}
		_, err := summary.RecomputeDaily(q, context.Background())
		Expect(err).To(BeNil())

		db := persistence.ActiveDataSourceManager.GormDB(context.Background())
		Expect(db.Delete(domain.TimeEntry{}, "id = ?", e.ID).Error).To(BeNil())

		s, err := summary.RecomputeDaily(q, context.Background())
		Expect(err).To(BeNil())
		Expect(s).To(BeNil())

		_, err = summary.GetDailySummary(q, context.Background())
		Expect(gorm.IsRecordNotFoundError(err)).To(BeTrue())

		// a second run on the now empty key is a no-op
		s, err = summary.RecomputeDaily(q, context.Background())
		Expect(err).To(BeNil())
		Expect(s).To(BeNil())
	})
}

func TestGetDailySummary(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should report not found for a key never computed", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		_, err := summary.GetDailySummary(summary.DailySummaryQuery{
			Date: string(demoDate), MachineID: 1, OperatorID: 7}, context.Background())
		Expect(gorm.IsRecordNotFoundError(err)).To(BeTrue())
	})
}
