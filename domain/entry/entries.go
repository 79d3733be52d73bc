package entry

import (
	"context"
	"shopfloor/bizerror"
	"shopfloor/domain"
	"shopfloor/domain/refdata"
	"shopfloor/domain/summary"
	"shopfloor/event"
	"shopfloor/idgen"
	"shopfloor/persistence"
	"sort"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

var (
	entryIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateTimeEntryFunc       = CreateTimeEntry
	QueryTimeEntriesFunc      = QueryTimeEntries
	DeleteTimeEntryFunc       = DeleteTimeEntry
	BulkDeleteTimeEntriesFunc = BulkDeleteTimeEntries
	QueryLastEntryBeforeFunc  = QueryLastEntryBefore
)

const clockLayout = "15:04"

// CreateTimeEntry validates and saves one time entry, then rebuilds the
// daily summary of its (date, machine, operator) key in the same
// transaction.
func CreateTimeEntry(c domain.TimeEntryCreation, ctx context.Context) (*domain.TimeEntry, error) {
	date, err := domain.ParseDate(c.Date)
	if err != nil {
		return nil, &bizerror.ErrBadParam{Cause: err}
	}
	start, err := clockOn(date, c.Start)
	if err != nil {
		return nil, &bizerror.ErrBadParam{Cause: err}
	}
	end, err := clockOn(date, c.End)
	if err != nil {
		return nil, &bizerror.ErrBadParam{Cause: err}
	}
	if !end.After(start) {
		return nil, bizerror.ErrInvalidTimeRange
	}
	duration := int(end.Sub(start) / time.Minute)
	if duration <= 0 {
		return nil, bizerror.ErrInvalidTimeRange
	}

	if _, err := refdata.GetActivity(c.ActivityCode, ctx); err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, bizerror.ErrUnknownActivity
		}
		return nil, err
	}

	e := domain.TimeEntry{
		ID:              idgen.NextID(entryIdWorker),
		Date:            date,
		Start:           types.Timestamp(start),
		End:             types.Timestamp(end),
		DurationMinutes: duration,
		OperatorID:      c.OperatorID,
		MachineID:       c.MachineID,
		OrderID:         c.OrderID,
		ActivityCode:    c.ActivityCode,
		Output:          c.Output,
		Scrap:           c.Scrap,
		Notes:           c.Notes,
		CreateTime:      types.CurrentTimestamp(),
	}

	events, err := mutateAndRecompute(e.SummaryKey(), ctx, func(tx *gorm.DB) (*event.EventRecord, error) {
		if err := tx.Create(&e).Error; err != nil {
			return nil, err
		}
		return event.CreateEvent(event.SourceTypeTimeEntry, e.ID, string(e.Date), event.EventCategoryCreated, tx)
	})
	if err != nil {
		return nil, err
	}

	dispatch(events)
	return &e, nil
}

func QueryTimeEntries(q domain.TimeEntryQuery, ctx context.Context) ([]domain.TimeEntry, error) {
	entries := []domain.TimeEntry{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Where(&domain.TimeEntry{Date: domain.Date(q.Date), MachineID: q.MachineID, OperatorID: q.OperatorID}).
		Order("start_time ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func DeleteTimeEntry(id types.ID, ctx context.Context) error {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	e := domain.TimeEntry{}
	if err := db.Where(&domain.TimeEntry{ID: id}).First(&e).Error; err != nil {
		return err
	}

	events, err := mutateAndRecompute(e.SummaryKey(), ctx, func(tx *gorm.DB) (*event.EventRecord, error) {
		if err := tx.Delete(domain.TimeEntry{}, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return event.CreateEvent(event.SourceTypeTimeEntry, e.ID, string(e.Date), event.EventCategoryDeleted, tx)
	})
	if err != nil {
		return err
	}

	dispatch(events)
	return nil
}

// BulkDeleteTimeEntries removes every entry of a date, optionally narrowed
// by machine and operator, and rebuilds the summary of each affected key.
func BulkDeleteTimeEntries(d domain.TimeEntryBulkDeletion, ctx context.Context) (int, error) {
	date, err := domain.ParseDate(d.Date)
	if err != nil {
		return 0, &bizerror.ErrBadParam{Cause: err}
	}

	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	condition := &domain.TimeEntry{Date: date, MachineID: d.MachineID, OperatorID: d.OperatorID}
	affected := []domain.TimeEntry{}
	if err := db.Where(condition).Find(&affected).Error; err != nil {
		return 0, err
	}
	if len(affected) == 0 {
		return 0, nil
	}

	keys := []domain.SummaryKey{}
	seen := map[string]bool{}
	for _, e := range affected {
		k := e.SummaryKey()
		if !seen[k.String()] {
			seen[k.String()] = true
			keys = append(keys, k)
		}
	}

	// lock keys in a stable order so concurrent bulk deletions cannot deadlock
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		defer summary.LockKey(k)()
	}

	events := []*event.EventRecord{}
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, e := range affected {
			if err := tx.Delete(domain.TimeEntry{}, "id = ?", e.ID).Error; err != nil {
				return err
			}
			ev, err := event.CreateEvent(event.SourceTypeTimeEntry, e.ID, string(e.Date), event.EventCategoryDeleted, tx)
			if err != nil {
				return err
			}
			events = append(events, ev)
		}
		for _, k := range keys {
			_, ev, err := summary.RecomputeDailyInTx(k, tx, ctx)
			if err != nil {
				return err
			}
			if ev != nil {
				events = append(events, ev)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	dispatch(events)
	return len(affected), nil
}

// QueryLastEntryBefore returns the latest entry (by end time) of the last
// day before the given date that has any entries for the machine and
// operator, or nil when none exists.
func QueryLastEntryBefore(date domain.Date, machineID, operatorID types.ID, ctx context.Context) (*domain.TimeEntry, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	e := domain.TimeEntry{}
	err := db.Where("date < ? AND machine_id = ? AND operator_id = ?", date, machineID, operatorID).
		Order("date DESC").Order("end_time DESC").First(&e).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func mutateAndRecompute(key domain.SummaryKey, ctx context.Context,
	mutate func(tx *gorm.DB) (*event.EventRecord, error)) ([]*event.EventRecord, error) {

	unlock := summary.LockKey(key)
	defer unlock()

	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	events := []*event.EventRecord{}
	err := db.Transaction(func(tx *gorm.DB) error {
		ev, err := mutate(tx)
		if err != nil {
			return err
		}
		events = append(events, ev)

		_, recomputeEv, err := summary.RecomputeDailyInTx(key, tx, ctx)
		if err != nil {
			return err
		}
		if recomputeEv != nil {
			events = append(events, recomputeEv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func dispatch(events []*event.EventRecord) {
	if event.InvokeHandlersFunc == nil {
		return
	}
	for _, ev := range events {
		event.InvokeHandlersFunc(ev)
	}
}

func clockOn(date domain.Date, clock string) (time.Time, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	day := date.Time()
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
