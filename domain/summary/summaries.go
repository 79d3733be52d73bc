package summary

import (
	"context"
	"shopfloor/domain"
	"shopfloor/domain/refdata"
	"shopfloor/event"
	"shopfloor/idgen"
	"shopfloor/persistence"
	"sync"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
)

var (
	summaryIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	RecomputeDailyFunc  = RecomputeDaily
	GetDailySummaryFunc = GetDailySummary
)

// recomputes on the same key are read-all-then-overwrite-one and must not
// interleave; different keys proceed in parallel
var keyLocks = struct {
	sync.Mutex
	locks map[string]*sync.Mutex
}{locks: map[string]*sync.Mutex{}}

// LockKey serializes recomputes of one summary key. The returned func
// releases the lock.
func LockKey(key domain.SummaryKey) func() {
	keyLocks.Lock()
	l, found := keyLocks.locks[key.String()]
	if !found {
		l = &sync.Mutex{}
		keyLocks.locks[key.String()] = l
	}
	keyLocks.Unlock()

	l.Lock()
	return l.Unlock
}

type DailySummaryQuery struct {
	Date       string   `json:"date" form:"date" binding:"required,len=10"`
	MachineID  types.ID `json:"machineId" form:"machineId" binding:"required"`
	OperatorID types.ID `json:"operatorId" form:"operatorId" binding:"required"`
}

func (q DailySummaryQuery) key() domain.SummaryKey {
	return domain.SummaryKey{Date: domain.Date(q.Date), MachineID: q.MachineID, OperatorID: q.OperatorID}
}

// RecomputeDaily rebuilds the summary of one key in its own transaction.
// It is idempotent and safe to re-run at any time, which also makes it the
// retry path when a recompute attached to an entry mutation has failed.
func RecomputeDaily(q DailySummaryQuery, ctx context.Context) (*domain.DailySummary, error) {
	key := q.key()
	unlock := LockKey(key)
	defer unlock()

	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	var s *domain.DailySummary
	var ev *event.EventRecord
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		s, ev, err = RecomputeDailyInTx(key, tx, ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if ev != nil && event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return s, nil
}

// RecomputeDailyInTx rebuilds the summary of one key inside the caller's
// transaction, so an entry mutation and the summary it invalidates commit
// as one atomic unit. The returned event record, if any, must be handed to
// event.InvokeHandlersFunc after the transaction commits.
//
// All accumulators restart from zero: the previous row is replaced, never
// amended. When the key has no entries left the row is deleted.
func RecomputeDailyInTx(key domain.SummaryKey, tx *gorm.DB, ctx context.Context) (*domain.DailySummary, *event.EventRecord, error) {
	entries := []domain.TimeEntry{}
	if err := tx.Where(&domain.TimeEntry{Date: key.Date, MachineID: key.MachineID, OperatorID: key.OperatorID}).
		Order("start_time ASC").Find(&entries).Error; err != nil {
		return nil, nil, err
	}

	if len(entries) == 0 {
		stale := domain.DailySummary{}
		err := tx.Where(&domain.DailySummary{Date: key.Date, MachineID: key.MachineID, OperatorID: key.OperatorID}).
			First(&stale).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil, nil
		}
		if err != nil {
			return nil, nil, err
		}
		if err := tx.Delete(domain.DailySummary{}, "id = ?", stale.ID).Error; err != nil {
			return nil, nil, err
		}
		ev, err := event.CreateEvent(event.SourceTypeDailySummary, stale.ID, key.String(), event.EventCategoryDeleted, tx)
		if err != nil {
			return nil, nil, err
		}
		return nil, ev, nil
	}

	priorOrder, err := queryPriorDayTailOrder(key, tx)
	if err != nil {
		return nil, nil, err
	}

	activities, err := refdata.ActivityMapFunc(ctx)
	if err != nil {
		return nil, nil, err
	}

	machine, err := refdata.GetMachineFunc(key.MachineID, ctx)
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return nil, nil, err
		}
		// missing machine reference data is a warning, not fatal:
		// classification completes, pay fields stay zero
		logrus.Warnf("machine %s not found while recomputing %s, pay fields zeroed", key.MachineID.String(), key.String())
		machine = nil
	}

	s := Aggregate(AggregationInput{
		Key:        key,
		Entries:    entries,
		Activities: activities,
		Machine:    machine,
		PriorOrder: priorOrder,
	})
	s.ComputeTime = types.CurrentTimestamp()

	existed := domain.DailySummary{}
	err = tx.Where(&domain.DailySummary{Date: key.Date, MachineID: key.MachineID, OperatorID: key.OperatorID}).
		First(&existed).Error
	if err == nil {
		s.ID = existed.ID
	} else if gorm.IsRecordNotFoundError(err) {
		s.ID = idgen.NextID(summaryIdWorker)
	} else {
		return nil, nil, err
	}

	if err := tx.Save(s).Error; err != nil {
		return nil, nil, err
	}

	ev, err := event.CreateEvent(event.SourceTypeDailySummary, s.ID, key.String(), event.EventCategoryRecomputed, tx)
	if err != nil {
		return nil, nil, err
	}

	return s, ev, nil
}

// queryPriorDayTailOrder finds the production order of the latest entry (by
// end time) of the prior calendar day for the same machine and operator.
func queryPriorDayTailOrder(key domain.SummaryKey, tx *gorm.DB) (*string, error) {
	tail := domain.TimeEntry{}
	err := tx.Where(&domain.TimeEntry{Date: key.Date.AddDays(-1), MachineID: key.MachineID, OperatorID: key.OperatorID}).
		Order("end_time DESC").First(&tail).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return tail.OrderID, nil
}

func GetDailySummary(q DailySummaryQuery, ctx context.Context) (*domain.DailySummary, error) {
	var s domain.DailySummary
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Where(&domain.DailySummary{Date: domain.Date(q.Date), MachineID: q.MachineID, OperatorID: q.OperatorID}).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
