package refdata

import (
	"context"
	"shopfloor/bizerror"
	"shopfloor/domain"
	"shopfloor/idgen"
	"shopfloor/persistence"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
	"github.com/sony/sonyflake"
)

var (
	machineIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})
	machineCache    = cache.New(5*time.Minute, 1*time.Minute)

	CreateMachineFunc = CreateMachine
	UpdateMachineFunc = UpdateMachine
	QueryMachinesFunc = QueryMachines
	GetMachineFunc    = GetMachine
)

func CreateMachine(c domain.MachineCreation, ctx context.Context) (*domain.Machine, error) {
	m := domain.Machine{
		ID:         idgen.NextID(machineIdWorker),
		Name:       c.Name,
		Target:     c.Target,
		UnitValue:  c.UnitValue,
		BonusStart: c.BonusStart,
		BonusEnd:   c.BonusEnd,
		CreateTime: types.CurrentTimestamp(),
	}

	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	existed := domain.Machine{}
	err := db.Where(&domain.Machine{Name: c.Name}).First(&existed).Error
	if err == nil {
		return nil, bizerror.ErrMachineExisted
	}
	if !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	if err := db.Create(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func UpdateMachine(id types.ID, u domain.MachineUpdating, ctx context.Context) (*domain.Machine, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	var m domain.Machine
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&domain.Machine{ID: id}).First(&m).Error; err != nil {
			return err
		}
		changes := map[string]interface{}{}
		if u.Name != "" {
			changes["name"] = u.Name
		}
		if u.Target != nil {
			changes["target"] = *u.Target
		}
		if u.UnitValue != nil {
			changes["unit_value"] = *u.UnitValue
		}
		if u.BonusStart != nil {
			changes["bonus_start"] = *u.BonusStart
		}
		if u.BonusEnd != nil {
			changes["bonus_end"] = *u.BonusEnd
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.Model(&domain.Machine{}).Where(&domain.Machine{ID: id}).Update(changes).Error; err != nil {
			return err
		}
		return tx.Where(&domain.Machine{ID: id}).First(&m).Error
	})
	if err != nil {
		return nil, err
	}

	machineCache.Delete(id.String())
	return &m, nil
}

func QueryMachines(ctx context.Context) ([]domain.Machine, error) {
	machines := []domain.Machine{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Order("ID ASC").Find(&machines).Error; err != nil {
		return nil, err
	}
	return machines, nil
}

func GetMachine(id types.ID, ctx context.Context) (*domain.Machine, error) {
	if cached, found := machineCache.Get(id.String()); found {
		if m, ok := cached.(domain.Machine); ok {
			return &m, nil
		}
	}

	var m domain.Machine
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Where(&domain.Machine{ID: id}).First(&m).Error; err != nil {
		return nil, err
	}
	machineCache.Set(id.String(), m, cache.DefaultExpiration)
	return &m, nil
}
