package refdata

import (
	"context"
	"shopfloor/domain"
	"shopfloor/idgen"
	"shopfloor/persistence"

	"time"

	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
	"github.com/sony/sonyflake"
)

const settingsCacheKey = "report_settings"

var settingsCache = cache.New(5*time.Minute, 1*time.Minute)

// thresholds applied when no settings row has been configured yet
var defaultReportSettings = domain.ReportSettings{RedBelow: 0.8, GreenFrom: 1.0}

var (
	settingsIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	GetReportSettingsFunc    = GetReportSettings
	UpdateReportSettingsFunc = UpdateReportSettings
)

func GetReportSettings(ctx context.Context) (*domain.ReportSettings, error) {
	if cached, found := settingsCache.Get(settingsCacheKey); found {
		if s, ok := cached.(domain.ReportSettings); ok {
			return &s, nil
		}
	}

	var s domain.ReportSettings
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.First(&s).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			s = defaultReportSettings
		} else {
			return nil, err
		}
	}
	settingsCache.Set(settingsCacheKey, s, cache.DefaultExpiration)
	return &s, nil
}

func UpdateReportSettings(u domain.ReportSettings, ctx context.Context) (*domain.ReportSettings, error) {
	db := persistence.ActiveDataSourceManager.GormDB(ctx)

	var s domain.ReportSettings
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&s).Error
		if gorm.IsRecordNotFoundError(err) {
			s = domain.ReportSettings{ID: idgen.NextID(settingsIdWorker), RedBelow: u.RedBelow, GreenFrom: u.GreenFrom}
			return tx.Create(&s).Error
		}
		if err != nil {
			return err
		}
		s.RedBelow = u.RedBelow
		s.GreenFrom = u.GreenFrom
		return tx.Save(&s).Error
	})
	if err != nil {
		return nil, err
	}

	settingsCache.Delete(settingsCacheKey)
	return &s, nil
}
