package refdata

import (
	"context"
	"fmt"
	"shopfloor/domain"
	"shopfloor/persistence"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
)

const activityCacheKey = "activities"

var (
	activityCache = cache.New(5*time.Minute, 1*time.Minute)

	QueryActivitiesFunc = QueryActivities
	ActivityMapFunc     = ActivityMap
)

func QueryActivities(ctx context.Context) ([]domain.Activity, error) {
	activities := []domain.Activity{}
	db := persistence.ActiveDataSourceManager.GormDB(ctx)
	if err := db.Order("code ASC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

// ActivityMap returns the activity enumeration keyed by code, cached for a
// short interval because activities rarely change and every recompute needs
// the whole set.
func ActivityMap(ctx context.Context) (map[string]domain.Activity, error) {
	if cached, found := activityCache.Get(activityCacheKey); found {
		if m, ok := cached.(map[string]domain.Activity); ok {
			return m, nil
		}
	}

	activities, err := QueryActivitiesFunc(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]domain.Activity, len(activities))
	for _, a := range activities {
		m[a.Code] = a
	}
	activityCache.Set(activityCacheKey, m, cache.DefaultExpiration)
	return m, nil
}

func GetActivity(code string, ctx context.Context) (*domain.Activity, error) {
	m, err := ActivityMapFunc(ctx)
	if err != nil {
		return nil, err
	}
	a, found := m[code]
	if !found {
		return nil, gorm.ErrRecordNotFound
	}
	return &a, nil
}

// SeedActivities writes the missing rows of the fixed activity enumeration
// and rejects configured codes outside of it: an unknown code in the table
// is a configuration error, not a runtime default.
func SeedActivities(db *gorm.DB) error {
	for _, seed := range domain.DefaultActivities {
		existed := domain.Activity{}
		err := db.Where(&domain.Activity{Code: seed.Code}).First(&existed).Error
		if err == nil {
			continue
		}
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}
		if err := db.Create(&seed).Error; err != nil {
			return err
		}
	}

	configured := []domain.Activity{}
	if err := db.Find(&configured).Error; err != nil {
		return err
	}
	for _, a := range configured {
		if !domain.KnownActivityCode(a.Code) {
			return fmt.Errorf("activity code %q is not part of the fixed enumeration", a.Code)
		}
	}

	activityCache.Flush()
	return nil
}
