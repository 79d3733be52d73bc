package indices

import (
	"context"
	"shopfloor/domain"
	"shopfloor/persistence"

	cron "github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

func StartCron() {
	crontab := cron.New(cron.WithSeconds())
	crontab.AddFunc("0 0 23 * * ?", indicesFullSync)
	crontab.Start()
}

func indicesFullSync() {
	page := 1
	pageSize := 500

	db := persistence.ActiveDataSourceManager.GormDB(context.Background())

	for {
		summaries := make([]domain.DailySummary, 0, pageSize)
		if err := db.Order("ID ASC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&summaries).Error; err != nil {
			logrus.Errorf("fully index: page = %d, pageSize = %d, err = %v", page, pageSize, err)
			break
		}

		if len(summaries) == 0 {
			logrus.Infof("fully index: there are no more summaries to index")
			break
		}

		IndexSummaries(summaries)
		page++
	}
}
