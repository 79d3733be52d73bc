package indices

import (
	"context"
	"fmt"
	"shopfloor/domain"
	"shopfloor/es"
	"shopfloor/event"
	"shopfloor/persistence"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var (
	SummaryIndexName = "daily_summaries"
)

type SummaryDocument struct {
	domain.DailySummary
}

type BatchActionError map[types.ID]error

func (e BatchActionError) Error() string {
	return fmt.Sprintf("%v", map[types.ID]error(e))
}

func IndexSummaries(summaries []domain.DailySummary) error {
	docs := make([]SummaryDocument, 0, len(summaries))
	for _, s := range summaries {
		docs = append(docs, SummaryDocument{DailySummary: s})
	}

	if err := saveSummaryDocuments(docs); err != nil {
		return err
	}
	return nil
}

func saveSummaryDocuments(docs []SummaryDocument) BatchActionError {
	errs := BatchActionError{}

	for _, doc := range docs {
		if err := es.IndexFunc(SummaryIndexName, doc.ID, doc); err != nil {
			errs[doc.ID] = err
			logrus.Warnf("index summary %d %s %s\n", doc.ID, doc.Date, err)
		} else {
			logrus.Infof("index summary %d %s successfully\n", doc.ID, doc.Date)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// SummaryEventHandler keeps the search index in step with summary rewrites.
// Indexing failures never fail the mutation that produced the event.
func SummaryEventHandler(e *event.EventRecord) *event.EventHandleResult {
	if e.SourceType != event.SourceTypeDailySummary {
		return nil
	}

	result := event.EventHandleResult{Success: true, HandlerIdentifier: "summaryIndexer"}
	switch e.EventCategory {
	case event.EventCategoryRecomputed:
		s := domain.DailySummary{}
		db := persistence.ActiveDataSourceManager.GormDB(context.Background())
		if err := db.Where(&domain.DailySummary{ID: e.SourceId}).First(&s).Error; err != nil {
			result.Success = false
			result.Message = err.Error()
			return &result
		}
		if err := IndexSummaries([]domain.DailySummary{s}); err != nil {
			result.Success = false
			result.Message = err.Error()
		}
	case event.EventCategoryDeleted:
		if err := es.DeleteFunc(SummaryIndexName, e.SourceId); err != nil {
			result.Success = false
			result.Message = err.Error()
		}
	default:
		return nil
	}
	return &result
}
