package main

import (
	"context"
	"log"
	"net/http"
	"shopfloor/bizerror"
	"shopfloor/common"
	"shopfloor/domain"
	"shopfloor/domain/entry"
	"shopfloor/domain/refdata"
	"shopfloor/domain/report"
	"shopfloor/domain/summary"
	"shopfloor/es"
	"shopfloor/event"
	"shopfloor/indices"
	"shopfloor/infra/tracing"
	"shopfloor/persistence"
	"shopfloor/servehttp"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	log.Println("service start")

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		log.Fatalf("parse database config failed %v\n", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			log.Fatalf("failed to prepare database %v\n", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		log.Fatalf("database conneciton failed %v\n", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(&domain.TimeEntry{}, &domain.DailySummary{},
		&domain.Activity{}, &domain.Machine{}, &domain.ReportSettings{}, &event.EventRecord{}).Error
	if err != nil {
		log.Fatalf("database migration failed %v\n", err)
	}
	if err := refdata.SeedActivities(ds.GormDB(context.Background())); err != nil {
		log.Fatalf("activity seed failed %v\n", err)
	}

	closer, err := tracing.StartTracing(common.GetServiceName())
	if err != nil {
		log.Fatalf("tracing start failed %v\n", err)
	}
	defer closer.Close()

	if err := es.Start(); err != nil {
		log.Fatalf("elasticsearch client start failed %v\n", err)
	}
	event.EventHandlers = append(event.EventHandlers, indices.SummaryEventHandler)
	indices.StartCron()

	engine := gin.Default()
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "shopfloor")
	})

	middleWares := []gin.HandlerFunc{tracing.TracingIngress(), bizerror.ErrorHandling()}
	entry.RegisterTimeEntriesRestAPI(engine, middleWares...)
	summary.RegisterDailySummariesRestAPI(engine, middleWares...)
	refdata.RegisterRefDataRestAPI(engine, middleWares...)
	report.RegisterReportRestAPI(engine, append(middleWares, servehttp.RateLimit(rate.Limit(5), 10))...)

	servehttp.StartHTTPServer(engine)
}
