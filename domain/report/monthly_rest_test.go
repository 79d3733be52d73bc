package report_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"shopfloor/bizerror"
	"shopfloor/domain/report"
	"shopfloor/testinfra"
	"testing"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestGetMonthlyReportAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.Default()
	router.Use(bizerror.ErrorHandling())
	report.RegisterReportRestAPI(router)

	t.Run("should be able to validate parameters", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, report.PathMonthlyReports, nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param",
		"message": "Key: 'MonthlyReportQuery.Year' Error:Field validation for 'Year' failed on the 'required' tag\n` +
			`Key: 'MonthlyReportQuery.Month' Error:Field validation for 'Month' failed on the 'required' tag",
		"data":null}`))

		req = httptest.NewRequest(http.MethodGet, report.PathMonthlyReports+"?year=2025&month=13", nil)
		status, body, _ = testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param",
		"message": "Key: 'MonthlyReportQuery.Month' Error:Field validation for 'Month' failed on the 'lte' tag",
		"data":null}`))
	})

	t.Run("should be able to handle query request successfully", func(t *testing.T) {
		var q1 report.MonthlyReportQuery
		report.BuildMonthlyReportFunc = func(q report.MonthlyReportQuery, ctx context.Context) (*report.MonthlyReport, error) {
			q1 = q
			return &report.MonthlyReport{From: "2025-03-01", To: "2025-03-31",
				OperatorRows: []report.OperatorRow{}, MachineRows: []report.MachineRow{},
				DailyTrend: []report.TrendPoint{}}, nil
		}
		req := httptest.NewRequest(http.MethodGet,
			report.PathMonthlyReports+"?year=2025&month=3&operatorId=7", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"from":"2025-03-01", "to":"2025-03-31",
			"operatorRows":[], "machineRows":[], "dailyTrend":[]}`))
		Expect(q1).To(Equal(report.MonthlyReportQuery{Year: 2025, Month: 3, OperatorID: types.ID(7)}))
	})
}
