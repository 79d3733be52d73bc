package report

import (
	"net/http"
	"shopfloor/bizerror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathMonthlyReports = "/v1/reports/monthly"
)

func RegisterReportRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathMonthlyReports, middleWares...)
	g.GET("", handleGetMonthlyReport)
}

func handleGetMonthlyReport(c *gin.Context) {
	query := MonthlyReportQuery{}
	if err := c.MustBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := BuildMonthlyReportFunc(query, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
