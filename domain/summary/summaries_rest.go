package summary

import (
	"net/http"
	"shopfloor/bizerror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathDailySummaries = "/v1/daily-summaries"
	PathPayPreviews    = "/v1/pay-previews"
)

func RegisterDailySummariesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathDailySummaries, middleWares...)
	g.GET("", handleGetDailySummary)
	g.POST("recompute", handleRecomputeDaily)

	p := r.Group(PathPayPreviews, middleWares...)
	p.POST("", handlePayPreview)
}

func handleGetDailySummary(c *gin.Context) {
	query := DailySummaryQuery{}
	if err := c.MustBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := GetDailySummaryFunc(query, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleRecomputeDaily(c *gin.Context) {
	query := DailySummaryQuery{}
	if err := c.ShouldBindBodyWith(&query, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := RecomputeDailyFunc(query, c.Request.Context())
	if err != nil {
		panic(err)
	}
	if record == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, record)
}

func handlePayPreview(c *gin.Context) {
	request := PayPreviewRequest{}
	if err := c.ShouldBindBodyWith(&request, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	c.JSON(http.StatusOK, PreviewPay(request))
}
