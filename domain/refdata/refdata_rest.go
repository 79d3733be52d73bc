package refdata

import (
	"net/http"
	"shopfloor/bizerror"
	"shopfloor/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathActivities     = "/v1/activities"
	PathMachines       = "/v1/machines"
	PathReportSettings = "/v1/report-settings"
)

func RegisterRefDataRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	a := r.Group(PathActivities, middleWares...)
	a.GET("", handleQueryActivities)

	m := r.Group(PathMachines, middleWares...)
	m.GET("", handleQueryMachines)
	m.POST("", handleCreateMachine)
	m.PUT(":id", handleUpdateMachine)

	s := r.Group(PathReportSettings, middleWares...)
	s.GET("", handleGetReportSettings)
	s.PUT("", handleUpdateReportSettings)
}

func handleQueryActivities(c *gin.Context) {
	records, err := QueryActivitiesFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleQueryMachines(c *gin.Context) {
	records, err := QueryMachinesFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleCreateMachine(c *gin.Context) {
	creation := domain.MachineCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateMachineFunc(creation, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleUpdateMachine(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	updating := domain.MachineUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := UpdateMachineFunc(id, updating, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleGetReportSettings(c *gin.Context) {
	record, err := GetReportSettingsFunc(c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleUpdateReportSettings(c *gin.Context) {
	updating := domain.ReportSettings{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := UpdateReportSettingsFunc(updating, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}
