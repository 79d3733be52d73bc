package entry

import (
	"net/http"
	"shopfloor/bizerror"
	"shopfloor/domain"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathTimeEntries = "/v1/time-entries"
)

func RegisterTimeEntriesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTimeEntries, middleWares...)
	g.POST("", handleCreateTimeEntry)
	g.GET("", handleQueryTimeEntries)
	g.DELETE(":id", handleDeleteTimeEntry)
	g.DELETE("", handleBulkDeleteTimeEntries)
}

func handleCreateTimeEntry(c *gin.Context) {
	creation := domain.TimeEntryCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateTimeEntryFunc(creation, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleQueryTimeEntries(c *gin.Context) {
	query := domain.TimeEntryQuery{}
	if err := c.MustBindWith(&query, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := QueryTimeEntriesFunc(query, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, records)
}

func handleDeleteTimeEntry(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	if err := DeleteTimeEntryFunc(id, c.Request.Context()); err != nil {
		panic(err)
	}
	c.Status(http.StatusNoContent)
}

func handleBulkDeleteTimeEntries(c *gin.Context) {
	deletion := domain.TimeEntryBulkDeletion{}
	if err := c.MustBindWith(&deletion, binding.Query); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	deleted, err := BulkDeleteTimeEntriesFunc(deletion, c.Request.Context())
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
