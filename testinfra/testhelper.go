package testinfra

import (
	"net/http"
	"net/http/httptest"
	"shopfloor/domain"
	"time"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code, w.Body.String(), w
}

// BuildTimeEntry builds an in-memory entry with its duration derived from
// the "HH:MM" clock bounds, for engine tests that need no database.
func BuildTimeEntry(date domain.Date, start, end string, activityCode string, orderId *string,
	output, scrap int) domain.TimeEntry {

	s := atClock(date, start)
	e := atClock(date, end)
	return domain.TimeEntry{
		Date:            date,
		Start:           types.Timestamp(s),
		End:             types.Timestamp(e),
		DurationMinutes: int(e.Sub(s) / time.Minute),
		OrderID:         orderId,
		ActivityCode:    activityCode,
		Output:          output,
		Scrap:           scrap,
	}
}

func atClock(date domain.Date, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		panic(err)
	}
	day := date.Time()
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}
