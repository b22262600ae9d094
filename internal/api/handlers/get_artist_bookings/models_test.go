package get_artist_bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_ToServiceRequest(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	t.Run("single date wins over range", func(t *testing.T) {
		q := Query{Date: "2025-06-03", From: "2025-06-01", To: "2025-06-30", Status: "confirmed"}
		req, err := q.ToServiceRequest(7, 1, loc)
		require.NoError(t, err)

		require.NotNil(t, req.StartDate)
		assert.Equal(t, *req.StartDate, *req.EndDate)
		assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, loc), *req.StartDate)
		assert.Equal(t, "confirmed", *req.Status)
	})

	t.Run("open range", func(t *testing.T) {
		q := Query{From: "2025-06-01", IncludeCancelled: true}
		req, err := q.ToServiceRequest(7, 1, loc)
		require.NoError(t, err)

		assert.NotNil(t, req.StartDate)
		assert.Nil(t, req.EndDate)
		assert.Nil(t, req.Status)
		assert.True(t, req.IncludeCancelled)
	})

	t.Run("bad date", func(t *testing.T) {
		q := Query{To: "03.06.2025"}
		_, err := q.ToServiceRequest(7, 1, loc)
		assert.Error(t, err)
	})
}
