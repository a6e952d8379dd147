//go:build unit

package booking_test

import (
	"testing"
	"time"

	"bodyshop/internal/domain/booking"
	"bodyshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := booking.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "2024-02-29", booking.FormatDate(d))

	for _, bad := range []string{"2024-13-01", "2023-02-29", "2024-1-01", "01-02-2024", "", "2024-01-01T00:00:00Z"} {
		t.Run(bad, func(t *testing.T) {
			_, err := booking.ParseDate(bad)
			assert.ErrorIs(t, err, booking.ErrInvalidDate)
			assert.True(t, errs.Is(err, errs.ErrValidation))
		})
	}
}
