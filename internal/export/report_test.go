package export

import (
	"bytes"
	"testing"
	"time"

	"hotelms/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteBookingReport(t *testing.T) {
	today := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	bookings := []*models.Booking{
		{
			Reference:  "BK-AAAA1111",
			RoomNumber: "101",
			GuestName:  "Alice",
			GuestEmail: "alice@example.com",
			CheckIn:    time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
			CheckOut:   time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			TotalPrice: 300,
			Status:     models.StatusConfirmed,
		},
		{
			Reference:  "BK-BBBB2222",
			RoomNumber: "202",
			GuestName:  "Bob",
			GuestEmail: "bob@example.com",
			CheckIn:    time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:   time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC),
			TotalPrice: 200,
			Status:     models.StatusPending,
		},
	}

	var buf bytes.Buffer
	err := WriteBookingReport(&buf, bookings, today)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Contains(t, title, "2026-03-10")

	ref, err := f.GetCellValue(sheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "BK-AAAA1111", ref)

	nights, err := f.GetCellValue(sheetName, "G3")
	require.NoError(t, err)
	assert.Equal(t, "3", nights)

	lifecycle, err := f.GetCellValue(sheetName, "J3")
	require.NoError(t, err)
	assert.Equal(t, "upcoming", lifecycle)

	lifecycle, err = f.GetCellValue(sheetName, "J4")
	require.NoError(t, err)
	assert.Equal(t, "completed", lifecycle)
}

func TestWriteBookingReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteBookingReport(&buf, nil, time.Now())
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}
