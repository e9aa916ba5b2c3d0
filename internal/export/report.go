package export

import (
	"fmt"
	"io"
	"time"

	"hotelms/internal/booking"
	"hotelms/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

var columns = []string{
	"Reference", "Room", "Guest", "Email", "Check-in", "Check-out",
	"Nights", "Total", "Status", "Lifecycle",
}

// WriteBookingReport renders the bookings as an xlsx workbook. Lifecycle
// phases are derived against the supplied today.
func WriteBookingReport(w io.Writer, bookings []*models.Booking, today time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Bookings as of %s", today.Format(booking.DateLayout)))

	for i, header := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
	}

	for row, b := range bookings {
		values := []interface{}{
			b.Reference,
			b.RoomNumber,
			b.GuestName,
			b.GuestEmail,
			b.CheckIn.Format(booking.DateLayout),
			b.CheckOut.Format(booking.DateLayout),
			booking.Nights(b.CheckIn, b.CheckOut),
			b.TotalPrice,
			b.Status,
			booking.LifecycleStatus(b.CheckIn, b.CheckOut, today),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+3)
			_ = f.SetCellValue(sheetName, cell, v)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 14)
	_ = f.SetColWidth(sheetName, "B", "J", 18)

	lastCol, _ := excelize.CoordinatesToCellName(len(columns), 1)
	_ = f.MergeCell(sheetName, "A1", lastCol)

	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", style)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	firstHeader, _ := excelize.CoordinatesToCellName(1, 2)
	lastHeader, _ := excelize.CoordinatesToCellName(len(columns), 2)
	_ = f.SetCellStyle(sheetName, firstHeader, lastHeader, headerStyle)

	_ = f.DeleteSheet("Sheet1")

	if err := f.Write(w); err != nil {
		return fmt.Errorf("error writing report: %v", err)
	}
	return nil
}
