package export_bookings

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/slottime"
)

const (
	sheetName = "Bookings"

	// maxPeriodDays ограничение на размер одной выгрузки
	maxPeriodDays = 366
)

var columns = []struct {
	title string
	width float64
}{
	{"Date", 12},
	{"Time", 22},
	{"Queue", 8},
	{"Customer", 24},
	{"Phone", 16},
	{"Service", 28},
	{"Add-ons", 28},
	{"Specialist", 38},
	{"Source", 10},
	{"Request", 10},
	{"Status", 12},
	{"Paid", 8},
	{"Total", 12},
}

// UseCase выгрузка истории броней исполнителя в Excel
type UseCase struct {
	bookingRepo BookingRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		logger:      logger,
	}
}

// Execute строит XLSX файл с бронями исполнителя за период
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Проверяем период
	if req == nil || req.VendorID == "" {
		return nil, ErrInvalidInput
	}
	from, err := slottime.ParseDate(req.DateFrom)
	if err != nil {
		return nil, ErrInvalidDate
	}
	to, err := slottime.ParseDate(req.DateTo)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if to.Before(from) || to.Sub(from) > maxPeriodDays*24*time.Hour {
		return nil, ErrInvalidPeriod
	}

	// 2. Читаем брони
	filter := domain.BookingFilter{
		VendorID: &req.VendorID,
		DateFrom: &req.DateFrom,
		DateTo:   &req.DateTo,
	}
	bookings, err := uc.bookingRepo.List(ctx, filter, false)
	if err != nil {
		uc.logger.Error("ExportBookings: failed to list bookings for vendor=%s: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	// 3. Строим книгу
	content, err := buildWorkbook(req.DateFrom, req.DateTo, bookings)
	if err != nil {
		uc.logger.Error("ExportBookings: failed to build workbook for vendor=%s: %v", req.VendorID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("ExportBookings: vendor=%s period=%s..%s rows=%d", req.VendorID, req.DateFrom, req.DateTo, len(bookings))

	return &Response{
		FileName: fmt.Sprintf("bookings_%s_to_%s.xlsx", req.DateFrom, req.DateTo),
		Content:  content,
		Rows:     len(bookings),
	}, nil
}

func buildWorkbook(dateFrom, dateTo string, bookings []*domain.Booking) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s", dateFrom, dateTo))
	_ = f.MergeCell(sheetName, "A1", lastCol+"1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	// Шапка таблицы
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, c := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, c.title)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)

		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheetName, col, col, c.width)
	}

	// Строки броней
	canceledStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "#808080", Strike: true},
	})
	total := 0.0
	row := 3
	for _, b := range bookings {
		values := rowValues(b)
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", row), &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if b.IsActive() {
			total += b.TotalPrice
		} else {
			end, _ := excelize.CoordinatesToCellName(len(columns), row)
			_ = f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), end, canceledStyle)
		}
		row++
	}

	// Итог по активным броням
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	labelCell, _ := excelize.CoordinatesToCellName(len(columns)-1, row)
	totalCell, _ := excelize.CoordinatesToCellName(len(columns), row)
	_ = f.SetCellValue(sheetName, labelCell, "Total")
	_ = f.SetCellValue(sheetName, totalCell, total)
	_ = f.SetCellStyle(sheetName, labelCell, totalCell, totalStyle)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func rowValues(b *domain.Booking) []interface{} {
	queue := ""
	if b.QueueNumber != nil {
		queue = fmt.Sprintf("%d", *b.QueueNumber)
	}
	paid := "no"
	if b.IsPaid {
		paid = "yes"
	}
	addOns := ""
	for i, a := range b.AddOns {
		if i > 0 {
			addOns += ", "
		}
		addOns += a.Name
		if a.Qty > 1 {
			addOns += fmt.Sprintf(" x%d", a.Qty)
		}
	}

	return []interface{}{
		b.Date,
		b.TimeRange,
		queue,
		customerName(b),
		deref(b.CustomerPhone),
		b.ServiceName,
		addOns,
		deref(b.SpecialistID),
		string(b.BookingSource),
		string(b.Request),
		string(b.Status),
		paid,
		b.TotalPrice,
	}
}

func customerName(b *domain.Booking) string {
	if b.CustomerName != nil {
		return *b.CustomerName
	}
	return deref(b.CustomerID)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
