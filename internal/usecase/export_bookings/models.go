package export_bookings

// Request период выгрузки, даты включительно
type Request struct {
	VendorID string
	DateFrom string
	DateTo   string
}

// Response готовый XLSX файл
type Response struct {
	FileName string
	Content  []byte
	Rows     int
}
