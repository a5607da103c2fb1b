package get_available_slots

// Request модель запроса на получение доступных слотов
type Request struct {
	VendorID     string  // ID салона или мастера
	ServiceID    string  // ID услуги, задает длину слота
	SpecialistID *string // обязателен для салона
	Date         string  // YYYY-MM-DD
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            string
	VendorID        string
	SpecialistID    *string
	DurationMinutes int
	Slots           []Slot
}

// Slot свободный слот
type Slot struct {
	Start int    // минуты от полуночи
	End   int    // минуты от полуночи
	Time  string // "9:00 AM - 9:30 AM"
}
