package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	VendorID        string          `json:"vendorId"`
	SpecialistID    *string         `json:"specialistId,omitempty"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time      string `json:"time"` // "9:00 AM - 9:30 AM"
	SlotStart int    `json:"slotStart"`
	SlotEnd   int    `json:"slotEnd"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:      slot.Time,
			SlotStart: slot.Start,
			SlotEnd:   slot.End,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date,
		VendorID:        resp.VendorID,
		SpecialistID:    resp.SpecialistID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(vendorID, serviceID, specialistID, date string) *getAvailableSlots.Request {
	req := &getAvailableSlots.Request{
		VendorID:  vendorID,
		ServiceID: serviceID,
		Date:      date,
	}
	if specialistID != "" {
		req.SpecialistID = &specialistID
	}
	return req
}
