package create_walkin_booking

import "time"

// Request модель запроса на запись в живую очередь
type Request struct {
	QRToken       string
	ServiceID     string
	SpecialistID  string
	CustomerName  string
	CustomerPhone string
}

// Config ограничения живой очереди
type Config struct {
	MaxPerPhone int           // 0 отключает ограничение
	Window      time.Duration // окно подсчета записей
}
