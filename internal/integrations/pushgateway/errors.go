package pushgateway

import "errors"

var (
	// ErrNoTokens возвращается, если у получателя нет токенов устройств
	ErrNoTokens = errors.New("pushgateway client: no device tokens")

	// ErrDeliveryFailed возвращается, если шлюз не доставил ни одного сообщения
	ErrDeliveryFailed = errors.New("pushgateway client: delivery failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pushgateway client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("pushgateway client: invalid response")
)
