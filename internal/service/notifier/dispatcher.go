package notifier

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/pushgateway"
)

const (
	resultSent     = "sent"
	resultSkipped  = "skipped"
	resultFailed   = "failed"
	resultRecorded = "recorded"
	resultDropped  = "dropped"
)

// ErrInternal возвращается при ошибках чтения уведомлений
var ErrInternal = errors.New("notifier: internal error")

type job struct {
	ctx context.Context
	n   domain.Notification
}

// Dispatcher рассылает уведомления в фоне фиксированным пулом воркеров
// Ошибки доставки только логируются и никогда не возвращаются вызывающему
type Dispatcher struct {
	users   UserRepository
	records NotificationRepository
	push    PushClient // nil, если push отключен
	metrics Metrics
	logger  Logger

	timeout time.Duration
	queue   chan job

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает рассыльщик и запускает воркеры
// concurrency ограничивает число одновременных отправок, queueSize число ожидающих
func NewDispatcher(
	users UserRepository,
	records NotificationRepository,
	push PushClient,
	metrics Metrics,
	timeout time.Duration,
	concurrency int,
	queueSize int,
	logger Logger,
) *Dispatcher {
	if concurrency < 1 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	d := &Dispatcher{
		users:   users,
		records: records,
		push:    push,
		metrics: metrics,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan job, queueSize),
	}

	d.wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go d.worker()
	}
	return d
}

// Notify ставит уведомление в очередь и сразу возвращает управление
// При переполненной очереди уведомление отбрасывается. Отмена ctx запроса не прерывает отправку
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		d.logger.Warn("Notify: dispatcher closed, dropping %s for user=%s", n.Type, n.ReceiverID)
		return
	}

	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), n: n}:
	default:
		d.count(resultDropped)
		d.logger.Warn("Notify: queue is full, dropping %s for user=%s", n.Type, n.ReceiverID)
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for j := range d.queue {
		sendCtx, cancel := context.WithTimeout(j.ctx, d.timeout)
		d.deliver(sendCtx, j.n)
		cancel()
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n domain.Notification) {
	user, err := d.users.GetUser(ctx, n.ReceiverID)
	if err != nil {
		d.count(resultFailed)
		d.logger.Warn("Notify: failed to load receiver user=%s: %v", n.ReceiverID, err)
		return
	}

	// Уведомляем только тех, у кого есть токен устройства
	if !user.HasPushToken() {
		d.count(resultSkipped)
		return
	}

	if d.push != nil {
		_, err := d.push.Send(ctx, pushgateway.Message{
			Tokens: user.PushTokens,
			Title:  n.Title,
			Body:   n.Message,
			Data: map[string]string{
				"type":      string(n.Type),
				"bookingId": n.BookingID,
			},
		})
		if err != nil {
			d.count(resultFailed)
			d.logger.Error("Notify: push to user=%s failed: %v", n.ReceiverID, err)
			return
		}
		d.count(resultSent)
	}

	if err := d.records.Create(ctx, &n); err != nil {
		d.logger.Error("Notify: failed to record notification for user=%s: %v", n.ReceiverID, err)
		return
	}
	d.count(resultRecorded)
}

// List возвращает последние уведомления пользователя
func (d *Dispatcher) List(ctx context.Context, userID string, limit uint64) ([]*domain.Notification, error) {
	items, err := d.records.ListByReceiver(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list notifications: %v", ErrInternal, err)
	}
	return items, nil
}

// Close перестает принимать уведомления и ждет, пока воркеры разберут очередь
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) count(result string) {
	if d.metrics != nil {
		d.metrics.IncNotification(result)
	}
}
