package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeProcessRefund = "refund:process"

// RefundPayload is the deferred funds-movement order produced by a
// cancellation commit. AmountMinor is in the currency's minor unit.
type RefundPayload struct {
	PaymentRef  string `json:"paymentRef"`
	AmountMinor int64  `json:"amountMinor"`
	HotelID     string `json:"hotelId"`
	BookingID   string `json:"bookingId"`
}

// NewRefundTask builds the asynq task for a refund order.
func NewRefundTask(payload RefundPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeProcessRefund, b)
	opts := []asynq.Option{
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// AsynqRefundScheduler enqueues refund tasks on the shared Redis queue.
// It satisfies booking.RefundScheduler.
type AsynqRefundScheduler struct {
	Client *asynq.Client
}

func (s *AsynqRefundScheduler) ScheduleRefund(ctx context.Context, paymentRef string, amountMinor int64, hotelID, bookingID string) error {
	task, opts, err := NewRefundTask(RefundPayload{
		PaymentRef:  paymentRef,
		AmountMinor: amountMinor,
		HotelID:     hotelID,
		BookingID:   bookingID,
	})
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
