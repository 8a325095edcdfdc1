package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"stayhub/config"
	"stayhub/services/tasks"
	"stayhub/utils"

	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/refund"
	"go.uber.org/zap"
)

// InitRefundWorker runs the async refund worker in background. Refunds are
// deferred work: the cancellation already committed, so failures here are
// retried by asynq and never touch booking state.
func InitRefundWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeProcessRefund, handleRefundTask)

	go func() {
		log.Println("[RefundWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RefundWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RefundWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// handleRefundTask moves the frozen refund amount back through the payment
// gateway. Returning an error lets asynq retry with backoff.
func handleRefundTask(ctx context.Context, t *asynq.Task) error {
	logger := utils.GetLogger()

	var payload tasks.RefundPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logger.Error("refund task payload malformed", zap.Error(err))
		// Malformed payloads never parse; retrying is pointless.
		return nil
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(payload.PaymentRef),
		Amount:        stripe.Int64(payload.AmountMinor),
	}
	params.Context = ctx

	ref, err := refund.New(params)
	if err != nil {
		logger.Error("refund failed, will retry",
			zap.String("bookingId", payload.BookingID),
			zap.String("paymentRef", payload.PaymentRef),
			zap.Error(err))
		return err
	}

	logger.Info("refund processed",
		zap.String("bookingId", payload.BookingID),
		zap.String("refundId", ref.ID),
		zap.Int64("amountMinor", payload.AmountMinor))
	return nil
}
