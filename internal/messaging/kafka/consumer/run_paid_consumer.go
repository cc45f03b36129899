package consumer

import (
	"context"
	"encoding/json"
	"errors"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-payroll/internal/events"
	"go-payroll/internal/payroll"
	payrollerrors "go-payroll/internal/payroll/errors"
)

// ConsumeRunPaid finalizes payslips for runs announced on the run-paid
// topic. Payslip generation skips already-generated slips, so redelivered
// messages are harmless.
func ConsumeRunPaid(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.run_paid")
	log.Info("run paid consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("run paid consumer stopped")
				return
			}
			log.Error("fetch run paid message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode run paid event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		resp, err := payrollService.GeneratePayslips(ctx, event.RunID)
		if err != nil {
			// A vanished or reverted run will never become generatable;
			// commit so the message is not retried forever.
			if errors.Is(err, payrollerrors.ErrRunNotFound) {
				log.Warn("run paid event for unknown run, skipping",
					zap.String("run_id", event.RunID),
					zap.String("run_number", event.RunNumber),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("generate payslips failed",
				zap.String("run_id", event.RunID),
				zap.String("run_number", event.RunNumber),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit run paid message failed", zap.Error(err))
			continue
		}

		log.Info("payslips finalized from run paid event",
			zap.String("run_number", event.RunNumber),
			zap.Int("generated", resp.Generated),
			zap.Int("skipped", resp.Skipped),
		)
	}
}
