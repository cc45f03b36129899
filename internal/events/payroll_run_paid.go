package events

import "time"

const PayrollRunPaidTopic = "payroll.run.paid.v1"

// PayrollRunPaidEvent announces that finance confirmed disbursement of a
// locked run. Consumers use it to kick off payslip finalization.
type PayrollRunPaidEvent struct {
	EventType  string    `json:"event_type"`
	RunID      string    `json:"run_id"`
	RunNumber  string    `json:"run_number"`
	Period     string    `json:"period"`
	FinanceID  string    `json:"finance_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
