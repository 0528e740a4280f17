package billing

// PlanChangeEvent is the normalized shape of an external entitlement
// change delivered by the payment provider's webhook.
type PlanChangeEvent struct {
	EventType string `json:"event_type"`
	UserID    uint   `json:"user_id"`
	Plan      string `json:"plan"`
}

// EventTypePlanChanged is the only event type the webhook acts on;
// everything else is acknowledged and ignored.
const EventTypePlanChanged = "plan.changed"
