package orders

type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusConfirmed      Status = "confirmed"
	StatusProcessing     Status = "processing"
	StatusShipped        Status = "shipped"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// validNext is the transition allow-list consulted before every status
// write. delivered and cancelled are terminal.
var validNext = map[Status]map[Status]bool{
	StatusPendingPayment: {StatusConfirmed: true, StatusCancelled: true},
	StatusConfirmed:      {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing:     {StatusShipped: true, StatusCancelled: true},
	StatusShipped:        {StatusDelivered: true},
	StatusDelivered:      {},
	StatusCancelled:      {},
}

func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

// CanCancel reports whether an order in the given state may still be
// cancelled (stock restored, status set to cancelled).
func CanCancel(from Status) bool {
	return CanTransition(from, StatusCancelled)
}

func ValidStatus(s Status) bool {
	_, ok := validNext[s]
	return ok
}
