package orders

// All order lifecycle events share one topic so per-order ordering is
// preserved by the partition key.
const TopicOrderEvents = "order.events"

func PartitionKey(orderID string) []byte { return []byte(orderID) }
