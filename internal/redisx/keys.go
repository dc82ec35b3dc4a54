package redisx

import "time"

const (
	// Product listing cache: products:all -> JSON array
	KeyProductList = "products:all"

	// Everything under products:* is dropped after any stock movement.
	PatternProducts = "products:*"

	// Cached order status: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Capped list of recent order events for the admin dashboard.
	KeyAdminFeed = "admin:notifications"
)

var (
	TTLProductList = 5 * time.Minute
	TTLStatusCache = 5 * time.Minute
)

// AdminFeedMax bounds the dashboard feed; older entries are trimmed.
const AdminFeedMax = 100
