package constants

// Order status values. Transitions between them are enforced by
// model.Order.Transition.
const (
	OrderPending   = "pending"
	OrderPaid      = "paid"
	OrderRefunded  = "refunded"
	OrderCancelled = "cancelled"
)

// Payment status values on orders and payment records.
const (
	PaymentUnpaid    = "unpaid"
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment methods.
const (
	MethodCash = "cash"
	MethodCard = "card"
)

// User roles.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

var Roles = []string{RoleAdmin, RoleManager, RoleCashier}

// Modifier group selection types.
const (
	SelectionSingle   = "single"
	SelectionMultiple = "multiple"
)

// Cashier order visibility policy (CASHIER_ORDER_SCOPE).
const (
	OrderScopeAll = "all"
	OrderScopeOwn = "own"
)

// Shared response messages.
const (
	NOT_ADMIN        = "Admin or manager role required"
	ORDER_NOT_FOUND  = "Order not found"
	CART_NOT_FOUND   = "Cart not found or expired"
	PAYMENT_FAILED   = "Payment failed, please try again"
	INVALID_INPUT    = "Invalid request payload"
	ORG_NOT_FOUND    = "Organization not found"
	ITEM_NOT_FOUND   = "Item not found"
	UNAUTHORIZED_MSG = "Please sign in"
)
