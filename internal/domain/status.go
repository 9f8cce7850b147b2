package domain

// OperationType distinguishes forward movements from returns inside the
// purchases and sales sheets.
type OperationType string

const (
	OpPurchase       OperationType = "purchase"
	OpPurchaseReturn OperationType = "purchaseReturn"
	OpSale           OperationType = "sale"
	OpSaleReturn     OperationType = "saleReturn"
)

// IsReturn reports whether the operation reverses a forward movement.
func (o OperationType) IsReturn() bool {
	return o == OpPurchaseReturn || o == OpSaleReturn
}

// MatchStatus is the terminal state of a return row after matching.
type MatchStatus string

const (
	MatchMatched MatchStatus = "matched"
	MatchPartial MatchStatus = "partiallyMatched"
	MatchOrphan  MatchStatus = "orphan"
)

// ItemStatus classifies a reconciled material.
type ItemStatus string

const (
	ItemNormal  ItemStatus = "normal"
	ItemSurplus ItemStatus = "surplus"
	ItemNeed    ItemStatus = "need"
	ItemNew     ItemStatus = "newItem"
	ItemExpired ItemStatus = "expired"
)

// ExpiryStatus buckets a row by distance to its expiry date.
type ExpiryStatus string

const (
	ExpiryExpired  ExpiryStatus = "expired"
	ExpiryVeryNear ExpiryStatus = "veryNear"
	ExpiryNear     ExpiryStatus = "near"
	ExpiryFar      ExpiryStatus = "far"
	ExpiryUnknown  ExpiryStatus = "unknown"
)

// MovementStatus buckets a material by recent sales against stock on hand.
type MovementStatus string

const (
	MovementStagnant MovementStatus = "stagnant"
	MovementNeed     MovementStatus = "need"
	MovementSurplus  MovementStatus = "surplus"
	MovementAdequate MovementStatus = "adequate"
	MovementUnknown  MovementStatus = "unknown"
)

// UrgencyStatus classifies replenishment by days of consumption left.
type UrgencyStatus string

const (
	UrgencyUrgent   UrgencyStatus = "urgent"
	UrgencyNear     UrgencyStatus = "near"
	UrgencyAdequate UrgencyStatus = "adequate"
	UrgencyDeferred UrgencyStatus = "deferred"
)

// ABCClass is the cumulative-value classification band.
type ABCClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"
)

// RunStatus tracks a reconciliation run lifecycle.
type RunStatus string

const (
	RunPending    RunStatus = "pending"
	RunProcessing RunStatus = "processing"
	RunCompleted  RunStatus = "completed"
	RunFailed     RunStatus = "failed"
	RunCancelled  RunStatus = "cancelled"
)
