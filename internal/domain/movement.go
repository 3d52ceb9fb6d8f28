package domain

import (
	"time"

	"github.com/google/uuid"
)

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementReplenishment MovementType = "replenishment"
	MovementSale          MovementType = "sale"
	MovementCorrection    MovementType = "correction"
	MovementTransfer      MovementType = "transfer"
	MovementReturn        MovementType = "return"
)

func (t MovementType) IsValid() bool {
	switch t {
	case MovementReplenishment, MovementSale, MovementCorrection, MovementTransfer, MovementReturn:
		return true
	}
	return false
}

// SignedDelta returns the quantity change a movement applies to on-hand
// stock. Replenishments and returns add; sales, corrections and
// transfers subtract. Transfers are recorded at the source record only;
// the receiving side books its own replenishment.
func (t MovementType) SignedDelta(quantity int) int {
	q := quantity
	if q < 0 {
		q = -q
	}
	switch t {
	case MovementReplenishment, MovementReturn:
		return q
	default:
		return -q
	}
}

// StockMovement is one immutable entry in the stock ledger. Quantity is
// stored as an absolute value; direction is implied by Type. Both the
// before and after quantities are snapshotted at apply time.
type StockMovement struct {
	ID               string       `json:"id" bson:"_id"`
	ProductID        string       `json:"productId" bson:"product_id"`
	ChannelID        string       `json:"channelId" bson:"channel_id"`
	Type             MovementType `json:"type" bson:"type"`
	Quantity         int          `json:"quantity" bson:"quantity"`
	PreviousQuantity int          `json:"previousQuantity" bson:"previous_quantity"`
	NewQuantity      int          `json:"newQuantity" bson:"new_quantity"`
	Reason           string       `json:"reason,omitempty" bson:"reason,omitempty"`
	Reference        string       `json:"reference,omitempty" bson:"reference,omitempty"`
	CreatedBy        string       `json:"createdBy" bson:"created_by"`
	CreatedAt        time.Time    `json:"createdAt" bson:"created_at"`
}

// NewStockMovement records the application of a movement against an
// inventory record. previous and next are the quantity snapshots taken
// under the record lock.
func NewStockMovement(productID, channelID string, movementType MovementType, quantity, previous, next int, reason, reference, createdBy string) *StockMovement {
	if quantity < 0 {
		quantity = -quantity
	}
	if createdBy == "" {
		createdBy = "system"
	}

	return &StockMovement{
		ID:               "MOV-" + uuid.New().String()[:8],
		ProductID:        productID,
		ChannelID:        channelID,
		Type:             movementType,
		Quantity:         quantity,
		PreviousQuantity: previous,
		NewQuantity:      next,
		Reason:           reason,
		Reference:        reference,
		CreatedBy:        createdBy,
		CreatedAt:        time.Now().UTC(),
	}
}
