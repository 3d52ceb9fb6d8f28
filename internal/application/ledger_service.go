package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/kafka"
	"github.com/stocksync/inventory-service/pkg/logging"
)

// DefaultMovementLimit caps movement listings unless a limit is given.
const DefaultMovementLimit = 50

// RecordMovementCommand carries a ledger entry request.
type RecordMovementCommand struct {
	ProductID string              `json:"productId"`
	ChannelID string              `json:"channelId"`
	Type      domain.MovementType `json:"type"`
	Quantity  int                 `json:"quantity"`
	Reason    string              `json:"reason,omitempty"`
	Reference string              `json:"reference,omitempty"`
	CreatedBy string              `json:"createdBy,omitempty"`
}

// MovementFilter narrows movement listings.
type MovementFilter struct {
	ProductID string
	ChannelID string
	Type      domain.MovementType
	Limit     int
}

// LedgerService applies stock movements and serves the movement
// history. Movements for the same product/channel pair are serialized;
// distinct pairs proceed concurrently. The lock set is shared with the
// reconciler.
type LedgerService struct {
	store     domain.Store
	locks     *RecordLocks
	publisher EventPublisher
	logger    *logging.Logger
}

// NewLedgerService creates a ledger service.
func NewLedgerService(store domain.Store, publisher EventPublisher, logger *logging.Logger, locks *RecordLocks) *LedgerService {
	return &LedgerService{
		store:     store,
		locks:     locks,
		publisher: publisher,
		logger:    logger.WithComponent("ledger"),
	}
}

// RecordMovement validates and applies one movement: the signed delta
// is applied to the pair's stock record (created at zero when absent),
// clamped so quantity never goes negative, and an immutable movement
// carrying both quantity snapshots is appended.
func (s *LedgerService) RecordMovement(ctx context.Context, cmd RecordMovementCommand) (*domain.StockMovement, *domain.InventoryItem, error) {
	if !cmd.Type.IsValid() {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidMovementType, cmd.Type)
	}
	if cmd.Quantity == 0 {
		return nil, nil, domain.ErrInvalidQuantity
	}

	release := s.locks.acquire(cmd.ProductID, cmd.ChannelID)
	defer release()

	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load products: %w", err)
	}
	if productIndex(products, cmd.ProductID) < 0 {
		return nil, nil, domain.ErrProductNotFound
	}

	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load channels: %w", err)
	}
	if channelIndex(channels, cmd.ChannelID) < 0 {
		return nil, nil, domain.ErrChannelNotFound
	}

	inventory, err := s.store.Inventory(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	idx := inventoryIndex(inventory, cmd.ProductID, cmd.ChannelID)
	if idx < 0 {
		inventory = append(inventory, *domain.NewInventoryItem(cmd.ProductID, cmd.ChannelID, 0))
		idx = len(inventory) - 1
	}
	item := &inventory[idx]

	previous := item.Quantity
	next := previous + cmd.Type.SignedDelta(cmd.Quantity)
	item.SetQuantity(next)

	if err := s.store.SaveInventory(ctx, inventory); err != nil {
		return nil, nil, fmt.Errorf("failed to save inventory: %w", err)
	}

	movement := domain.NewStockMovement(
		cmd.ProductID, cmd.ChannelID, cmd.Type, cmd.Quantity,
		previous, item.Quantity,
		cmd.Reason, cmd.Reference, cmd.CreatedBy,
	)

	movements, err := s.store.Movements(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load movements: %w", err)
	}
	movements = append(movements, *movement)
	if err := s.store.SaveMovements(ctx, movements); err != nil {
		return nil, nil, fmt.Errorf("failed to save movements: %w", err)
	}

	s.logger.Movement(ctx, movement.ID, movement.ProductID, movement.ChannelID,
		string(movement.Type), movement.PreviousQuantity, movement.NewQuantity)

	s.publish(ctx, movement)

	updated := *item
	return movement, &updated, nil
}

func (s *LedgerService) publish(ctx context.Context, movement *domain.StockMovement) {
	event := domain.MovementRecordedEvent{
		MovementID:       movement.ID,
		ProductID:        movement.ProductID,
		ChannelID:        movement.ChannelID,
		Type:             movement.Type,
		Quantity:         movement.Quantity,
		PreviousQuantity: movement.PreviousQuantity,
		NewQuantity:      movement.NewQuantity,
		OccurredAt:       movement.CreatedAt,
	}

	if err := s.publisher.Publish(ctx, kafka.Topics.MovementEvents, domain.EventMovementRecorded, movement.ProductID, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish movement event", "movementId", movement.ID)
	}
}

// ListMovements returns movements newest first, optionally filtered by
// product, channel, and type.
func (s *LedgerService) ListMovements(ctx context.Context, filter MovementFilter) ([]domain.StockMovement, error) {
	movements, err := s.store.Movements(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements: %w", err)
	}

	filtered := make([]domain.StockMovement, 0, len(movements))
	for _, m := range movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.ChannelID != "" && m.ChannelID != filter.ChannelID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		filtered = append(filtered, m)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultMovementLimit
	}
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return filtered, nil
}
