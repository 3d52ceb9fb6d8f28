package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/kafka"
	"github.com/stocksync/inventory-service/pkg/logging"
)

// SyncError is one failed item in a reconciliation cycle. A cycle-level
// failure (such as a refused connection) carries an empty ProductID.
type SyncError struct {
	ProductID string `json:"productId"`
	Error     string `json:"error"`
}

// SyncOutcome is the result of one channel reconciliation cycle.
type SyncOutcome struct {
	ChannelID    string            `json:"channelId"`
	Success      bool              `json:"success"`
	SyncedCount  int               `json:"syncedCount"`
	Errors       []SyncError       `json:"errors"`
	Status       domain.SyncStatus `json:"status"`
	LastSyncedAt time.Time         `json:"lastSyncedAt"`
}

// ChannelSyncReport pairs a channel with its outcome during a
// sync-all run.
type ChannelSyncReport struct {
	ChannelID   string       `json:"channelId"`
	ChannelName string       `json:"channelName"`
	Outcome     *SyncOutcome `json:"outcome,omitempty"`
	Error       string       `json:"error,omitempty"`
}

// SyncService reconciles local stock records against external channel
// platforms. At most one cycle runs per channel at a time; per-record
// writes share the ledger's lock set so concurrent movements are never
// clobbered.
type SyncService struct {
	store     domain.Store
	adapters  *domain.AdapterRegistry
	publisher EventPublisher
	locks     *RecordLocks
	logger    *logging.Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewSyncService creates a sync service.
func NewSyncService(store domain.Store, adapters *domain.AdapterRegistry, publisher EventPublisher, logger *logging.Logger, locks *RecordLocks) *SyncService {
	return &SyncService{
		store:     store,
		adapters:  adapters,
		publisher: publisher,
		locks:     locks,
		logger:    logger.WithComponent("sync"),
		inFlight:  make(map[string]bool),
	}
}

// SyncChannel runs one reconciliation cycle for a channel. An empty
// productIDs syncs the whole catalog; records missing on the channel
// are created. Validation failures (unknown channel, inactive, cycle
// already running) are returned as errors; a cycle that ran returns
// its outcome, successful or not.
func (s *SyncService) SyncChannel(ctx context.Context, channelID string, productIDs []string) (*SyncOutcome, error) {
	if !s.tryAcquire(channelID) {
		return nil, domain.ErrSyncInProgress
	}
	defer s.release(channelID)

	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	idx := channelIndex(channels, channelID)
	if idx < 0 {
		return nil, domain.ErrChannelNotFound
	}
	channel := &channels[idx]

	if err := channel.BeginSync(); err != nil {
		return nil, err
	}
	// Persist the syncing state before touching the platform so
	// operators see the cycle while it runs.
	if err := s.store.SaveChannels(ctx, channels); err != nil {
		return nil, fmt.Errorf("failed to save channels: %w", err)
	}

	started := time.Now()
	outcome, err := s.runCycle(ctx, channels, idx, productIDs)
	if err != nil {
		// Unexpected mid-cycle failure: best effort to not leave the
		// channel stuck in syncing.
		s.markFailed(ctx, channelID, err.Error())
		return nil, err
	}

	s.logger.SyncCycle(ctx, channel.ID, string(channel.Type), string(outcome.Status),
		outcome.SyncedCount, len(outcome.Errors), time.Since(started))
	s.publishOutcome(ctx, channel, outcome)

	return outcome, nil
}

func (s *SyncService) runCycle(ctx context.Context, channels []domain.SalesChannel, idx int, productIDs []string) (*SyncOutcome, error) {
	channel := &channels[idx]

	adapter, err := s.adapters.Get(channel.Type)
	if err != nil {
		return nil, err
	}

	if !adapter.Connect(ctx, channel.Credentials) {
		reason := fmt.Sprintf("Failed to connect to %s", channel.Name)
		channel.FailSync(reason)
		if err := s.store.SaveChannels(ctx, channels); err != nil {
			return nil, fmt.Errorf("failed to save channels: %w", err)
		}
		return &SyncOutcome{
			ChannelID:    channel.ID,
			Success:      false,
			Errors:       []SyncError{{Error: reason}},
			Status:       channel.SyncStatus,
			LastSyncedAt: *channel.LastSyncedAt,
		}, nil
	}

	if len(productIDs) == 0 {
		productIDs, err = s.catalogProductIDs(ctx)
		if err != nil {
			return nil, err
		}
	}

	if len(productIDs) == 0 {
		channel.CompleteSync("")
		if err := s.store.SaveChannels(ctx, channels); err != nil {
			return nil, fmt.Errorf("failed to save channels: %w", err)
		}
		return &SyncOutcome{
			ChannelID:    channel.ID,
			Success:      true,
			SyncedCount:  0,
			Errors:       []SyncError{},
			Status:       channel.SyncStatus,
			LastSyncedAt: *channel.LastSyncedAt,
		}, nil
	}

	results := adapter.SyncInventory(ctx, productIDs)

	now := time.Now().UTC()
	syncedCount := 0
	syncErrors := make([]SyncError, 0)

	for _, result := range results {
		if !result.Success {
			syncErrors = append(syncErrors, SyncError{ProductID: result.ProductID, Error: result.Error})
			continue
		}
		if err := s.applyResult(ctx, channel.ID, result, now); err != nil {
			return nil, err
		}
		syncedCount++
	}

	switch {
	case len(syncErrors) == 0:
		channel.CompleteSync("")
	case syncedCount > 0:
		channel.CompleteSync(fmt.Sprintf("Partial sync: %d errors", len(syncErrors)))
	default:
		channel.FailSync(fmt.Sprintf("Sync failed: %d errors", len(syncErrors)))
	}

	if err := s.store.SaveChannels(ctx, channels); err != nil {
		return nil, fmt.Errorf("failed to save channels: %w", err)
	}

	return &SyncOutcome{
		ChannelID:    channel.ID,
		Success:      len(syncErrors) < len(productIDs),
		SyncedCount:  syncedCount,
		Errors:       syncErrors,
		Status:       channel.SyncStatus,
		LastSyncedAt: *channel.LastSyncedAt,
	}, nil
}

// applyResult overwrites one stock record with the platform quantity.
// The record is re-read and written back under its pair lock; the
// collection snapshot taken before the adapter call is never reused,
// so movements that landed during the (slow) platform fetch survive.
func (s *SyncService) applyResult(ctx context.Context, channelID string, result domain.SyncResult, now time.Time) error {
	release := s.locks.acquire(result.ProductID, channelID)
	defer release()

	inventory, err := s.store.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	idx := inventoryIndex(inventory, result.ProductID, channelID)
	if idx < 0 {
		inventory = append(inventory, *domain.NewInventoryItem(result.ProductID, channelID, 0))
		idx = len(inventory) - 1
	}
	inventory[idx].SetQuantity(result.Quantity)
	inventory[idx].MarkSynced(now)

	if err := s.store.SaveInventory(ctx, inventory); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}
	return nil
}

// SyncAllChannels runs a catalog-wide cycle for every active channel.
// Channels mid-sync are reported and skipped.
func (s *SyncService) SyncAllChannels(ctx context.Context) ([]ChannelSyncReport, error) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	reports := make([]ChannelSyncReport, 0, len(channels))
	for _, channel := range channels {
		if !channel.IsActive {
			continue
		}

		report := ChannelSyncReport{ChannelID: channel.ID, ChannelName: channel.Name}
		outcome, err := s.SyncChannel(ctx, channel.ID, nil)
		if err != nil {
			report.Error = err.Error()
		} else {
			report.Outcome = outcome
		}
		reports = append(reports, report)
	}

	return reports, nil
}

func (s *SyncService) catalogProductIDs(ctx context.Context) ([]string, error) {
	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	ids := make([]string, 0, len(products))
	for i := range products {
		ids = append(ids, products[i].ID)
	}
	return ids, nil
}

func (s *SyncService) tryAcquire(channelID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[channelID] {
		return false
	}
	s.inFlight[channelID] = true
	return true
}

func (s *SyncService) release(channelID string) {
	s.mu.Lock()
	delete(s.inFlight, channelID)
	s.mu.Unlock()
}

func (s *SyncService) markFailed(ctx context.Context, channelID, reason string) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load channels while marking sync failure", "channelId", channelID)
		return
	}
	idx := channelIndex(channels, channelID)
	if idx < 0 {
		return
	}
	channels[idx].FailSync(reason)
	if err := s.store.SaveChannels(ctx, channels); err != nil {
		s.logger.WithError(err).Error("Failed to mark channel sync failure", "channelId", channelID)
	}
}

func (s *SyncService) publishOutcome(ctx context.Context, channel *domain.SalesChannel, outcome *SyncOutcome) {
	event := domain.ChannelSyncedEvent{
		ChannelID:   channel.ID,
		ChannelType: string(channel.Type),
		Status:      outcome.Status,
		SyncedCount: outcome.SyncedCount,
		ErrorCount:  len(outcome.Errors),
		OccurredAt:  outcome.LastSyncedAt,
	}

	if err := s.publisher.Publish(ctx, kafka.Topics.SyncEvents, domain.EventChannelSynced, channel.ID, event); err != nil {
		s.logger.WithError(err).Warn("Failed to publish sync event", "channelId", channel.ID)
	}
}
