package application

import (
	"context"
	"fmt"

	"github.com/stocksync/inventory-service/internal/domain"
	"github.com/stocksync/inventory-service/pkg/logging"
)

// CredentialsInput is the inbound credential shape. Credentials are
// accepted on create/update and never echoed back.
type CredentialsInput struct {
	APIKey    string `json:"apiKey" binding:"omitempty,max=500"`
	APISecret string `json:"apiSecret" binding:"omitempty,max=500"`
	StoreURL  string `json:"storeUrl" binding:"omitempty,url,max=500"`
}

func (c CredentialsInput) toDomain() domain.Credentials {
	return domain.Credentials{
		APIKey:    c.APIKey,
		APISecret: c.APISecret,
		StoreURL:  c.StoreURL,
	}
}

// CreateChannelCommand carries a new sales channel.
type CreateChannelCommand struct {
	Name        string             `json:"name" binding:"required,safe_string,max=100"`
	Type        domain.ChannelType `json:"type" binding:"required,channel_type"`
	Credentials CredentialsInput   `json:"credentials"`
}

// UpdateChannelCommand carries a partial channel update. Nil fields are
// left untouched; IsActive toggles pause/resume.
type UpdateChannelCommand struct {
	Name        *string           `json:"name" binding:"omitempty,safe_string,max=100"`
	Credentials *CredentialsInput `json:"credentials"`
	IsActive    *bool             `json:"isActive"`
}

// ChannelService manages sales channel configuration.
type ChannelService struct {
	store  domain.Store
	logger *logging.Logger
}

// NewChannelService creates a channel service.
func NewChannelService(store domain.Store, logger *logging.Logger) *ChannelService {
	return &ChannelService{
		store:  store,
		logger: logger.WithComponent("channels"),
	}
}

// CreateChannel registers a sales channel. Names are unique
// case-insensitively; non-manual types must carry credentials.
func (s *ChannelService) CreateChannel(ctx context.Context, cmd CreateChannelCommand) (*domain.SalesChannel, error) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	for i := range channels {
		if channels[i].NameEquals(cmd.Name) {
			return nil, domain.ErrDuplicateChannelName
		}
	}

	channel, err := domain.NewSalesChannel(cmd.Name, cmd.Type, cmd.Credentials.toDomain())
	if err != nil {
		return nil, err
	}

	channels = append(channels, *channel)
	if err := s.store.SaveChannels(ctx, channels); err != nil {
		return nil, fmt.Errorf("failed to save channels: %w", err)
	}

	s.logger.Info("Channel created", "channelId", channel.ID, "type", string(channel.Type))
	return channel, nil
}

// GetChannel returns one channel by id.
func (s *ChannelService) GetChannel(ctx context.Context, id string) (*domain.SalesChannel, error) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	idx := channelIndex(channels, id)
	if idx < 0 {
		return nil, domain.ErrChannelNotFound
	}
	channel := channels[idx]
	return &channel, nil
}

// ListChannels returns all channels.
func (s *ChannelService) ListChannels(ctx context.Context) ([]domain.SalesChannel, error) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}
	return channels, nil
}

// UpdateChannel applies a partial update. A name change is re-checked
// for uniqueness; replacing credentials on a non-manual channel with an
// empty set is rejected.
func (s *ChannelService) UpdateChannel(ctx context.Context, id string, cmd UpdateChannelCommand) (*domain.SalesChannel, error) {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load channels: %w", err)
	}

	idx := channelIndex(channels, id)
	if idx < 0 {
		return nil, domain.ErrChannelNotFound
	}
	channel := &channels[idx]

	if cmd.Name != nil && !channel.NameEquals(*cmd.Name) {
		for i := range channels {
			if i != idx && channels[i].NameEquals(*cmd.Name) {
				return nil, domain.ErrDuplicateChannelName
			}
		}
		channel.Name = *cmd.Name
	}
	if cmd.Credentials != nil {
		creds := cmd.Credentials.toDomain()
		if channel.Type.RequiresCredentials() && creds.Empty() {
			return nil, domain.ErrMissingCredentials
		}
		channel.Credentials = creds
	}
	if cmd.IsActive != nil {
		if *cmd.IsActive {
			channel.Resume()
		} else {
			channel.Pause()
		}
	}

	if err := s.store.SaveChannels(ctx, channels); err != nil {
		return nil, fmt.Errorf("failed to save channels: %w", err)
	}

	updated := *channel
	return &updated, nil
}

// DeleteChannel removes a channel and its stock records. Movement
// history is kept as an audit trail.
func (s *ChannelService) DeleteChannel(ctx context.Context, id string) error {
	channels, err := s.store.Channels(ctx)
	if err != nil {
		return fmt.Errorf("failed to load channels: %w", err)
	}

	idx := channelIndex(channels, id)
	if idx < 0 {
		return domain.ErrChannelNotFound
	}
	channels = append(channels[:idx], channels[idx+1:]...)
	if err := s.store.SaveChannels(ctx, channels); err != nil {
		return fmt.Errorf("failed to save channels: %w", err)
	}

	inventory, err := s.store.Inventory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}
	kept := inventory[:0]
	for _, item := range inventory {
		if item.ChannelID != id {
			kept = append(kept, item)
		}
	}
	if err := s.store.SaveInventory(ctx, kept); err != nil {
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	s.logger.Info("Channel deleted", "channelId", id)
	return nil
}
