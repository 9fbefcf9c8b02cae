package cli

import (
	"context"
	"fmt"

	"qikfiller/internal/api"
	"qikfiller/internal/config"
)

// SyncCommand handles the sync command
type SyncCommand struct {
	api    api.API
	config *config.Config
}

// NewSyncCommand creates a new sync command handler
func NewSyncCommand(apiInstance api.API, cfg *config.Config) *SyncCommand {
	return &SyncCommand{api: apiInstance, config: cfg}
}

// Execute refreshes the local cache from the remote service
func (c *SyncCommand) Execute(ctx context.Context, args []string) error {
	if err := c.api.Sync(ctx); err != nil {
		return err
	}

	fmt.Printf("Successfully loaded data from %s\n", c.config.API.URL)
	return nil
}
