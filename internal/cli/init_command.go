package cli

import (
	"context"
	"fmt"

	"qikfiller/internal/api"
	"qikfiller/internal/config"
	"qikfiller/internal/domain"
)

// InitCommand handles the init command
type InitCommand struct {
	api    api.API
	config *config.Config
}

// NewInitCommand creates a new init command handler
func NewInitCommand(apiInstance api.API, cfg *config.Config) *InitCommand {
	return &InitCommand{api: apiInstance, config: cfg}
}

// Execute wipes the cache, stores the active credentials, and syncs
func (c *InitCommand) Execute(ctx context.Context, args []string) error {
	profile := &domain.Profile{
		ID:     1,
		APIURL: c.config.API.URL,
		APIKey: c.config.API.Key,
	}

	if err := c.api.Init(ctx, profile); err != nil {
		return err
	}

	fmt.Println("Initialisation successful!")
	return nil
}
