package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"qikfiller/internal/api"
	"qikfiller/internal/config"
	"qikfiller/internal/validation"
)

// SearchCommand handles the search command
type SearchCommand struct {
	api    api.API
	config *config.Config
	params api.SearchEntriesParams
}

// NewSearchCommand creates a new search command handler
func NewSearchCommand(apiInstance api.API, cfg *config.Config) *SearchCommand {
	return &SearchCommand{api: apiInstance, config: cfg}
}

// addSearchFlags declares the search command's flags
func addSearchFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("from", "-7", "Start of the date range: day offset or date string (default: a week ago)")
	flags.String("to", "0", "End of the date range: day offset or date string (default: today)")
	flags.String("types", "All", "Entry types to include: comma-separated ids or name fragments")
	flags.String("clients", "All", "Clients to include: comma-separated ids or name fragments")
	flags.String("tasks", "All", "Tasks to include: comma-separated ids or name fragments")
	flags.String("categories", "All", "Categories to include: comma-separated ids or name fragments")
	flags.String("user", "apiuser", "User whose entries to search")
	flags.Int("limit", validation.MaxSearchLimit, "Maximum number of entries to return")
	flags.String("date-type", "created", "Date field the range applies to: created, updated or start")
	flags.Bool("dry", false, "Resolve everything but do not send the request")
}

// BindFlags reads the parsed flag values into the handler
func (c *SearchCommand) BindFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	var err error
	if c.params.From, err = flags.GetString("from"); err != nil {
		return err
	}
	if c.params.To, err = flags.GetString("to"); err != nil {
		return err
	}
	if c.params.Types, err = flags.GetString("types"); err != nil {
		return err
	}
	if c.params.Clients, err = flags.GetString("clients"); err != nil {
		return err
	}
	if c.params.Tasks, err = flags.GetString("tasks"); err != nil {
		return err
	}
	if c.params.Categories, err = flags.GetString("categories"); err != nil {
		return err
	}
	if c.params.User, err = flags.GetString("user"); err != nil {
		return err
	}
	if c.params.Limit, err = flags.GetInt("limit"); err != nil {
		return err
	}
	if c.params.DateType, err = flags.GetString("date-type"); err != nil {
		return err
	}
	if c.params.Dry, err = flags.GetBool("dry"); err != nil {
		return err
	}
	return nil
}

// Execute resolves the query filters and searches existing entries
func (c *SearchCommand) Execute(ctx context.Context, args []string) error {
	result, err := c.api.SearchEntries(ctx, c.params)
	if err != nil {
		return err
	}

	if result.Submitted == nil {
		fmt.Println("Dry run; would send:")
		values := result.Query.Values()
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Printf("  %s=%s\n", key, values.Get(key))
		}
		return nil
	}

	fmt.Println(result.Submitted.Body)
	return nil
}
