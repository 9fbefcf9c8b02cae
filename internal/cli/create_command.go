package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"qikfiller/internal/api"
	"qikfiller/internal/config"
)

// CreateCommand handles the create command
type CreateCommand struct {
	api    api.API
	config *config.Config
	params api.CreateEntryParams
}

// NewCreateCommand creates a new create command handler
func NewCreateCommand(apiInstance api.API, cfg *config.Config) *CreateCommand {
	return &CreateCommand{api: apiInstance, config: cfg}
}

// addCreateFlags declares the create command's flags
func addCreateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("start", "", "Entry start time, e.g. '10am', '13:30'")
	flags.String("end", "", "Entry end time, e.g. '1pm', '17:00'")
	flags.String("duration", "", "Entry duration, e.g. '2h', '30m', '1:30'")
	flags.String("date", "", "Entry date: day offset (-1 = yesterday) or a date string (default: today)")
	flags.String("description", "", "Entry description")
	flags.String("jira-id", "", "Jira id the entry refers to, e.g. ABC-123")
	flags.String("user", "", "User to create the entry for (default: apiuser)")
	flags.Bool("dry", false, "Resolve everything but do not send the request")
}

// BindFlags reads the parsed flag values into the handler
func (c *CreateCommand) BindFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	var err error
	if c.params.Start, err = flags.GetString("start"); err != nil {
		return err
	}
	if c.params.End, err = flags.GetString("end"); err != nil {
		return err
	}
	if c.params.Duration, err = flags.GetString("duration"); err != nil {
		return err
	}
	if c.params.Date, err = flags.GetString("date"); err != nil {
		return err
	}
	if c.params.Description, err = flags.GetString("description"); err != nil {
		return err
	}
	if c.params.JiraID, err = flags.GetString("jira-id"); err != nil {
		return err
	}
	if c.params.User, err = flags.GetString("user"); err != nil {
		return err
	}
	if c.params.Dry, err = flags.GetBool("dry"); err != nil {
		return err
	}

	if c.params.User == "" {
		c.params.User = c.config.Entry.User
	}
	return nil
}

// Execute resolves the entry fields and times and submits the entry
func (c *CreateCommand) Execute(ctx context.Context, args []string) error {
	c.params.Type = args[0]
	c.params.Task = args[1]
	c.params.Category = args[2]

	result, err := c.api.CreateEntry(ctx, c.params)
	if err != nil {
		return err
	}

	if result.Submitted == nil {
		fmt.Println("Dry run; would send:")
		values := result.Entry.Values()
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

	fmt.Println(result.Submitted.URL)
	fmt.Println(result.Submitted.StatusCode)
	fmt.Println(result.Submitted.Body)
	return nil
}
