package cli

import (
	"github.com/spf13/cobra"

	"qikfiller/internal/api"
	"qikfiller/internal/domain"
)

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Wipe and rebuild the local cache",
		Long: `Drop and recreate the local cache, store the active credentials in it,
and load all reference data from the QikTimes service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			session, err := r.openSession(ctx, true)
			if err != nil {
				return err
			}
			defer session.close()

			return NewInitCommand(session.api, r.config).Execute(ctx, args)
		},
	}

	syncCmd := &cobra.Command{
		Use:     "sync",
		Aliases: []string{"load"},
		Short:   "Refresh the local cache from the QikTimes service",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			session, err := r.openSession(ctx, true)
			if err != nil {
				return err
			}
			defer session.close()

			return NewSyncCommand(session.api, r.config).Execute(ctx, args)
		},
	}

	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show the client and task hierarchy",
		Long:  "Show every task with its full path from the owning client, indented per level.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			session, err := r.openSession(ctx, false)
			if err != nil {
				return err
			}
			defer session.close()

			return NewTasksCommand(session.api).Execute(ctx, args)
		},
	}

	createCmd := &cobra.Command{
		Use:   "create <type> <task> <category>",
		Short: "Create a new timesheet entry",
		Long: `Create a new timesheet entry.

Each of <type>, <task> and <category> may be an id, an exact name, or any
part of a name. Ambiguous fragments prompt for a choice. The task accepts
the "client:task" shorthand to narrow by the owning client.

Provide exactly two of --start, --end and --duration; the third is derived.
The date accepts a day offset (0 today, -1 yesterday) or any date string.

Examples:
  qikfiller create Billable 'Resource Planner Feature' 'Web App Development' \
      --date 2017-03-23 --start 10am --duration 2h --jira-id BTH-123
  qikfiller create bill tea:plan app --date -1 --start 10am --duration 2h
  qikfiller create 1 27 31 --start 10am --end 12:30`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The disambiguation prompt may block on user input
			ctx, cancel := r.commandContext()
			defer cancel()

			session, err := r.openSession(ctx, true)
			if err != nil {
				return err
			}
			defer session.close()

			handler := NewCreateCommand(session.api, r.config)
			if err := handler.BindFlags(cmd); err != nil {
				return err
			}
			return handler.Execute(ctx, args)
		},
	}
	addCreateFlags(createCmd)

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "Search existing timesheet entries",
		Long: `Search existing entries on the QikTimes service.

Collection filters (--types, --clients, --tasks, --categories) accept a
comma-separated list of ids or name fragments, or "All".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := r.commandContext()
			defer cancel()

			session, err := r.openSession(ctx, true)
			if err != nil {
				return err
			}
			defer session.close()

			handler := NewSearchCommand(session.api, r.config)
			if err := handler.BindFlags(cmd); err != nil {
				return err
			}
			return handler.Execute(ctx, args)
		},
	}
	addSearchFlags(searchCmd)

	r.cmd.AddCommand(
		initCmd,
		syncCmd,
		tasksCmd,
		createCmd,
		searchCmd,
	)
	r.addListCommands()
}

// addListCommands adds one flat listing command per reference kind
func (r *RootCommand) addListCommands() {
	listings := []struct {
		use   string
		short string
		kind  domain.Kind
		print func(api.API) listPrinter
	}{
		{"users [filter]", "List users", domain.KindUser, func(a api.API) listPrinter { return printUsers(a) }},
		{"clients [filter]", "List clients", domain.KindClient, func(a api.API) listPrinter { return printClients(a) }},
		{"categories [filter]", "List entry categories", domain.KindCategory, func(a api.API) listPrinter { return printCategories(a) }},
		{"tag-types [filter]", "List tag types", domain.KindTagType, func(a api.API) listPrinter { return printTagTypes(a) }},
		{"types [filter]", "List entry types", domain.KindEntryType, func(a api.API) listPrinter { return printEntryTypes(a) }},
	}

	for _, listing := range listings {
		listing := listing
		cmd := &cobra.Command{
			Use:   listing.use,
			Short: listing.short,
			Long:  listing.short + ". An optional filter narrows the list by id or name fragment.",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, cancel := r.commandContext()
				defer cancel()

				session, err := r.openSession(ctx, false)
				if err != nil {
					return err
				}
				defer session.close()

				handler := NewListCommand(session.api, listing.kind, listing.print(session.api))
				return handler.Execute(ctx, args)
			},
		}
		r.cmd.AddCommand(cmd)
	}
}
