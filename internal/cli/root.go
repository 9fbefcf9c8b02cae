package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"qikfiller/internal/api"
	"qikfiller/internal/config"
	"qikfiller/internal/remote"
	"qikfiller/internal/repository/sqlite"
	"qikfiller/internal/validation"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "qikfiller",
		Short: "Fill out QikTimesheets... Qikker!",
		Long: `qikfiller is a command-line client for the QikTimes timesheet service.

It caches the remote reference data (users, clients, tasks, categories,
tag types, entry types) in a local database, then lets you refer to any of
them by id, name, or a partial name when creating entries. Ambiguous names
fall back to an interactive prompt; tasks additionally support the
"client:task" shorthand, so "tea:plan" matches a task containing "plan"
under a client containing "tea".

EXAMPLES:
  qikfiller init                           # wipe the cache, store credentials, load reference data
  qikfiller sync                           # refresh the cache
  qikfiller tasks                          # show the client/task tree
  qikfiller create bill tea:plan dev \
      --date -1 --start 10am --duration 2h # yesterday, 10:00-12:00
  qikfiller create 1 27 31 --start 10am --end 1pm

CONFIGURATION:
  Sources in priority order: command-line flags > environment variables >
  ~/.qikfiller/config.yaml > credentials stored in the cache by init.

    QIK_API_KEY       API key for your QikTimes instance
    QIK_URL           Base url of your QikTimes instance
    QIK_DB_DIR        Cache directory (default: ~/.qikfiller)
    QIK_DB_FILENAME   Cache filename (default: cache.db)
    QIK_USER          Default entry owner (default: apiuser)
    QIK_TIMEOUT       Remote call timeout (default: 30s)
    QIK_DEBUG         Enable debug output when non-empty`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.applyFlagOverrides()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("api-key", "", "QikTimes API key (overrides QIK_API_KEY)")
	flags.String("api-url", "", "QikTimes base url (overrides QIK_URL)")
	flags.String("db-dir", "", "Cache directory (overrides QIK_DB_DIR)")
	flags.String("db-filename", "", "Cache filename (overrides QIK_DB_FILENAME)")
	flags.Duration("timeout", 0, "Remote call timeout (overrides QIK_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output")
}

// applyFlagOverrides updates the configuration with values from command-line flags
func (r *RootCommand) applyFlagOverrides() error {
	flags := r.cmd.PersistentFlags()

	if apiKey, _ := flags.GetString("api-key"); apiKey != "" {
		r.config.API.Key = apiKey
	}
	if apiURL, _ := flags.GetString("api-url"); apiURL != "" {
		r.config.API.URL = apiURL
	}
	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if timeout, _ := flags.GetDuration("timeout"); timeout > 0 {
		r.config.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Verbose = verbose
	}

	return r.config.Validate()
}

// session holds the per-command wiring: the open repository and the API
// facade built over it.
type session struct {
	api  api.API
	repo sqlite.Repository
}

func (s *session) close() {
	s.repo.Close()
}

// openSession opens the cache and builds the API facade. When needsRemote is
// set the credentials must resolve (flags, env, config file, then the stored
// profile) or the command fails before any network activity.
func (r *RootCommand) openSession(ctx context.Context, needsRemote bool) (*session, error) {
	if err := os.MkdirAll(r.config.Database.Dir, 0755); err != nil {
		return nil, err
	}

	repo, err := sqlite.New(r.config.DatabasePath())
	if err != nil {
		return nil, err
	}

	apiKey := r.config.API.Key
	apiURL := r.config.API.URL
	if apiKey == "" || apiURL == "" {
		if profile, err := repo.GetProfile(ctx); err == nil {
			if apiKey == "" {
				apiKey = profile.APIKey
			}
			if apiURL == "" {
				apiURL = profile.APIURL
			}
		}
	}

	if needsRemote {
		if err := validation.ValidateCredentials(apiKey, apiURL); err != nil {
			repo.Close()
			return nil, err
		}
	}

	// Keep the resolved credentials visible to handlers (init re-stores them)
	r.config.API.Key = apiKey
	r.config.API.URL = apiURL

	service := remote.NewService(apiURL, apiKey, r.config.Timeout)
	chooser := NewStdinChooser(os.Stdin, os.Stdout)

	return &session{
		api:  api.New(repo, service, chooser),
		repo: repo,
	}, nil
}

// commandContext returns a context bounded by the configured timeout
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	timeout := r.config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}
