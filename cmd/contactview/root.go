package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/contactview/formats"
	"github.com/arthur-debert/contactview/store"
	"github.com/arthur-debert/contactview/types"
	"github.com/arthur-debert/contactview/view"
)

// CLI wires the contactview commands to a viper instance
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	logger    *slog.Logger
	logFile   io.Closer
}

// NewCLI creates the command tree
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.DiscardHandler),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.rootCmd.AddCommand(
		cli.newListCommand(),
		cli.newMatchCommand(),
		cli.newReplayCommand(),
	)
	return cli
}

// Execute runs the command selected by the arguments
func (cli *CLI) Execute() error {
	defer cli.closeLogging()
	return cli.rootCmd.Execute()
}

func (cli *CLI) setupViperConfig() {
	if configFile := os.Getenv("CONTACTVIEW_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName("contactview")
		cli.viperInst.SetConfigType("yaml")
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.contactview")
	}

	// --first-letter maps to CONTACTVIEW_FIRST_LETTER
	cli.viperInst.SetEnvPrefix("CONTACTVIEW")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viperInst.AutomaticEnv()

	// A missing config file is fine
	_ = cli.viperInst.ReadInConfig()
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "contactview",
		Short: "Inspect live filtered contact views",
		Long: `contactview loads a YAML contact file into a store and drives a filtered
view over it.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (CONTACTVIEW_*)
3. Configuration file (CONTACTVIEW_CONFIG, ./contactview.yaml or
   ~/.contactview/contactview.yaml)

Examples:
  # Favorites whose name starts with "jo"
  contactview list --contacts contacts.yaml --type favorites --pattern jo

  # Contacts reachable by phone or email, as JSON
  contactview list --contacts contacts.yaml --require phone,email --format json

  # Replay a script of filter changes and check the emitted events
  contactview replay steps.yaml --contacts contacts.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.viperInst.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			logger, logFile, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cmd.ErrOrStderr(),
			)
			if err != nil {
				return err
			}
			cli.logger = logger
			cli.logFile = logFile
			return nil
		},
	}

	flags := cli.rootCmd.PersistentFlags()
	flags.StringP("contacts", "c", "", "Contact file (YAML)")
	flags.StringP("type", "t", types.FilterAll.String(), "Partition: none|all|favorites|online|by-id")
	flags.StringP("pattern", "p", "", "Filter pattern")
	flags.StringP("require", "r", types.NoPropertyRequired.String(), "Required details: none or a list of phone,email,account")
	flags.Bool("first-letter", false, "Match the first character of the first name only")
	flags.Bool("last-name-first", false, "Build display labels as \"Last First\"")
	flags.StringP("format", "f", "table", "Output format ("+strings.Join(formats.List(), "|")+")")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also log to stderr")
}

func (cli *CLI) closeLogging() {
	if cli.logFile != nil {
		_ = cli.logFile.Close()
		cli.logFile = nil
	}
}

// filterState reads the filter criteria from flags, env and config
func (cli *CLI) filterState() (types.FilterState, error) {
	filterType, err := types.ParseFilterType(cli.viperInst.GetString("type"))
	if err != nil {
		return types.FilterState{}, err
	}
	mask, err := types.ParseRequiredProperty(cli.viperInst.GetString("require"))
	if err != nil {
		return types.FilterState{}, err
	}
	return types.FilterState{
		Type:                       filterType,
		Pattern:                    cli.viperInst.GetString("pattern"),
		RequiredProperty:           mask,
		SearchByFirstNameCharacter: cli.viperInst.GetBool("first-letter"),
	}, nil
}

func (cli *CLI) format() (*formats.Format, error) {
	return formats.Get(cli.viperInst.GetString("format"))
}

// session is a populated store with one view over it
type session struct {
	store *store.Store
	view  *view.View
}

func (s *session) Close() {
	s.view.Close()
}

func (cli *CLI) openSession(ctx context.Context) (*session, error) {
	path := cli.viperInst.GetString("contacts")
	if path == "" {
		return nil, errors.New("no contact file given (use --contacts or CONTACTVIEW_CONTACTS)")
	}

	state, err := cli.filterState()
	if err != nil {
		return nil, err
	}

	contacts, err := store.LoadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	order := types.FirstNameFirst
	if cli.viperInst.GetBool("last-name-first") {
		order = types.LastNameFirst
	}

	s := store.New(store.WithLogger(cli.logger), store.WithDisplayLabelOrder(order))
	store.Fill(s, contacts, types.FilterTypes...)
	v := view.New(s, view.WithLogger(cli.logger), view.WithFilterState(state))

	cli.logger.Info("session opened",
		"contacts_file", path,
		"contacts", len(contacts),
		"filter_type", state.Type.String(),
		"pattern", state.Pattern,
		"rows", v.RowCount())
	return &session{store: s, view: v}, nil
}
