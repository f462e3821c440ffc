package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/iudanet/rolekeeper/internal/client/api"
	"github.com/iudanet/rolekeeper/internal/client/auth"
	"github.com/iudanet/rolekeeper/internal/client/iocli"
	"github.com/iudanet/rolekeeper/internal/client/storage/boltdb"
)

// BuildInfo информация о сборке для --version
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// rootOptions holds global flags.
type rootOptions struct {
	serverURL    string
	dbPath       string
	passwordFile string
	verbose      bool
}

// NewRootCmd creates the root command of the client.
// Subcommands open the local session database in PersistentPreRunE and close it
// when RunE returns, including on error.
func NewRootCmd(build BuildInfo, io iocli.IO) *cobra.Command {
	opts := &rootOptions{}
	var (
		c     *Cli
		store *boltdb.Storage
	)

	cmd := &cobra.Command{
		Use:           "rolekeeper",
		Short:         "RoleKeeper client",
		Long:          `RoleKeeper client registers users, manages sessions and assigns roles.`,
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			var err error
			store, err = boltdb.New(cmd.Context(), opts.dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}

			c = New(io, auth.NewService(logger, api.NewClient(opts.serverURL), store, opts.serverURL))
			c.passwordFile = opts.passwordFile
			return nil
		},
	}
	cmd.SetVersionTemplate(fmt.Sprintf("RoleKeeper Client\nVersion:    %s\nBuild Date: %s\nGit Commit: %s\n",
		build.Version, build.BuildDate, build.GitCommit))

	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", "http://localhost:8080", "Server URL")
	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "rolekeeper-client.db", "Path to local database")
	cmd.PersistentFlags().StringVar(&opts.passwordFile, "password-file", "", "Path to file containing password")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	cli := func() *Cli { return c }
	cmd.AddCommand(
		newRegisterCmd(cli),
		newLoginCmd(cli),
		newRefreshCmd(cli),
		newAddRoleCmd(cli),
		newStatusCmd(cli),
		newWhoAmICmd(cli),
		newUserCmd(cli),
		newLogoutCmd(cli),
	)

	// PersistentPostRunE не вызывается при ошибке RunE, а открытый bbolt держит flock
	for _, sub := range cmd.Commands() {
		run := sub.RunE
		sub.RunE = func(cmd *cobra.Command, args []string) error {
			defer func() {
				if store != nil {
					_ = store.Close()
					store = nil
				}
			}()
			return run(cmd, args)
		}
	}

	return cmd
}
