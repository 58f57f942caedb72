package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/tunedl/internal/config"
	"github.com/mmcdole/tunedl/internal/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCmd(viper.New(), os.Stdout)
	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errStatus) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// cli carries what the subcommands share
type cli struct {
	v          *viper.Viper
	out        io.Writer
	configFile string
	noPersist  bool

	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
}

func newRootCmd(v *viper.Viper, out io.Writer) *cobra.Command {
	c := &cli{v: v, out: out}

	root := &cobra.Command{
		Use:           "tunedl",
		Short:         "Terminal client for a music download service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.logCloser != nil {
				return c.logCloser.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default ~/.config/tunedl/config.yaml)")
	flags.String("server", "", "download service URL")
	flags.String("log-level", "", "log level (DEBUG, INFO, WARN, ERROR)")
	flags.String("download-dir", "", "directory saved files are written to")
	flags.BoolVar(&c.noPersist, "no-persist", false, "keep theme and history in memory only")

	v.BindPFlag("server.url", flags.Lookup("server"))
	v.BindPFlag("logging.level", flags.Lookup("log-level"))
	v.BindPFlag("downloads.dir", flags.Lookup("download-dir"))

	root.AddCommand(
		c.downloadCmd(),
		c.organizeCmd(),
		c.configCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads configuration and the file logger
func (c *cli) setup() error {
	cfg, err := config.Load(c.v, c.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.noPersist {
		cfg.Storage.Persist = false
	}
	c.cfg = cfg

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	c.logger = logger
	c.logCloser = closer
	slog.SetDefault(logger)

	return nil
}

func (c *cli) runTUI() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("interactive mode needs a terminal; use 'tunedl download <url>' instead")
	}

	a, err := newApp(c.cfg, c.logger)
	if err != nil {
		return err
	}
	defer a.Close()

	c.logger.Info("starting tunedl", "version", Version, "server", c.cfg.Server.URL)

	p := tea.NewProgram(a.model(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		c.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	c.logger.Info("shutting down")
	return nil
}

func (c *cli) downloadCmd() *cobra.Command {
	var save bool
	var dir string

	cmd := &cobra.Command{
		Use:   "download <url>",
		Short: "Ask the service to download a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			saveDir := ""
			if save || dir != "" {
				saveDir = c.cfg.Downloads.Dir
				if dir != "" {
					saveDir = dir
				}
			}
			return runDownload(cmd.Context(), a, args[0], saveDir, c.out)
		},
	}
	cmd.Flags().BoolVarP(&save, "save", "s", false, "save the resulting files locally")
	cmd.Flags().StringVarP(&dir, "output", "o", "", "save into this directory instead of the download dir")
	return cmd
}

func (c *cli) organizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "organize",
		Short: "Ask the service to organize its music library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(c.cfg, c.logger)
			if err != nil {
				return err
			}
			defer a.Close()

			return runOrganize(cmd.Context(), a, c.out)
		},
	}
}

func (c *cli) configCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current configuration to config.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Save(c.v, c.cfg, dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "✓ Configuration saved to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "directory to write config.yaml into")

	cmd.AddCommand(initCmd)
	return cmd
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.out, "tunedl %s\n", Version)
		},
	}
}
