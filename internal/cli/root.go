package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/generator"
	"github.com/sdkwire/sdkwire/internal/utils"
)

// Version is the tool version reported by the version command
const Version = "0.4.0"

type rootOptions struct {
	configFile string
	verbose    bool
	quiet      bool
}

func (o *rootOptions) diagnostics() *utils.DiagnosticSystem {
	switch {
	case o.quiet:
		return utils.NewQuietDiagnostics()
	case o.verbose:
		return utils.NewVerboseDiagnostics()
	default:
		return utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
}

// Execute runs the command tree and maps failures to the exit code
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCommand builds the full command tree
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	v := NewViper()

	root := &cobra.Command{
		Use:   "sdkwire",
		Short: "Generate typed API client SDKs from an analyzed backend source tree",
		Long: `sdkwire reads a snapshot of decorator-annotated backend controllers,
builds a client model from their routes and parameters, and renders
TypeScript SDK trees in one or more output flavors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "configuration file (default ./"+ConfigFileName+")")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVarP(&opts.quiet, "quiet", "q", false, "only show errors")

	root.AddCommand(newGenerateCommand(opts, v))
	root.AddCommand(newCleanCommand(opts, v))
	root.AddCommand(newInitCommand(opts))
	root.AddCommand(newVersionCommand())

	return root
}

func newGenerateCommand(opts *rootOptions, v *viper.Viper) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one generation pass over the configured snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := opts.diagnostics()
			reporter := NewReporter(opts.verbose)
			diag.Section("sdkwire")

			cfg, err := LoadConfig(v, opts.configFile)
			if err != nil {
				reporter.Report(err)
				return err
			}

			if watch {
				err = Watch(cmd.Context(), cfg, diag, reporter)
			} else {
				err = Run(cmd.Context(), cfg, diag)
			}
			if err != nil {
				reporter.Report(err)
				return err
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("snapshot", "", "snapshot file produced by the source analyzer")
	flags.String("output", "", "root directory the flavor trees are written under")
	flags.StringSlice("flavor", nil, "output flavor to generate, repeatable (plain, builder)")
	flags.Bool("skip-format", false, "skip the prettier pass over generated trees")
	flags.BoolVar(&watch, "watch", false, "stay running and regenerate when the snapshot changes")

	mustBind(v, "snapshot", flags.Lookup("snapshot"))
	mustBind(v, "output", flags.Lookup("output"))
	mustBind(v, "flavors", flags.Lookup("flavor"))
	mustBind(v, "format.skip", flags.Lookup("skip-format"))

	return cmd
}

func newCleanCommand(opts *rootOptions, v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove previously generated flavor trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := opts.diagnostics()
			reporter := NewReporter(opts.verbose)

			cfg, err := LoadConfig(v, opts.configFile)
			if err != nil {
				reporter.Report(err)
				return err
			}

			removed := 0
			for _, flavor := range cfg.ParsedFlavors() {
				dir := filepath.Join(cfg.Output, string(flavor))
				if !isGeneratedTree(dir) {
					diag.Verbose("Skipping %s, no generated tree found", dir)
					continue
				}
				if err := os.RemoveAll(dir); err != nil {
					err := errors.Wrapf(errors.FileSystemErrorCode, err,
						"generated tree %s could not be removed", dir)
					reporter.Report(err)
					return err
				}
				diag.Info("Removed %s", dir)
				removed++
			}
			diag.Success("Removed %d generated trees", removed)
			return nil
		},
	}
}

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter " + ConfigFileName + " into the working directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := opts.diagnostics()
			if _, err := os.Stat(ConfigFileName); err == nil {
				return fmt.Errorf("%s already exists", ConfigFileName)
			}
			starter := fmt.Sprintf(`{
  "snapshot": "sdkwire-snapshot.json",
  "output": "sdk",
  "flavors": [%q],
  "naming": {
    "stripClassSuffix": "Controller",
    "fileSuffix": "",
    "exportSuffix": ""
  },
  "format": {
    "skip": false,
    "timeoutSeconds": 60
  }
}
`, generator.FlavorPlain)
			if err := os.WriteFile(ConfigFileName, []byte(starter), 0o644); err != nil {
				return err
			}
			diag.Success("Wrote %s", ConfigFileName)
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tool version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "sdkwire %s\n", Version)
		},
	}
}

func mustBind(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
