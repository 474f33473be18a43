package command

import (
	"context"
	goflag "flag"
	"fmt"
	"github.com/kadaan/lttb/config"
	"github.com/kadaan/lttb/lib/errors"
	"github.com/kadaan/lttb/version"
	"github.com/kadaan/tracerr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"io"
	"k8s.io/klog/v2"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
)

var (
	osExit = os.Exit

	// cobra initializers are global; one hook serves whichever root runs.
	registerInitializer sync.Once
	executingRoot       *rootCommand
	configInitializer   = (*rootCommand).initConfig
)

func initExecutingRoot() {
	if executingRoot != nil {
		configInitializer(executingRoot)
	}
}

type RootCommand interface {
	Execute()
	addCommand(cmd *cobra.Command)
}

func NewRootCommand(short string, long string) RootCommand {
	log.SetFlags(0)
	r := new(rootCommand)
	r.cmd = &cobra.Command{
		Use:           version.Name,
		Short:         short,
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	r.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
		klog.InitFlags(klogFlags)
		return klogFlags.Parse([]string{
			"--skip_headers=true",
			fmt.Sprintf("-v=%d", r.verbosity),
		})
	}
	r.addVersionCommand(r.cmd)
	r.addCompletionCommand(r.cmd)
	registerInitializer.Do(func() {
		cobra.OnInitialize(initExecutingRoot)
	})
	r.cmd.PersistentFlags().CountVarP(&r.verbosity, "verbose", "v", "enables verbose logging (multiple times increases verbosity)")
	r.cmd.PersistentFlags().StringVar(&r.cfgFile, "config", "", "config file (default is ."+version.Name+".yaml)")
	return r
}

type rootCommand struct {
	verbosity int
	cfgFile   string
	cmd       *cobra.Command
}

func (r *rootCommand) addCommand(cmd *cobra.Command) {
	r.cmd.AddCommand(cmd)
}

func (r *rootCommand) addVersionCommand(cmd *cobra.Command) {
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Prints the " + version.Name + " version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Print())
		},
	})
}

func (r *rootCommand) addCompletionCommand(cmd *cobra.Command) {
	completionShells := map[string]func(c *cobra.Command) error{
		"bash": func(c *cobra.Command) error {
			return cmd.GenBashCompletion(c.OutOrStdout())
		},
		"zsh": func(c *cobra.Command) error {
			return cmd.GenZshCompletion(c.OutOrStdout())
		},
	}
	completionCommand := &cobra.Command{
		Use:                   "completion SHELL",
		DisableFlagsInUseLine: true,
		Short:                 "Output shell completion code for the specified shell (bash or zsh)",
		Long: `Output shell completion code for the specified shell (bash or zsh).
The shell code must be evaluated to provide interactive
completion of ` + version.Name + ` commands.  This can be done by sourcing it from
the .bash_profile.
Note for zsh users: [1] zsh completions are only supported in versions of zsh >= 5.2`,
		Example: `# Load the ` + version.Name + ` completion code for bash into the current shell
	source <(` + version.Name + ` completion bash)
# Set the ` + version.Name + ` completion code for zsh[1] to autoload on startup
	` + version.Name + ` completion zsh > "${fpath[1]}/_` + version.Name + `"`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh"},
		RunE: func(c *cobra.Command, args []string) error {
			run, found := completionShells[args[0]]
			if !found {
				return errors.New("unsupported shell type %q", args[0])
			}
			return run(c)
		},
	}
	cmd.AddCommand(completionCommand)
}

func (r *rootCommand) initConfig() {
	if r.cfgFile != "" {
		viper.SetConfigFile(r.cfgFile)
	} else {
		workingDir, err := os.Getwd()
		if err != nil {
			tracerr.PrintSourceColor(err)
			osExit(1)
		}

		viper.AddConfigPath(workingDir)
		viper.SetConfigName("." + version.Name)
	}

	viper.SetEnvPrefix(version.Name)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		klog.V(0).Infoln("Using config file:", viper.ConfigFileUsed())
	}

	r.postInitCommands(r.cmd.Commands())
}

func (r *rootCommand) postInitCommands(commands []*cobra.Command) {
	for _, c := range commands {
		presetRequiredFlags(c)
		if c.HasSubCommands() {
			r.postInitCommands(c.Commands())
		}
	}
}

// presetRequiredFlags copies values found in the config file or environment
// onto flags that were not given on the command line.
func presetRequiredFlags(cmd *cobra.Command) {
	_ = viper.BindPFlags(cmd.Flags())
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if !f.Changed && viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			_ = cmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}

func (r *rootCommand) Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	executingRoot = r
	defer func() {
		executingRoot = nil
	}()
	if err := r.cmd.ExecuteContext(ctx); err != nil {
		tracerr.PrintSourceColor(err)
		stop()
		osExit(1)
	}
}

type Command[C any] interface {
	Configure(func(fb config.FlagBuilder, cfg *C))
}

type command[C any] struct {
	cfg *C
	fb  config.FlagBuilder
}

func (c *command[C]) Configure(f func(fb config.FlagBuilder, cfg *C)) {
	f(c.fb, c.cfg)
}

func NewCommand[C any](root RootCommand, use string, short string, long string, cfg *C, task Task[C]) Command[C] {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := task.Run(cmd.Context(), cmd.OutOrStdout(), cfg); err != nil {
				return errors.Wrap(err, "%s failed", use)
			}
			return nil
		},
	}
	root.addCommand(c)
	return &command[C]{
		cfg: cfg,
		fb:  config.NewFlagBuilder(c),
	}
}

type Task[C any] interface {
	Run(ctx context.Context, out io.Writer, cfg *C) error
}
