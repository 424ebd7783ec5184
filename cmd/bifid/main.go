// Command bifid encrypts and decrypts text with the Bifid cipher.
//
// Usage:
//
//	bifid encrypt --key KEY [FILE]
//	bifid decrypt --key KEY [FILE]
//	bifid table --key KEY
//	bifid config init [PATH]
//
// Text is read from FILE or stdin, one message per line unless --lines=false.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jmccarv/bifid"
	"github.com/jmccarv/bifid/internal/config"
	"github.com/jmccarv/bifid/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what the commands share once flags and config are parsed.
type app struct {
	cfgFile    string
	cpuprofile string
	memprofile string
	maxRuntime time.Duration
	profile    *os.File

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "bifid",
		Short: "Encrypt and decrypt text with the Bifid cipher",
		Long: `bifid builds a 5x5 Polybius square from a key and uses it to
encrypt or decrypt text. Only letters are kept; J is read as I unless
another merge is configured with --merge.

Settings come from flags, BIFID_* environment variables and a
.bifid.yaml config file, in that order.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	d := config.Defaults()
	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is "+config.FileName+" in $HOME or the current directory)")
	pf.StringP("key", "k", d["key"].(string), "cipher key")
	pf.StringP("merge", "m", d["merge"].(string), "merged letter pair, LETTER=INTO")
	pf.Int("period", d["period"].(int), "transform in blocks of this many letters, 0 for the whole message")
	pf.Bool("lines", d["lines"].(bool), "treat each input line as a separate message")
	pf.IntP("parallel", "p", d["parallel"].(int), "number of lines to process at once")
	pf.Bool("verbose", d["verbose"].(bool), "show the table and the coordinates of every message")
	pf.StringVar(&a.cpuprofile, "cpuprofile", "", "write cpu profile to `file`")
	pf.StringVar(&a.memprofile, "memprofile", "", "write memory profile to `file`")
	pf.DurationVarP(&a.maxRuntime, "max-runtime", "r", 0, "give up after this long, e.g. 30s or 1m")

	cmd.AddCommand(
		a.newCipherCmd(bifid.Encrypt),
		a.newCipherCmd(bifid.Decrypt),
		a.newTableCmd(),
		a.newConfigCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		if a.logger, err = logging.New(cfg.Verbose); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	if a.cpuprofile != "" {
		f, err := os.Create(a.cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		a.profile = f
	}
	return nil
}

// teardown undoes setup. It runs whether or not the command succeeded.
func (a *app) teardown() error {
	if a.profile != nil {
		pprof.StopCPUProfile()
		a.profile.Close()
		a.profile = nil
	}

	var err error
	if a.memprofile != "" {
		err = writeHeapProfile(a.memprofile)
	}

	if a.logger != nil {
		_ = a.logger.Sync()
	}
	return err
}

func writeHeapProfile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create memory profile: %w", err)
	}
	defer f.Close()

	runtime.GC() // get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("could not write memory profile: %w", err)
	}
	return nil
}

// runE wraps fn so that teardown follows it on every path. cobra skips its
// post-run hooks when RunE fails, so they cannot be used for this.
func (a *app) runE(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if terr := a.teardown(); err == nil {
				err = terr
			}
		}()
		return fn(cmd, args)
	}
}

func (a *app) cipher() (*bifid.Cipher, error) {
	alpha, err := a.cfg.Alphabet()
	if err != nil {
		return nil, err
	}
	return bifid.New(a.cfg.Key, bifid.WithAlphabet(alpha), bifid.WithPeriod(a.cfg.Period))
}

// report logs err and marks invariant violations as internal errors so they
// are not mistaken for bad input.
func (a *app) report(err error) error {
	if errors.Is(err, bifid.ErrInvariant) {
		a.logger.Error("internal error", zap.Error(err))
		return fmt.Errorf("internal error, please report: %w", err)
	}
	return err
}

func (a *app) newCipherCmd(mode bifid.Mode) *cobra.Command {
	var text string

	cmd := &cobra.Command{
		Use:   mode.String() + " [FILE]",
		Short: fmt.Sprintf("%s text read from FILE, --text or stdin", mode),
		Long: fmt.Sprintf(`Read messages from FILE, --text or stdin and %s them.

Each line is a separate message unless --lines=false. Lines starting
with '#' are comments and are skipped.`, mode),
		Args: cobra.MaximumNArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			if text != "" && len(args) > 0 {
				return fmt.Errorf("use either --text or FILE, not both")
			}

			c, err := a.cipher()
			if err != nil {
				return a.report(err)
			}

			in := cmd.InOrStdin()
			name := "stdin"
			if text != "" {
				in = strings.NewReader(text)
				name = "--text"
			} else if len(args) > 0 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
				name = args[0]
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if a.maxRuntime > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.maxRuntime)
				defer cancel()
			}

			err = a.run(ctx, runParams{
				cipher: c,
				mode:   mode,
				in:     in,
				name:   name,
				out:    cmd.OutOrStdout(),
				diag:   cmd.ErrOrStderr(),
			})
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("gave up after %v: %w", a.maxRuntime, err)
			}
			return a.report(err)
		}),
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "message to process instead of reading input")
	return cmd
}

func (a *app) newTableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the key table",
		Args:  cobra.NoArgs,
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			c, err := a.cipher()
			if err != nil {
				return a.report(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(c.Table()))
			return nil
		}),
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	initCmd := &cobra.Command{
		Use:   "init [PATH]",
		Short: "Write the current settings to a config file",
		Long: `Write the effective settings, including any flags given, to PATH
(default ` + config.FileName + ` in the current directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runE(func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}

			cfg := a.cfg
			if cfg.Parallel == runtime.NumCPU()*2 {
				// machine dependent, leave it to the default
				cfg.Parallel = 0
			}
			if err := config.Write(cfg, path); err != nil {
				return err
			}
			a.logger.Info("wrote config", zap.String("path", path))
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		}),
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}
