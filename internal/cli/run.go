package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/gofrs/flock"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sdejongh/sortnorris/pkg/audit"
	"github.com/sdejongh/sortnorris/pkg/config"
	"github.com/sdejongh/sortnorris/pkg/digest"
	"github.com/sdejongh/sortnorris/pkg/extensions"
	"github.com/sdejongh/sortnorris/pkg/logging"
	"github.com/sdejongh/sortnorris/pkg/models"
	"github.com/sdejongh/sortnorris/pkg/output"
	"github.com/sdejongh/sortnorris/pkg/ratelimit"
	"github.com/sdejongh/sortnorris/pkg/relocate"
	"github.com/sdejongh/sortnorris/pkg/storage"
)

func runRelocate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stdout := cmd.OutOrStdout()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return usageFailure(fmt.Errorf("failed to load config: %w", err))
	}

	// Override config with command-line flags
	applyFlagsToConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return usageFailure(err)
	}

	// Nothing is written before the inputs are known to be usable
	inputs, err := validateInputs(args[0], args[1], args[2])
	if err != nil {
		return usageFailure(err)
	}

	exts, err := extensions.Load(afero.NewOsFs(), inputs.ExtensionFile)
	if err != nil {
		return usageFailure(err)
	}

	runConfig, err := createRunConfig(cfg, inputs)
	if err != nil {
		return usageFailure(fmt.Errorf("failed to create run configuration: %w", err))
	}

	showProgress := cfg.Output.Format == "human" && cfg.Output.Progress && isTerminal(stdout)

	logger, err := createLogger(cfg, runConfig, consoleWriter(cmd, cfg), showProgress)
	if err != nil {
		return usageFailure(fmt.Errorf("failed to create logger: %w", err))
	}
	defer logger.Close()

	if exts.Len() == 0 {
		logger.Warn(ctx, "Extension list is empty, no file will be relocated", logging.Fields{
			"file": inputs.ExtensionFile,
		})
	}

	formatter := createFormatter(cfg, stdout, showProgress)

	sink, release, err := openSink(cfg, runConfig.Preview)
	if err != nil {
		return usageFailure(err)
	}
	defer release()

	backend := storage.NewLocal()
	defer backend.Close()

	hasher, err := digest.New(runConfig.HashAlgorithm, runConfig.BufferSize)
	if err != nil {
		return usageFailure(err)
	}
	if limiter := ratelimit.NewLimiter(runConfig.BandwidthLimit); limiter != nil {
		hasher.SetReaderWrapper(func(rc io.ReadCloser) io.ReadCloser {
			// Throttled reads belong to the file in flight, which always completes
			return ratelimit.NewReadCloser(context.WithoutCancel(ctx), rc, limiter)
		})
	}

	engine := relocate.NewEngine(backend, exts, hasher, sink, formatter, logger, runConfig)

	report, err := engine.Run(ctx)
	if err != nil {
		return &ExitError{Code: report.Status.ExitCode(), Err: fmt.Errorf("relocation failed: %w", err)}
	}

	if code := report.Status.ExitCode(); code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

// consoleWriter keeps stdout clean for JSON output
func consoleWriter(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if cfg.Output.Format == "json" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// createLogger creates the console logger plus the optional log file
func createLogger(cfg *config.Config, runConfig models.RunConfig, console io.Writer, quietConsole bool) (logging.Logger, error) {
	level := logging.ParseLevel(cfg.Logging.Level)
	// A progress bar owns the terminal; only warnings get through
	if quietConsole && !runConfig.Debug && level < logging.WarnLevel {
		level = logging.WarnLevel
	}

	format := logging.FormatText
	if cfg.Logging.Format == "json" {
		format = logging.FormatJSON
	}

	logger, err := logging.New(logging.Config{
		Level:      level,
		Console:    console,
		NoColor:    !isTerminal(console),
		FilePath:   cfg.Logging.File,
		FileFormat: format,
	})
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// createFormatter picks the summary formatter
func createFormatter(cfg *config.Config, w io.Writer, showProgress bool) output.Formatter {
	switch {
	case cfg.Output.Format == "json":
		return output.NewJSONFormatter(w)
	case showProgress:
		return output.NewProgressFormatter(w)
	default:
		return output.NewHumanFormatter(w)
	}
}

// openSink returns the audit sink for the run and a release function.
// Non-preview runs take the run lock and truncate the three logs; preview
// runs touch nothing.
func openSink(cfg *config.Config, preview bool) (audit.Sink, func(), error) {
	if preview {
		return audit.NewNullSink(), func() {}, nil
	}

	lock := flock.New(cfg.Relocate.LockFile)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, nil, fmt.Errorf("another sortnorris run is using the audit logs (lock %s)", cfg.Relocate.LockFile)
	}

	sink, err := audit.OpenFileSink(afero.NewOsFs(), cfg.AuditPaths())
	if err != nil {
		_ = lock.Unlock()
		return nil, nil, err
	}

	return sink, func() {
		_ = sink.Close()
		_ = lock.Unlock()
	}, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
