package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/sdejongh/sortnorris/internal/platform"
	"github.com/sdejongh/sortnorris/pkg/config"
	"github.com/sdejongh/sortnorris/pkg/logging"
	"github.com/sdejongh/sortnorris/pkg/models"
)

// runInputs holds the validated, resolved positional arguments
type runInputs struct {
	ExtensionFile string
	Source        string
	Target        string
}

// validateInputs checks the three positional arguments before anything is touched
func validateInputs(extensionFile, source, target string) (runInputs, error) {
	info, err := os.Stat(extensionFile)
	if os.IsNotExist(err) {
		return runInputs{}, &models.ValidationError{
			Field:   "extensionListFile",
			Message: fmt.Sprintf("file does not exist: %s", extensionFile),
		}
	} else if err != nil {
		return runInputs{}, fmt.Errorf("failed to access extension list: %w", err)
	} else if !info.Mode().IsRegular() {
		return runInputs{}, &models.ValidationError{
			Field:   "extensionListFile",
			Message: fmt.Sprintf("not a regular file: %s", extensionFile),
		}
	}

	sourceAbs, err := validateDirectory("sourceDir", source)
	if err != nil {
		return runInputs{}, err
	}
	targetAbs, err := validateDirectory("targetDir", target)
	if err != nil {
		return runInputs{}, err
	}

	if platform.SamePath(sourceAbs, targetAbs) {
		return runInputs{}, &models.ValidationError{
			Field:   "targetDir",
			Message: fmt.Sprintf("source and target cannot be the same: %s", sourceAbs),
		}
	}
	if platform.IsWithin(sourceAbs, targetAbs) {
		return runInputs{}, &models.ValidationError{
			Field:   "targetDir",
			Message: "target cannot be inside the source directory",
		}
	}
	if platform.IsWithin(targetAbs, sourceAbs) {
		return runInputs{}, &models.ValidationError{
			Field:   "sourceDir",
			Message: "source cannot be inside the target directory",
		}
	}

	extAbs, err := platform.Resolve(extensionFile)
	if err != nil {
		return runInputs{}, err
	}

	return runInputs{ExtensionFile: extAbs, Source: sourceAbs, Target: targetAbs}, nil
}

// validateDirectory checks that path exists and is a directory, returning its resolved form
func validateDirectory(field, path string) (string, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return "", &models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("directory does not exist: %s", path),
		}
	} else if err != nil {
		return "", fmt.Errorf("failed to access %s: %w", path, err)
	} else if !info.IsDir() {
		return "", &models.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("not a directory: %s", path),
		}
	}
	return platform.Resolve(path)
}

// loadConfig loads configuration from file or returns default
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyFlagsToConfig overrides config values with command-line flags
func applyFlagsToConfig(cfg *config.Config) {
	if runFlags.Timezone != "" {
		cfg.Relocate.Timezone = runFlags.Timezone
	}

	if len(runFlags.Exclude) > 0 {
		cfg.Relocate.Exclude = append(cfg.Relocate.Exclude, runFlags.Exclude...)
	}

	if runFlags.Hash != "" {
		cfg.Hash.Algorithm = runFlags.Hash
	}

	if runFlags.Bandwidth != "" {
		cfg.Hash.BandwidthLimit = runFlags.Bandwidth
	}

	if runFlags.Output != "" {
		cfg.Output.Format = runFlags.Output
	}

	if runFlags.Progress {
		cfg.Output.Progress = true
	}

	if runFlags.LogFile != "" {
		cfg.Logging.File = runFlags.LogFile
	}

	if runFlags.LogFormat != "" {
		cfg.Logging.Format = runFlags.LogFormat
	}

	if runFlags.LogLevel != "" {
		cfg.Logging.Level = runFlags.LogLevel
	}

	// Debug wins over any configured level
	if runFlags.Debug {
		cfg.Logging.Level = "debug"
	}
}

// createRunConfig freezes the resolved configuration for one run
func createRunConfig(cfg *config.Config, inputs runInputs) (models.RunConfig, error) {
	loc, err := cfg.Location()
	if err != nil {
		return models.RunConfig{}, err
	}

	rc := models.RunConfig{
		ID:             uuid.New().String(),
		ExtensionFile:  inputs.ExtensionFile,
		SourcePath:     inputs.Source,
		TargetPath:     inputs.Target,
		Preview:        runFlags.Preview,
		Debug:          logging.ParseLevel(cfg.Logging.Level) == logging.DebugLevel,
		Location:       loc,
		Exclude:        cfg.Relocate.Exclude,
		HashAlgorithm:  models.HashAlgorithm(cfg.Hash.Algorithm),
		BufferSize:     cfg.Hash.BufferSize,
		BandwidthLimit: cfg.BandwidthLimit(),
		CreatedAt:      time.Now(),
	}

	if err := rc.Validate(); err != nil {
		return models.RunConfig{}, err
	}
	return rc, nil
}
