package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/vk/cryoflow/internal/app"
)

// envOr returns the environment variable's value when set, the fallback
// otherwise. Flag values always win over the environment.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cryoflow", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
CryoFlow - workflow construction for cryo-EM image preprocessing.

Usage:
  cryoflow [options] [RUN_PATH]

Arguments:
  RUN_PATH
    Path to a run spec .hcl file describing the dataset and microscope.

Options:
`)
		flagSet.PrintDefaults()
	}

	runFlag := flagSet.String("run", "", "Path to the run spec file.")
	rFlag := flagSet.String("r", "", "Path to the run spec file (shorthand).")
	modeFlag := flagSet.String("mode", "full", "Operating mode. Options: 'full' or 'constrained'.")
	sampleFlag := flagSet.Int("sample", 0, "Randomly select this many frame stacks. 0 processes all of them.")
	seedFlag := flagSet.Int64("seed", 0, "Seed for the -sample selection.")
	baseDirFlag := flagSet.String("base-dir", "", "Install prefix holding the wrapper scripts.")
	siteFlag := flagSet.String("site", "", "Compute site the jobs run on.")
	outputSiteFlag := flagSet.String("output-site", "", "Storage site receiving staged-out artifacts.")
	logFormatFlag := flagSet.String("log-format", envOr("CRYOFLOW_LOG_FORMAT", "json"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr("CRYOFLOW_LOG_LEVEL", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *runFlag != "" {
		path = *runFlag
	} else if *rFlag != "" {
		path = *rFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Run spec path determined.", "path", path)

	if path == "" {
		slog.Debug("No run spec path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		RunPath:     path,
		BaseDir:     *baseDirFlag,
		Mode:        strings.ToLower(*modeFlag),
		SampleCount: *sampleFlag,
		SampleSeed:  *seedFlag,
		Site:        *siteFlag,
		OutputSite:  *outputSiteFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
