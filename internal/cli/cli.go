package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/rostergo/internal/app"
	"github.com/specialistvlad/rostergo/internal/feed"
)

// EnvPrefix prefixes the environment variables that supply flag defaults.
const EnvPrefix = "ROSTER_"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// Flag defaults are read from ROSTER_* environment variables first.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	env, err := readEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("rostergo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
rostergo - An interactive course and student roster manager.

Usage:
  rostergo [options] [CATALOG_PATH]

Arguments:
  CATALOG_PATH
    Optional path to a .hcl/.yaml file or a directory of them used to seed
    the roster before the session starts.

Options:
`)
		flagSet.PrintDefaults()
		fmt.Fprintf(output, "\nEvery option can also be set with a %s<NAME> environment variable,\ne.g. %sLOG_LEVEL=debug. A .env file in the working directory is read first.\n", EnvPrefix, EnvPrefix)
	}

	catalogFlag := flagSet.String("catalog", env.catalog, "Path to the catalog file or directory.")
	cFlag := flagSet.String("c", "", "Path to the catalog file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", env.healthcheckPort, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", env.logFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", env.logLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	feedURLFlag := flagSet.String("feed-url", env.feedURL, "socket.io server URL to publish roster events to. Empty is disabled.")
	feedNamespaceFlag := flagSet.String("feed-namespace", env.feedNamespace, "socket.io namespace for the event feed.")
	feedEventFlag := flagSet.String("feed-event", env.feedEvent, "socket.io event name for roster events.")
	feedInsecureFlag := flagSet.Bool("feed-insecure", env.feedInsecure, "Skip TLS certificate verification for the event feed.")
	feedTimeoutFlag := flagSet.Duration("feed-timeout", env.feedTimeout, "How long to wait for the event feed to connect.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := *catalogFlag
	if *cFlag != "" {
		path = *cFlag
	}
	if flagSet.NArg() > 0 {
		if flagSet.NArg() > 1 {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one catalog path, got %d", flagSet.NArg())}
		}
		path = flagSet.Arg(0)
	}
	slog.Debug("Catalog path determined.", "path", path)

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
		CatalogPath:     path,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Feed: feed.Config{
			URL:                *feedURLFlag,
			Namespace:          *feedNamespaceFlag,
			Event:              *feedEventFlag,
			InsecureSkipVerify: *feedInsecureFlag,
			ConnectTimeout:     *feedTimeoutFlag,
		},
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// envDefaults are the flag defaults after applying ROSTER_* variables.
type envDefaults struct {
	catalog         string
	healthcheckPort int
	logFormat       string
	logLevel        string
	feedURL         string
	feedNamespace   string
	feedEvent       string
	feedInsecure    bool
	feedTimeout     time.Duration
}

func readEnv() (envDefaults, error) {
	d := envDefaults{
		catalog:       os.Getenv(EnvPrefix + "CATALOG"),
		logFormat:     envOr("LOG_FORMAT", "text"),
		logLevel:      envOr("LOG_LEVEL", "info"),
		feedURL:       os.Getenv(EnvPrefix + "FEED_URL"),
		feedNamespace: os.Getenv(EnvPrefix + "FEED_NAMESPACE"),
		feedEvent:     envOr("FEED_EVENT", feed.DefaultEvent),
		feedTimeout:   10 * time.Second,
	}

	var errs []error
	if v, ok := lookup("HEALTHCHECK_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %sHEALTHCHECK_PORT %q: must be an integer", EnvPrefix, v))
		}
		d.healthcheckPort = port
	}
	if v, ok := lookup("FEED_INSECURE"); ok {
		insecure, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %sFEED_INSECURE %q: must be a boolean", EnvPrefix, v))
		}
		d.feedInsecure = insecure
	}
	if v, ok := lookup("FEED_TIMEOUT"); ok {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid %sFEED_TIMEOUT %q: must be a duration", EnvPrefix, v))
		}
		d.feedTimeout = timeout
	}
	return d, errors.Join(errs...)
}

func lookup(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func envOr(name, fallback string) string {
	if v, ok := lookup(name); ok {
		return v
	}
	return fallback
}
