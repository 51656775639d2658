package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"github.com/spf13/cobra"

	"github.com/bugVanisher/igsmenu/common/errs"
	"github.com/bugVanisher/igsmenu/media/igs"
	"github.com/bugVanisher/igsmenu/media/igs/render"
)

// rootCmd is the base command: decode one or more IGS menus (plain segment
// stream or Blu-ray transport stream) and write one PNG per
// (page, state1, state2) combination.
var rootCmd = &cobra.Command{
	Use:   "igsmenu [file ...]",
	Short: "Decode Blu-ray IGS interactive menus to PNG frames.",
	Long:  ``,
	Args:  cobra.MinimumNArgs(1),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(logLevel, logJSON)
	},
	Version:          "v1.0.0",
	TraverseChildren: true, // parses flags on all parents before executing child command
	SilenceUsage:     true, // silence usage when an error occurs
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDecode(args)
	},
}

var (
	verbose   bool
	logLevel  string
	logJSON   bool
	matrixArg string
	fullRange bool
)

var states = [...][2]string{
	{"normal", "start"}, {"normal", "stop"},
	{"selected", "start"}, {"selected", "stop"},
	{"activated", "start"}, {"activated", "stop"},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() int {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "include stack trace on error")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "INFO", "set log level")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "set log to json format (default colorized console)")
	rootCmd.PersistentFlags().StringVarP(&matrixArg, "matrix", "m", "", "override auto-detected YCbCr matrix (601, 709)")
	rootCmd.PersistentFlags().BoolVar(&fullRange, "full-range", false, "mark input as full range (default TV range)")

	err := rootCmd.Execute()
	if err != nil {
		return 1
	}
	return 0
}

func initLogger(logLevel string, logJSON bool) {
	// Error Logging with Stacktrace
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	// set log timestamp precise to milliseconds
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.999Z0700"

	var writer io.Writer
	if logJSON {
		writer = os.Stderr
	} else {
		writer = zerolog.ConsoleWriter{
			Out:     os.Stderr,
			NoColor: runtime.GOOS == "windows",
		}
	}
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()

	switch strings.ToUpper(logLevel) {
	case "DEBUG":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "WARN":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "ERROR":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// runDecode processes every input file independently: one file's failure is
// logged and does not abort the rest. The overall exit
// status is non-zero if any file failed.
func runDecode(paths []string) error {
	rng := render.TVRange
	if fullRange {
		rng = render.FullRange
	}

	sink := render.PNGSink{}

	failed := false
	for _, path := range paths {
		if err := decodeFile(path, rng, sink); err != nil {
			logErr := log.Error().Str("file", path)
			if verbose {
				logErr = logErr.Stack()
			}
			logErr.Err(err).Msg("failed to decode menu")
			failed = true
		}
	}

	if failed {
		return errs.New(errs.InvariantViolation, "one or more input files failed to decode")
	}
	return nil
}

func decodeFile(path string, rng render.Range, sink render.Sink) error {
	f, err := os.Open(path)
	if err != nil {
		return errs.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	menu, err := igs.Load(f)
	if err != nil {
		return errs.Wrapf(err, "decode %s", path)
	}
	menu.SourcePath = path
	logMenuSummary(path, menu)

	matrix := render.AutoMatrix(menu.Height)
	switch strings.ToLower(matrixArg) {
	case "601":
		matrix = render.Matrix601
	case "709":
		matrix = render.Matrix709
	case "":
		// keep the auto-detected matrix
	default:
		return errs.New(errs.InvariantViolation, "unknown matrix override %q", matrixArg)
	}

	prefix := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for _, page := range menu.Pages {
		for _, st := range states {
			frame, err := render.Render(menu, page, st[0], st[1], matrix, rng)
			if err != nil {
				return errs.Wrapf(err, "render page %d %s/%s", page.ID, st[0], st[1])
			}

			outName := fmt.Sprintf("%s_%d_%s_%s.png", prefix, page.ID, st[0], st[1])
			if err := writeFrame(outName, frame, sink); err != nil {
				return errs.Wrapf(err, "write %s", outName)
			}
		}
	}
	return nil
}

func writeFrame(outName string, frame *render.Frame, sink render.Sink) error {
	out, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer out.Close()
	return sink.Encode(out, frame.Image)
}
