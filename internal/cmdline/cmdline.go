// Package cmdline turns the raw process argument list into a validated run
// configuration.
//
// Parsing is a small state machine over a normalized token stream (see
// splitArgs). It is a pure function of its inputs: the argument list and the
// set of execution backends this build supports. It never reads globals and
// never exits the process; the entry point owns printing and exit codes.
package cmdline

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is the string printed for --version.
const Version = "sailfish 0.1.0"

// RunConfig is the validated run configuration. Built once by Parse and
// read-only afterward.
type RunConfig struct {
	UseOMP             bool
	UseGPU             bool
	Resolution         uint
	Fold               uint
	CheckpointInterval float64
	Outdir             string
	EndTime            float64
	RKOrder            int
	CFLNumber          float64
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() RunConfig {
	return RunConfig{
		Resolution:         1024,
		Fold:               10,
		CheckpointInterval: 1.0,
		Outdir:             ".",
		EndTime:            1.0,
		RKOrder:            1,
		CFLNumber:          0.2,
	}
}

// Capabilities records which execution backends the build supports. The
// parallel and GPU flags are only recognized, and only listed in the help
// text, when the matching capability is present.
type Capabilities struct {
	OpenMP bool
	GPU    bool
}

// state is the interpreter position: Ready, or awaiting the value for one
// field.
type state int

const (
	stateReady state = iota
	stateResolution
	stateFold
	stateCheckpoint
	stateEndTime
	stateRKOrder
	stateCFL
	stateOutdir
)

// Parse interprets the process arguments (excluding the program name).
//
// It returns either a populated RunConfig, an *InformationRequested (help or
// version text, a clean exit), or a *ParseError. Help and version requests
// short-circuit immediately; remaining tokens are not consumed or validated.
func Parse(args []string, caps Capabilities) (RunConfig, error) {
	c := DefaultConfig()
	st := stateReady
	tokens := splitArgs(args)

	// Help and version win over everything else in the stream, including
	// tokens that would otherwise fail to parse.
	for _, arg := range tokens {
		switch arg {
		case "--version":
			return c, &InformationRequested{Text: Version + "\n"}
		case "-h", "--help":
			return c, &InformationRequested{Text: HelpText(caps)}
		}
	}

	for _, arg := range tokens {
		switch st {
		case stateReady:
			switch {
			case caps.OpenMP && (arg == "-p" || arg == "--use-omp"):
				c.UseOMP = true
			case caps.GPU && (arg == "-g" || arg == "--use-gpu"):
				c.UseGPU = true
			case arg == "-n" || arg == "--resolution" || arg == "--res":
				st = stateResolution
			case arg == "-f" || arg == "--fold":
				st = stateFold
			case arg == "-c" || arg == "--checkpoint":
				st = stateCheckpoint
			case arg == "-e" || arg == "--end-time":
				st = stateEndTime
			case arg == "-r" || arg == "--rk-order":
				st = stateRKOrder
			case arg == "--cfl":
				st = stateCFL
			case arg == "-o" || arg == "--outdir":
				st = stateOutdir
			default:
				return c, &ParseError{Message: fmt.Sprintf("unrecognized option %s", arg)}
			}

		case stateResolution:
			x, err := strconv.ParseUint(arg, 10, 32)
			if err != nil {
				return c, fieldError("resolution", arg, err)
			}
			c.Resolution = uint(x)
			st = stateReady

		case stateFold:
			x, err := strconv.ParseUint(arg, 10, 64)
			if err != nil {
				return c, fieldError("fold", arg, err)
			}
			c.Fold = uint(x)
			st = stateReady

		case stateCheckpoint:
			x, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return c, fieldError("checkpoint", arg, err)
			}
			c.CheckpointInterval = x
			st = stateReady

		case stateEndTime:
			x, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return c, fieldError("end-time", arg, err)
			}
			c.EndTime = x
			st = stateReady

		case stateRKOrder:
			x, err := strconv.ParseInt(arg, 10, 32)
			if err != nil {
				return c, fieldError("rk-order", arg, err)
			}
			if x < 1 || x > 3 {
				return c, &ParseError{Message: "rk-order must be 1, 2, or 3"}
			}
			c.RKOrder = int(x)
			st = stateReady

		case stateCFL:
			x, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return c, fieldError("cfl", arg, err)
			}
			c.CFLNumber = x
			st = stateReady

		case stateOutdir:
			c.Outdir = arg
			st = stateReady
		}
	}

	if c.UseOMP && c.UseGPU {
		return c, &ParseError{Message: "--use-omp (-p) and --use-gpu (-g) are mutually exclusive"}
	}
	if st != stateReady {
		return c, &ParseError{Message: "missing argument"}
	}
	return c, nil
}

// fieldError reports a bad value for a flag, naming the field, the offending
// token, and the underlying parse failure.
func fieldError(field, arg string, err error) *ParseError {
	if ne, ok := err.(*strconv.NumError); ok {
		err = ne.Err
	}
	return &ParseError{Message: fmt.Sprintf("%s %s: %v", field, arg, err)}
}

// HelpText returns the usage message. Lines for the parallel and GPU flags
// appear only when the matching backend capability is present.
func HelpText(caps Capabilities) string {
	var b strings.Builder
	fmt.Fprintln(&b, "usage: sailfish [--version] [--help] <[options]>")
	fmt.Fprintln(&b, "       --version             print the code version number")
	fmt.Fprintln(&b, "       -h|--help             display this help message")
	if caps.OpenMP {
		fmt.Fprintln(&b, "       -p|--use-omp          run with OpenMP (reads OMP_NUM_THREADS)")
	}
	if caps.GPU {
		fmt.Fprintln(&b, "       -g|--use-gpu          run with GPU acceleration [-p is ignored]")
	}
	fmt.Fprintln(&b, "       -n|--resolution       grid resolution [1024]")
	fmt.Fprintln(&b, "       -f|--fold             number of iterations between messages [10]")
	fmt.Fprintln(&b, "       -c|--checkpoint       amount of time between writing checkpoints [1.0]")
	fmt.Fprintln(&b, "       -o|--outdir           data output directory [current]")
	fmt.Fprintln(&b, "       -e|--end-time         simulation end time [1.0]")
	fmt.Fprintln(&b, "       -r|--rk-order         Runge-Kutta integration order ([1]|2|3)")
	fmt.Fprintln(&b, "       --cfl                 CFL number [0.2]")
	return b.String()
}
