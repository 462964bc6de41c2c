// Command engine loads a bytecode image and runs it: `engine
// [--mem-stats] [--config FILE] program.bc`. It follows the teacher's
// manual os.Args parsing rather than a flag-package subcommand tree,
// since this surface is a single action with two optional switches, not
// sentra's build/watch/test/repl sprawl.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/tom9nguyen/jerryscript/internal/config"
	"github.com/tom9nguyen/jerryscript/internal/engine"
	"github.com/tom9nguyen/jerryscript/internal/runtime"
)

// exit codes per the CLI surface contract: 0 success, 1 failure, 2
// unhandled exception, 3 engine fault (OOM or internal corruption).
const (
	exitOK        = 0
	exitFailure   = 1
	exitException = 2
	exitFault     = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var memStats bool
	var configPath string
	var programPath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--mem-stats":
			memStats = true
		case "--config":
			i++
			if i >= len(args) {
				fmt.Fprintln(os.Stderr, "engine: --config requires a path argument")
				return exitFailure
			}
			configPath = args[i]
		default:
			if programPath != "" {
				fmt.Fprintf(os.Stderr, "engine: unexpected argument %q\n", args[i])
				return exitFailure
			}
			programPath = args[i]
		}
	}
	if programPath == "" {
		fmt.Fprintln(os.Stderr, "usage: engine [--mem-stats] [--config FILE] program.bc")
		return exitFailure
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "engine: loading config: %v\n", err)
			return exitFailure
		}
		cfg = loaded
	}

	data, err := os.ReadFile(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: reading %s: %v\n", programPath, err)
		return exitFailure
	}

	e := engine.New(cfg)
	prog, err := e.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine: %v\n", err)
		return exitFailure
	}

	code := exitOK
	completion, runErr := e.Run(prog)
	if runErr != nil {
		reportFault(runErr)
		code = exitFault
	} else if completion.IsThrow() {
		reportException(completion.Value)
		code = exitException
	} else if completion.Type == runtime.CompletionExit && completion.Value.IsBoolean() && !completion.Value.BoolValue() {
		code = exitFailure
	}

	if memStats {
		printMemStats(e)
	}
	return code
}

func colorableStderr() bool {
	return isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
}

func reportException(v runtime.Value) {
	msg := fmt.Sprintf("uncaught exception: %s", describeValue(v))
	if colorableStderr() {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

func reportFault(err error) {
	msg := fmt.Sprintf("engine fault: %v", err)
	if colorableStderr() {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// describeValue renders a thrown value for the failure report: Error
// objects print their name and message, per ES5 15.11.4.4's toString,
// everything else falls back to its primitive string conversion.
func describeValue(v runtime.Value) string {
	if v.IsObject() {
		o := v.Object()
		name := o.Get("name")
		msg := o.Get("message")
		if !name.IsThrow() && !msg.IsThrow() {
			return fmt.Sprintf("%s: %s", name.Value.StringValue(), msg.Value.StringValue())
		}
	}
	return v.StringValue()
}

func printMemStats(e *engine.Engine) {
	stats := e.Stats()
	heading := "memory stats"
	if colorableStderr() {
		color.New(color.FgCyan, color.Bold).Fprintln(os.Stdout, heading)
	} else {
		fmt.Fprintln(os.Stdout, heading)
	}
	fmt.Printf("  heap:      %s allocated, %s waste, %s peak allocated, %s peak waste\n",
		humanize.Bytes(stats.Heap.AllocatedBytes), humanize.Bytes(stats.Heap.WasteBytes),
		humanize.Bytes(stats.Heap.PeakAllocated), humanize.Bytes(stats.Heap.PeakWaste))
	fmt.Printf("  pool:      %d pages, %d chunks allocated, %d peak chunks\n",
		stats.Pool.PoolsCount, stats.Pool.AllocatedChunks, stats.Pool.PeakChunks)
	fmt.Printf("  gc:        %d minor, %d major, %d objects freed (last collection freed %d)\n",
		stats.GC.MinorCollections, stats.GC.MajorCollections, stats.GC.ObjectsFreed, stats.GC.LastFreed)
	fmt.Printf("  global:    %s peak allocated, %s peak waste across every heap this process has opened\n",
		humanize.Bytes(stats.GlobalPeakAlloc), humanize.Bytes(stats.GlobalPeakWaste))
}
