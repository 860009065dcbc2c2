package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/muff1nman/duplicity/src/cli"
	"github.com/muff1nman/duplicity/src/selection"
)

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if opts.Verbosity != "" {
		var v cli.Verbosity
		if err := v.UnmarshalFlag(opts.Verbosity); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cli.InitLogging(v)
	} else {
		cli.InitLogging(cli.Verbosity(0))
	}
	if opts.LogFile != "" {
		if err := cli.InitFileLogging(opts.LogFile, cli.Verbosity(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	chain, err := selection.Build(opts.Root, opts.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "dupligo:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if opts.Timeout != "" {
		d, err := parseTimeout(opts.Timeout)
		if err != nil {
			fmt.Fprintln(os.Stderr, "dupligo:", err)
			os.Exit(1)
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	sel := selection.NewSelector(opts.Root, chain)

	var count int
	var totalBytes uint64
	for r := range sel.Walk(ctx) {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, "dupligo: warning:", r.Err)
			continue
		}
		fmt.Println(r.Path.String())
		count++
		if info, err := os.Lstat(r.Path.String()); err == nil && !info.IsDir() {
			totalBytes += uint64(info.Size())
		}
	}
	if err := sel.Err(); err != nil {
		fmt.Fprintln(os.Stderr, "dupligo: walk completed with errors:")
		fmt.Fprintln(os.Stderr, err)
	}

	fmt.Fprintf(os.Stderr, "dupligo: %d paths selected, %s\n", count, humanize.Bytes(totalBytes))
}

func parseTimeout(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid --timeout %q", s)
}
