// Command pagewalk walks the configured table from a workstation or a
// long-lived container.
//
// In loop mode (the default) the whole table is scanned in this process,
// page after page, without invoking Lambda. In step mode a single page is
// scanned and, when more records remain, the configured Lambda function is
// invoked to continue the chain, exactly as the function itself would do.
//
//	pagewalk --mode=loop
//	pagewalk --mode=step --count=2000 --cursor='{"codeUAI":{"S":"0750001A"}}'
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/app"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/internal/config"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/payload"
	"github.com/input-output-hk/catalyst-forge-libs/services/aws/pagewalker/walker"
)

const (
	modeLoop = "loop"
	modeStep = "step"
)

type options struct {
	mode   string
	count  int64
	cursor string
}

func parseFlags(args []string) (*options, error) {
	fs := pflag.NewFlagSet("pagewalk", pflag.ContinueOnError)
	opts := &options{}
	fs.StringVar(&opts.mode, "mode", modeLoop, "loop: scan the whole table in process; step: scan one page and invoke the function for the rest")
	fs.Int64Var(&opts.count, "count", 0, "running count to resume from")
	fs.StringVar(&opts.cursor, "cursor", "", "resume cursor in DynamoDB JSON")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.mode != modeLoop && opts.mode != modeStep {
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
	return opts, nil
}

func (o *options) start() (payload.Payload, error) {
	cursor, err := payload.ParseCursor(o.cursor)
	if err != nil {
		return payload.Payload{}, err
	}
	p := payload.Payload{ScannedCount: o.count, Cursor: cursor}
	return p, p.Validate()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "pagewalk: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}
	start, err := opts.start()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(out).With("table_name", cfg.TableName)

	w, err := app.Load(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return walk(ctx, w, opts.mode, start, out)
}

func walk(ctx context.Context, w *walker.Walker, mode string, start payload.Payload, out io.Writer) error {
	switch mode {
	case modeStep:
		res, err := w.Step(ctx, start)
		if err != nil {
			return err
		}
		return report(out, res.State, res.Payload)
	default:
		final, err := w.Drain(ctx, start)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				_ = report(out, walker.StateScanning, final)
			}
			return err
		}
		return report(out, walker.StateDone, final)
	}
}

// report prints the state and the payload to resume from.
func report(out io.Writer, state walker.State, p payload.Payload) error {
	body, err := p.Encode()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s %s\n", state, body)
	return err
}
