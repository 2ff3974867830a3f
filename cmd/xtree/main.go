// Command xtree loads random keys into the balanced trees, removes part of
// them and validates every tree invariant against a reference set.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
	"github.com/benz9527/xtree/observability"
)

type options struct {
	n          int
	remove     float64
	kinds      []string
	seed       uint64
	checkEvery int
	metrics    bool
	print      bool
	logEnc     xlog.LogEncoderType
}

const printLimit = 64

func parseKinds(s string) ([]string, error) {
	kinds := lo.Uniq(lo.Compact(lo.Map(strings.Split(s, ","), func(kind string, _ int) string {
		return strings.ToLower(strings.TrimSpace(kind))
	})))
	if len(kinds) == 0 {
		return nil, infra.NewErrorStack("no tree kind")
	}
	if unknown := lo.Without(kinds, supportedKinds...); len(unknown) > 0 {
		return nil, infra.NewErrorStack(fmt.Sprintf("unknown tree kinds %v, supported %v", unknown, supportedKinds))
	}
	return kinds, nil
}

func parseOptions(args []string, output io.Writer) (options, error) {
	var (
		opts   options
		kinds  string
		logEnc string
	)
	f := flag.NewFlagSet("xtree", flag.ContinueOnError)
	f.SetOutput(output)
	f.IntVar(&opts.n, "n", 10000,
		"number of distinct keys to generate and insert")
	f.Float64Var(&opts.remove, "remove", 0.2,
		"fraction of the keys to remove after loading")
	f.StringVar(&kinds, "trees", "avl,llrb",
		"comma separated tree kinds, avl,llrb,bst")
	f.Uint64Var(&opts.seed, "seed", 1,
		"seed of the key generator")
	f.IntVar(&opts.checkEvery, "check-every", 1000,
		"validate the tree every n mutations, 0 validates at the end only")
	f.BoolVar(&opts.metrics, "metrics", false,
		"enable tree stats and print the metrics to stderr")
	f.BoolVar(&opts.print, "print", false,
		fmt.Sprintf("print the trees holding at most %d keys", printLimit))
	f.StringVar(&logEnc, "log-enc", "json",
		"log encoder, json or text")
	if err := f.Parse(args); err != nil {
		return opts, err
	}

	if opts.n < 0 {
		return opts, infra.NewErrorStack(fmt.Sprintf("negative key number %d", opts.n))
	}
	if opts.remove < 0 || opts.remove > 1 {
		return opts, infra.NewErrorStack(fmt.Sprintf("remove fraction %v out of [0, 1]", opts.remove))
	}
	if opts.checkEvery < 0 {
		return opts, infra.NewErrorStack(fmt.Sprintf("negative check interval %d", opts.checkEvery))
	}
	switch strings.ToLower(logEnc) {
	case "json":
		opts.logEnc = xlog.JSON
	case "text":
		opts.logEnc = xlog.PlainText
	default:
		return opts, infra.NewErrorStack(fmt.Sprintf("unknown log encoder %q", logEnc))
	}
	var err error
	opts.kinds, err = parseKinds(kinds)
	return opts, err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	opts, err := parseOptions(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	logger := xlog.NewXLogger(
		xlog.WithXLoggerEncoder(opts.logEnc),
		xlog.WithXLoggerWriter(zapcore.Lock(zapcore.AddSync(out))),
	)
	defer func() {
		_ = logger.Sync()
	}()

	undo, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Logf(zapcore.InfoLevel, format, args...)
	}))
	defer undo()
	if err != nil {
		logger.Warn("unable to set GOMAXPROCS", zap.Error(err))
	}

	if opts.metrics {
		shutdown, err := observability.InitConsoleMetricsExporter(
			time.Second, 5*time.Second,
			stdoutmetric.WithWriter(os.Stderr),
		)
		if err != nil {
			logger.Error(err, "unable to init the metrics exporter")
			return 1
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Error(err, "unable to flush the metrics")
			}
		}()
		if err := observability.InitAppStats("xtree"); err != nil {
			logger.Warn("unable to start the runtime stats", zap.Error(err))
		}
	}

	cfg := workloadConfig{
		keys:        generateKeys(opts.n, opts.seed),
		removeRatio: opts.remove,
		checkEvery:  opts.checkEvery,
		seed:        opts.seed,
		withStats:   opts.metrics,
	}
	if opts.print {
		cfg.printLimit = printLimit
	}
	logger.Info("workloads start",
		zap.Strings("trees", opts.kinds),
		zap.Int("keys", opts.n),
		zap.Float64("remove", opts.remove),
		zap.Uint64("seed", opts.seed),
	)

	reports, err := runWorkloads(opts.kinds, cfg, logger)
	if err != nil {
		logger.ErrorStack(err, "unable to run the workloads")
		return 1
	}

	failed := 0
	for _, report := range reports {
		fields := []zap.Field{
			zap.String("tree", report.kind),
			zap.Int64("len", report.length),
			zap.Duration("elapsed", report.elapsed),
		}
		if report.kind != kindLLRB {
			fields = append(fields, zap.Int32("height", report.height))
		}
		if report.err != nil {
			failed++
			logger.ErrorStack(report.err, "workload failed", fields...)
			continue
		}
		logger.Info("workload passed", fields...)
		if report.printed != nil {
			_, _ = io.Copy(out, report.printed)
		}
	}
	if failed > 0 {
		return 1
	}
	return 0
}

// runWorkloads submits one workload per tree kind to the pool.
func runWorkloads(kinds []string, cfg workloadConfig, logger xlog.XLogger) ([]workloadReport, error) {
	pool, err := ants.NewPool(
		len(kinds),
		ants.WithLogger(xlog.NewAntsXLogger(logger)),
		ants.WithPanicHandler(func(v any) {
			logger.Error(fmt.Errorf("%v", v), "workload panicked")
		}),
	)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "new workload pool")
	}
	defer pool.Release()

	reports := make([]workloadReport, len(kinds))
	wg := sync.WaitGroup{}
	for i, kind := range kinds {
		reports[i] = workloadReport{
			kind: kind,
			err:  infra.NewErrorStack("workload did not finish"),
		}
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			reports[i] = runWorkload(kind, cfg)
		}); err != nil {
			wg.Done()
			reports[i].err = infra.WrapErrorStackWithMessage(err, "submit workload")
		}
	}
	wg.Wait()
	return reports, nil
}
