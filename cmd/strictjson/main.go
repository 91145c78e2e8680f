package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/reoring/strictjson"
	gojsondrv "github.com/reoring/strictjson/driver/gojson"
	jsoniterdrv "github.com/reoring/strictjson/driver/jsoniter"
	sonicdrv "github.com/reoring/strictjson/driver/sonic"
	"github.com/reoring/strictjson/i18n"
	"github.com/reoring/strictjson/internal/input"
)

var drivers = map[string]func() strictjson.Driver{
	"std":      strictjson.StdDriver,
	"gojson":   gojsondrv.Driver,
	"jsoniter": jsoniterdrv.Driver,
	"sonic":    sonicdrv.Driver,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(fs.Output(), "strictjson: validate values and render them as JSON\n\nUsage:\n  strictjson [flags] [file ...]\n\nWith no file, or when file is -, standard input is read. YAML inputs may\nhold several documents.\n\nFlags:")
		fs.PrintDefaults()
	}
}

type options struct {
	indent  int
	keys    []string
	driver  string
	check   bool
	lang    string
	verbose bool
	format  string
	jobs    int
}

// docResult is the outcome of one input document.
type docResult struct {
	text string
	err  error
}

// fileResult holds every document of one input, or the error that prevented
// reading it.
type fileResult struct {
	name string
	docs []docResult
	err  error
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("strictjson", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = usage(fs)
	var (
		opts    options
		keysCSV string
	)
	fs.IntVar(&opts.indent, "indent", -1, "indentation width (default: 2 on a terminal, compact otherwise)")
	fs.StringVar(&keysCSV, "keys", "", "comma-separated member names to keep (allow-list)")
	fs.StringVar(&opts.driver, "driver", "std", "JSON driver: std|gojson|jsoniter|sonic")
	fs.BoolVar(&opts.check, "check", false, "validate only, write nothing to stdout")
	fs.StringVar(&opts.lang, "lang", "en", "message language: en|ja")
	fs.BoolVar(&opts.verbose, "v", false, "enable verbose logs")
	fs.StringVar(&opts.format, "format", "", "input format: json|yaml (default: by file extension)")
	fs.IntVar(&opts.jobs, "j", runtime.GOMAXPROCS(0), "number of files processed concurrently")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	newDriver, ok := drivers[opts.driver]
	if !ok {
		fmt.Fprintf(stderr, "strictjson: unknown driver %q (want one of %s)\n", opts.driver, strings.Join(driverNames(), ", "))
		return 2
	}
	if _, err := input.DetectFormat("", opts.format); err != nil {
		fmt.Fprintf(stderr, "strictjson: %v\n", err)
		return 2
	}
	if opts.jobs < 1 {
		opts.jobs = 1
	}
	opts.keys = splitCSV(keysCSV)
	if opts.indent < 0 {
		opts.indent = 0
		if isTerminal(stdout) {
			opts.indent = 2
		}
	}

	log := newLogger(opts.verbose, stderr)
	defer func() { _ = log.Sync() }()

	strictjson.SetDriver(newDriver())
	defer strictjson.UseDefaultDriver()
	i18n.SetLanguage(opts.lang)
	defer i18n.SetLanguage("en")

	files := fs.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}
	if lo.Count(files, "-") > 1 {
		fmt.Fprintln(stderr, "strictjson: standard input (-) may be given only once")
		return 2
	}
	log.Debug("starting", zap.Strings("files", files), zap.String("driver", strictjson.CurrentDriver().Name()), zap.Int("jobs", opts.jobs))

	results := make([]fileResult, len(files))
	var g errgroup.Group
	g.SetLimit(opts.jobs)
	for i, name := range files {
		g.Go(func() error {
			results[i] = processFile(name, stdin, opts, log)
			return nil
		})
	}
	_ = g.Wait()

	return report(results, opts.check, stdout, stderr)
}

func processFile(name string, stdin io.Reader, opts options, log *zap.Logger) fileResult {
	res := fileResult{name: name}
	if name == "-" {
		res.name = "<stdin>"
	}
	format, err := input.DetectFormat(name, opts.format)
	if err != nil {
		res.err = err
		return res
	}
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			res.err = errors.Wrap(err, "open")
			return res
		}
		defer f.Close()
		r = f
	}
	docs, err := input.ReadAll(r, format)
	if err != nil {
		res.err = err
		return res
	}

	var replacer any
	if len(opts.keys) > 0 {
		replacer = strictjson.AllowList(opts.keys)
	}
	for i, doc := range docs {
		var d docResult
		if opts.check {
			d.err = strictjson.Validate(doc, replacer)
		} else {
			d.text, d.err = strictjson.Strict.Stringify(doc, replacer, opts.indent)
		}
		if le, ok := strictjson.AsLocated(d.err); ok {
			log.Info("violation", zap.String("file", res.name), zap.Int("document", i),
				zap.String("code", le.Code()), zap.String("path", le.Path()))
		} else {
			log.Debug("document", zap.String("file", res.name), zap.Int("document", i), zap.Error(d.err))
		}
		res.docs = append(res.docs, d)
	}
	return res
}

// report prints results in input order and returns the exit status.
func report(results []fileResult, check bool, stdout, stderr io.Writer) int {
	status := 0
	for _, res := range results {
		if res.err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", res.name, res.err)
			status = 1
			continue
		}
		for i, d := range res.docs {
			if d.err != nil {
				label := res.name
				if len(res.docs) > 1 {
					label = fmt.Sprintf("%s#%d", res.name, i)
				}
				fmt.Fprintf(stderr, "%s: %v\n", label, d.err)
				status = 1
				continue
			}
			if !check {
				fmt.Fprintln(stdout, d.text)
			}
		}
	}
	return status
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func splitCSV(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	out := lo.Uniq(lo.Compact(parts))
	sort.Strings(out)
	return out
}

func driverNames() []string {
	names := lo.Keys(drivers)
	sort.Strings(names)
	return names
}
