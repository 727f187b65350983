package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/idanc/machsan/internal/inventory"
	"github.com/idanc/machsan/internal/label"
	"github.com/idanc/machsan/internal/ledger"
	"github.com/idanc/machsan/internal/model"
	"github.com/idanc/machsan/internal/storage"
)

const usage = `Usage: machsan <command> [flags]

Commands:
  list      show the items of one category
  add       add an item to a category
  delete    move an item to the archive
  restore   move an item back out of the archive
  archive   show the archive
  search    classify items against a search term
  total     show the price total of one or all categories
  label     render an item's label to a PNG file

Common flags:
  -data <dir>   data directory holding the category files (default: .)
  -log <path>   log file path (default: no file, stdout/stderr only)
`

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR
// goes to stderr. If logPath is non-empty, all levels are also written to
// that file. Returns a cleanup function that closes the log file.
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "list":
		err = cmdList(os.Args[2:])
	case "add":
		err = cmdAdd(os.Args[2:])
	case "delete":
		err = cmdDelete(os.Args[2:])
	case "restore":
		err = cmdRestore(os.Args[2:])
	case "archive":
		err = cmdArchive(os.Args[2:])
	case "search":
		err = cmdSearch(os.Args[2:])
	case "total":
		err = cmdTotal(os.Args[2:])
	case "label":
		err = cmdLabel(os.Args[2:])
	case "help", "-h", "-help", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

// newService wires the ledger, storage and service for one invocation and
// loads the persisted state.
func newService(dataDir, logPath string) (*inventory.Service, error) {
	closeLog, err := setupLogger(logPath)
	if err != nil {
		return nil, err
	}
	_ = closeLog // closed on process exit

	store, err := storage.NewStore(dataDir)
	if err != nil {
		return nil, err
	}

	svc := inventory.New(ledger.New(model.Categories, ledger.NumberPerCategory), store)
	svc.Load()
	return svc, nil
}

func printItems(items []model.Item) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NO\tSERIAL\tBRAND\tMODEL\tSCREEN\tPROCESSOR\tMEMORY\tDISK\tGRAPHICS\tRESOLUTION\tTOUCH\tOS\tSTATUS\tPRICE\tCODE")
	for _, it := range items {
		fmt.Fprintf(w, "%d\t%s\n", it.Ordinal, joinFields(it))
	}
	w.Flush()
}

func joinFields(it model.Item) string {
	out := ""
	for n, f := range it.Fields() {
		if n > 0 {
			out += "\t"
		}
		out += f
	}
	return out
}

func cmdList(args []string) error {
	fs, dataDir, logPath := commonFlags("list")
	category := fs.String("category", model.Categories[0], "category to list")
	sortBy := fs.String("sort", "", "column to sort by")
	desc := fs.Bool("desc", false, "sort descending")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	if err := svc.ChangeCategory(*category); err != nil {
		return err
	}

	var items []model.Item
	if *sortBy != "" {
		items, err = svc.SortBy(*sortBy, *desc)
	} else {
		items, err = svc.Visible()
	}
	if err != nil {
		return err
	}
	printItems(items)
	return nil
}

func cmdAdd(args []string) error {
	fs, dataDir, logPath := commonFlags("add")
	category := fs.String("category", model.Categories[0], "category to add to")
	var fields model.Item
	fs.StringVar(&fields.Serial, "serial", "", "supplier/serial identifier (required)")
	fs.StringVar(&fields.Brand, "brand", "", "brand")
	fs.StringVar(&fields.Model, "model", "", "model")
	fs.StringVar(&fields.Screen, "screen", "", "screen size")
	fs.StringVar(&fields.Processor, "processor", "", "processor")
	fs.StringVar(&fields.Memory, "memory", "", "memory")
	fs.StringVar(&fields.Disk, "disk", "", "disk")
	fs.StringVar(&fields.Graphics, "graphics", "", "graphics card")
	fs.StringVar(&fields.Resolution, "resolution", "", "resolution")
	fs.StringVar(&fields.Touch, "touch", "", "touch flag")
	fs.StringVar(&fields.OS, "os", "", "operating system")
	fs.StringVar(&fields.Status, "status", model.StatusInStock, "status")
	fs.StringVar(&fields.Price, "price", "", "price")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	if err := svc.ChangeCategory(*category); err != nil {
		return err
	}

	item, err := svc.AddProduct(fields)
	if err != nil {
		return err
	}
	fmt.Printf("Added %s (code %s) to %s\n", item.Serial, item.Code, *category)
	return nil
}

func cmdDelete(args []string) error {
	fs, dataDir, logPath := commonFlags("delete")
	category := fs.String("category", model.Categories[0], "category to delete from")
	id := fs.String("id", "", "item ID")
	serial := fs.String("serial", "", "item serial (first match)")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	if err := svc.ChangeCategory(*category); err != nil {
		return err
	}

	ref, err := findVisible(svc, *id, *serial)
	if err != nil {
		return err
	}
	if err := svc.DeleteProduct(ref); err != nil {
		return err
	}
	fmt.Printf("Archived %s (code %s)\n", ref.Serial, ref.Code)
	return nil
}

func cmdRestore(args []string) error {
	fs, dataDir, logPath := commonFlags("restore")
	category := fs.String("category", model.Categories[0], "category to restore into")
	id := fs.String("id", "", "item ID")
	serial := fs.String("serial", "", "item serial (first match)")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	if err := svc.ChangeCategory(*category); err != nil {
		return err
	}

	ref, err := findArchived(svc, *id, *serial)
	if err != nil {
		return err
	}
	item, err := svc.RestoreProduct(ref)
	if err != nil {
		return err
	}
	fmt.Printf("Restored %s (code %s) into %s\n", item.Serial, item.Code, *category)
	return nil
}

func cmdArchive(args []string) error {
	fs, dataDir, logPath := commonFlags("archive")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	printItems(svc.Archived())
	return nil
}

func cmdSearch(args []string) error {
	fs, dataDir, logPath := commonFlags("search")
	category := fs.String("category", model.Categories[0], "category to search")
	term := fs.String("term", "", "search term")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	if err := svc.ChangeCategory(*category); err != nil {
		return err
	}

	matches, err := svc.Search(*term)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	for _, m := range matches {
		mark := " "
		if m.Matched {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", mark, m.Item.Ordinal, joinFields(m.Item))
	}
	w.Flush()
	return nil
}

func cmdTotal(args []string) error {
	fs, dataDir, logPath := commonFlags("total")
	category := fs.String("category", "", "category (default: all)")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}

	categories := model.Categories
	if *category != "" {
		categories = []string{*category}
	}
	for _, c := range categories {
		total, err := svc.ComputeTotal(c)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", c, total.StringFixed(2))
	}
	return nil
}

func cmdLabel(args []string) error {
	fs, dataDir, logPath := commonFlags("label")
	category := fs.String("category", model.Categories[0], "item's category")
	id := fs.String("id", "", "item ID")
	serial := fs.String("serial", "", "item serial (first match)")
	out := fs.String("out", "label.png", "output PNG path")
	fs.Parse(args)

	svc, err := newService(*dataDir, *logPath)
	if err != nil {
		return err
	}
	if err := svc.ChangeCategory(*category); err != nil {
		return err
	}

	item, err := findVisible(svc, *id, *serial)
	if err != nil {
		return err
	}

	fmt.Print(label.Text(item))
	if err := label.SavePNG(*out, item); err != nil {
		return err
	}
	fmt.Printf("Label written to %s\n", *out)
	return nil
}

func commonFlags(name string) (fs *flag.FlagSet, dataDir, logPath *string) {
	fs = flag.NewFlagSet(name, flag.ExitOnError)
	dataDir = fs.String("data", ".", "data directory")
	logPath = fs.String("log", "", "log file path")
	return fs, dataDir, logPath
}

func findVisible(svc *inventory.Service, id, serial string) (model.Item, error) {
	items, err := svc.Visible()
	if err != nil {
		return model.Item{}, err
	}
	return pick(items, id, serial)
}

func findArchived(svc *inventory.Service, id, serial string) (model.Item, error) {
	return pick(svc.Archived(), id, serial)
}

func pick(items []model.Item, id, serial string) (model.Item, error) {
	if id == "" && serial == "" {
		return model.Item{}, fmt.Errorf("one of -id or -serial is required")
	}
	for _, it := range items {
		if id != "" && it.ID == id {
			return it, nil
		}
		if id == "" && it.Serial == serial {
			return it, nil
		}
	}
	return model.Item{}, ledger.ErrNotFound
}
