package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-runewidth"

	beancount "github.com/jcornaz/beancount-parser-sub000"
	"github.com/jcornaz/beancount-parser-sub000/ast"
	"github.com/jcornaz/beancount-parser-sub000/number"
	"github.com/jcornaz/beancount-parser-sub000/output"
	"github.com/jcornaz/beancount-parser-sub000/telemetry"
)

type CheckCmd struct {
	File    []byte `help:"Ledger input filename." arg:"" type:"filecontent"`
	Timings bool   `help:"Report phase timings to stderr."`
}

func (cmd *CheckCmd) Run() error {
	collector := telemetry.NewTimingCollector()
	timer := collector.Start("Check")

	parseTimer := timer.Child("Parse")
	file, err := beancount.Parse(cmd.File)
	parseTimer.End()
	timer.End()

	if cmd.Timings {
		var styles *output.Styles
		if output.IsTerminal(os.Stderr) {
			styles = output.NewStyles(os.Stderr)
		}
		collector.Report(os.Stderr, styles)
	}

	if err != nil {
		return err
	}

	styles := output.NewStyles(os.Stdout)
	fmt.Printf("%s %d directives\n", styles.Success("✓"), len(file.Directives))

	return nil
}

type DumpCmd struct {
	File  []byte `help:"Ledger input filename." arg:"" type:"filecontent"`
	Sort  bool   `help:"Sort directives by date before dumping."`
	Table bool   `help:"Print one line per directive instead of the full tree."`
}

func (cmd *DumpCmd) Run() error {
	file, err := beancount.Parse(cmd.File)
	if err != nil {
		return err
	}

	if cmd.Sort {
		ast.SortByDate(file.Directives)
	}

	if cmd.Table {
		dumpTable(os.Stdout, file)
		return nil
	}

	repr.Println(file)

	return nil
}

// dumpTable prints one line per directive: date, kind and a short
// summary, aligned by display width and clipped to the terminal.
func dumpTable(w *os.File, file *ast.File[number.Decimal]) {
	styles := output.NewStyles(w)
	width := output.Width(w, 100)

	kindWidth := 0
	for _, dir := range file.Directives {
		if n := runewidth.StringWidth(dir.Kind()); n > kindWidth {
			kindWidth = n
		}
	}

	const dateWidth = 10
	avail := width - dateWidth - kindWidth - 4

	for _, dir := range file.Directives {
		date := strings.Repeat(" ", dateWidth)
		if !dir.Date.IsZero() {
			date = dir.Date.String()
		}

		desc := describe(dir)
		if avail > 0 {
			desc = runewidth.Truncate(desc, avail, "…")
		}

		_, _ = fmt.Fprintf(w, "%s  %s  %s\n",
			styles.Dim(date),
			styles.Keyword(runewidth.FillRight(dir.Kind(), kindWidth)),
			desc)
	}
}

// describe summarizes a directive's payload in a single unstyled string.
func describe(dir *ast.Directive[number.Decimal]) string {
	switch {
	case dir.Transaction != nil:
		txn := dir.Transaction
		if txn.Payee != "" {
			return fmt.Sprintf("%s | %s", txn.Payee, txn.Narration)
		}
		return txn.Narration

	case dir.Open != nil:
		if len(dir.Open.Currencies) == 0 {
			return string(dir.Open.Account)
		}
		currencies := make([]string, 0, len(dir.Open.Currencies))
		for currency := range dir.Open.Currencies {
			currencies = append(currencies, string(currency))
		}
		return fmt.Sprintf("%s %s", dir.Open.Account, strings.Join(currencies, ", "))

	case dir.Close != nil:
		return string(dir.Close.Account)

	case dir.Balance != nil:
		return fmt.Sprintf("%s %s %s",
			dir.Balance.Account, dir.Balance.Amount.Value, dir.Balance.Amount.Currency)

	case dir.Pad != nil:
		return fmt.Sprintf("%s %s", dir.Pad.Account, dir.Pad.Source)

	case dir.Price != nil:
		return fmt.Sprintf("%s %s %s",
			dir.Price.Currency, dir.Price.Amount.Value, dir.Price.Amount.Currency)

	case dir.Commodity != nil:
		return string(dir.Commodity.Currency)

	case dir.Event != nil:
		return fmt.Sprintf("%q %q", dir.Event.Name, dir.Event.Value)

	case dir.Option != nil:
		return fmt.Sprintf("%q %q", dir.Option.Name, dir.Option.Value)

	case dir.Include != nil:
		return fmt.Sprintf("%q", dir.Include.Path)

	default:
		return ""
	}
}

type WatchCmd struct {
	File string `help:"Ledger file to watch." arg:"" type:"existingfile"`
}

func (cmd *WatchCmd) Run() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path, err := filepath.Abs(cmd.File)
	if err != nil {
		return err
	}

	// Watch the directory rather than the file: editors often replace the
	// file on save, which silently drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	styles := output.NewStyles(os.Stdout)
	checkFile(path, styles)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			checkFile(path, styles)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func checkFile(path string, styles *output.Styles) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("%s %s: %v\n", styles.Error("✗"), styles.FilePath(path), err)
		return
	}

	file, err := beancount.Parse(src)
	if err != nil {
		fmt.Printf("%s %s: %v\n", styles.Error("✗"), styles.FilePath(path), err)
		return
	}

	fmt.Printf("%s %s: %d directives\n",
		styles.Success("✓"), styles.FilePath(path), len(file.Directives))
}
