package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/kailas-cloud/brewdex/internal/app"
	"github.com/kailas-cloud/brewdex/internal/domain/chart"
	"github.com/kailas-cloud/brewdex/internal/location"
	"github.com/kailas-cloud/brewdex/internal/version"
)

const helpText = `Commands:
  search <text>      set the search text (empty clears it)
  type <type|->      filter by brewery type (micro, regional, brewpub); - clears
  city <city|->      filter by city; - clears
  open <id|#row>     open a brewery's detail page by id, or by row (#3)
  back               return to the previous location
  chart [bar|pie]    switch the chart; no argument toggles
  go <location>      load a location, e.g. /?search=dog&city=Portland
  show               render the current location again
  help               print this help
  quit               exit
`

// repl drives a session from line-oriented input and prints the address bar
// and the screen after every command.
type repl struct {
	session *app.Session
	out     io.Writer

	// rows holds the ids of the last list screen shown, for "open #N".
	rows    []string
	loading atomic.Bool
}

func newREPL(out io.Writer) *repl {
	return &repl{out: out}
}

// observe prints a loading notice when a fetch starts.
func (r *repl) observe(st app.State) {
	if !st.Loading {
		r.loading.Store(false)
		return
	}
	if !r.loading.Swap(true) {
		_, _ = fmt.Fprintln(r.out, "Loading...")
	}
}

// once renders loc and returns.
func (r *repl) once(ctx context.Context, loc string) error {
	page, err := r.session.Navigate(ctx, loc)
	if err != nil {
		return fmt.Errorf("navigate to %q: %w", loc, err)
	}
	r.show(page)
	return nil
}

// run renders loc, then executes commands from in until quit, EOF or ctx is done.
func (r *repl) run(ctx context.Context, in io.Reader, loc string) error {
	_, _ = fmt.Fprintf(r.out, "%s. Type help for commands.\n", version.String())
	if err := r.once(ctx, loc); err != nil {
		return err
	}

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	for {
		r.prompt()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				return nil
			}
			quit, err := r.exec(ctx, line)
			if err != nil {
				_, _ = fmt.Fprintf(r.out, "Error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// exec runs one command line. It reports whether the user asked to quit.
func (r *repl) exec(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var (
		page app.Page
		err  error
	)
	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "search":
		page, err = r.session.SetQuery(ctx, arg)
	case "type":
		page, err = r.session.SetType(ctx, clearable(arg))
	case "city":
		page, err = r.session.SetCity(ctx, clearable(arg))
	case "open":
		if arg == "" {
			return false, errors.New("usage: open <id|#row>")
		}
		id, rerr := r.resolve(arg)
		if rerr != nil {
			return false, rerr
		}
		page, err = r.session.Open(ctx, id)
	case "back":
		page, err = r.session.Back(ctx)
		if errors.Is(err, app.ErrNoHistory) {
			_, _ = fmt.Fprintln(r.out, "Already at the first page.")
			return false, nil
		}
	case "chart":
		if arg == "" {
			page, err = r.session.ToggleChart(ctx)
			break
		}
		var k chart.Kind
		if k, err = chart.Parse(arg); err != nil {
			return false, err
		}
		page, err = r.session.SetChart(ctx, k)
	case "go":
		if arg == "" {
			return false, errors.New("usage: go <location>")
		}
		page, err = r.session.Navigate(ctx, arg)
	case "show":
		page, err = r.session.Render(ctx)
	case "help", "?":
		_, _ = fmt.Fprint(r.out, helpText)
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (type help)", cmd)
	}
	if err != nil {
		return false, err
	}

	r.show(page)
	return false, nil
}

func (r *repl) show(page app.Page) {
	_, _ = fmt.Fprintf(r.out, "\n[ %s ]\n\n%s", page.Location, page.Body)

	if path, _, err := location.Split(page.Location); err == nil && path == location.ListPath {
		r.rows = r.rows[:0]
		if listing, ok := r.session.Listing(); ok {
			for _, b := range listing.Rows {
				r.rows = append(r.rows, b.ID)
			}
		}
	}
}

func (r *repl) prompt() {
	_, _ = fmt.Fprint(r.out, "> ")
}

// resolve maps "#N" to the id on row N of the last list screen.
// Anything else, numeric ids included, is taken as an id.
func (r *repl) resolve(arg string) (string, error) {
	row, ok := strings.CutPrefix(arg, "#")
	if !ok {
		return arg, nil
	}
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 || n > len(r.rows) {
		return "", fmt.Errorf("no row %s on the last list (%d rows)", arg, len(r.rows))
	}
	return r.rows[n-1], nil
}

func clearable(arg string) string {
	if arg == "-" {
		return ""
	}
	return arg
}
