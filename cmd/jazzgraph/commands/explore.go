package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/teranos/jazzgraph/display"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/graph"
	grapherr "github.com/teranos/jazzgraph/graph/error"
)

// ExploreCmd runs an interactive session over one explorer
var ExploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactive session over the influence graph",
	Long: `Start a line-oriented session. Filters, the shown path and the selection
persist between commands; "show" prints the current graph.

Commands:
  filter [focus=ID] [depth=N] [era=ID] [genre="NAME"]   replace all filters
  focus ID                                              center on an artist
  path FROM TO                                          find and mark an influence chain
  select [ID]                                           highlight an artist (no id clears)
  clear focus|path|all
  layout layered|eras [TB|BT|LR|RL]
  search QUERY...
  network ID
  show
  state
  quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newSession(cmd)
		if err != nil {
			return err
		}
		return runREPL(cmd.Context(), e, os.Stdin, os.Stdout, display.ShouldOutputJSON(cmd))
	},
}

// repl executes explore commands against one session
type repl struct {
	e    *explorer.Explorer
	out  io.Writer
	json bool
}

// runREPL reads commands from in until EOF or quit.
// Command errors are printed and the session continues.
func runREPL(ctx context.Context, e *explorer.Explorer, in io.Reader, out io.Writer, jsonOut bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	r := &repl{e: e, out: out, json: jsonOut}
	scanner := bufio.NewScanner(in)

	fmt.Fprint(out, "jazz> ")
	for scanner.Scan() {
		quit, err := r.exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %s\n", errorText(err))
		}
		if quit {
			return nil
		}
		fmt.Fprint(out, "jazz> ")
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func errorText(err error) string {
	if ge, ok := grapherr.As(err); ok {
		return ge.ToUIMessage()
	}
	return err.Error()
}

// exec runs one line. It reports true when the session should end.
func (r *repl) exec(ctx context.Context, line string) (bool, error) {
	words, err := shellquote.Split(line)
	if err != nil {
		return false, fmt.Errorf("cannot parse line: %w", err)
	}
	if len(words) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(words[0]), words[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil

	case "filter":
		f, err := graph.ParseQuery(shellquote.Join(args...))
		if err != nil {
			return false, err
		}
		if f.HasFocus() && !hasKey(args, "depth") {
			f.Depth = r.e.Options().DefaultDepth
		}
		if err := r.e.SetFilter(f); err != nil {
			return false, err
		}
		return false, r.show(ctx)

	case "focus":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: focus ID")
		}
		if err := r.e.Focus(args[0]); err != nil {
			return false, err
		}
		return false, r.show(ctx)

	case "path":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: path FROM TO")
		}
		res, err := r.e.FindPath(args[0], args[1])
		if err != nil {
			return false, err
		}
		if r.json {
			return false, r.writeJSON(res)
		}
		return false, display.Path(r.out, res)

	case "select":
		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		if err := r.e.Select(id); err != nil {
			return false, err
		}
		return false, r.show(ctx)

	case "clear":
		what := "all"
		if len(args) > 0 {
			what = strings.ToLower(args[0])
		}
		switch what {
		case "focus":
			r.e.ClearFocus()
		case "path":
			r.e.ClearPath()
		case "all":
			if err := r.e.SetFilter(graph.Filter{}); err != nil {
				return false, err
			}
			r.e.ClearPath()
			_ = r.e.Select("")
		default:
			return false, fmt.Errorf("usage: clear focus|path|all")
		}
		return false, r.show(ctx)

	case "layout":
		if len(args) < 1 || len(args) > 2 {
			return false, fmt.Errorf("usage: layout layered|eras [TB|BT|LR|RL]")
		}
		dir := ""
		if len(args) == 2 {
			dir = args[1]
		}
		if err := r.e.SetLayout(args[0], dir); err != nil {
			return false, err
		}
		return false, r.show(ctx)

	case "search":
		if len(args) == 0 {
			return false, fmt.Errorf("usage: search QUERY")
		}
		results := r.e.Search(strings.Join(args, " "), 0)
		if r.json {
			return false, r.writeJSON(results)
		}
		if len(results) == 0 {
			_, err := fmt.Fprintln(r.out, "no matches")
			return false, err
		}
		return false, display.ArtistTable(r.out, pointers(results))

	case "network":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: network ID")
		}
		mg, err := r.e.Network(args[0])
		if err != nil {
			return false, err
		}
		if r.json {
			return false, r.writeJSON(mg)
		}
		return false, display.Network(r.out, mg)

	case "show":
		return false, r.show(ctx)

	case "state":
		st := r.e.State()
		if r.json {
			return false, r.writeJSON(st)
		}
		_, err := fmt.Fprintf(r.out, "focus=%q depth=%s era=%q genre=%q layout=%s selected=%q path=%s\n",
			st.Filter.FocusArtistID, strconv.Itoa(st.Filter.Depth), st.Filter.Era, st.Filter.Genre,
			st.Layout, st.Selected, strings.Join(st.Path, ">"))
		return false, err

	case "help", "?":
		_, err := fmt.Fprintln(r.out, "commands: filter focus path select clear layout search network show state quit")
		return false, err
	}
	return false, fmt.Errorf("unknown command %q (try help)", cmd)
}

func (r *repl) show(ctx context.Context) error {
	g, err := r.e.View(ctx)
	if err != nil {
		return err
	}
	if r.json {
		return r.writeJSON(g)
	}
	return display.GraphSummary(r.out, g)
}

func (r *repl) writeJSON(v interface{}) error {
	data, err := display.MarshalJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.out, string(data))
	return err
}

// hasKey reports whether any key=value word names key
func hasKey(words []string, key string) bool {
	for _, w := range words {
		if k, _, ok := strings.Cut(w, "="); ok && strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
