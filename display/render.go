package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/teranos/jazzgraph/catalog"
	"github.com/teranos/jazzgraph/explorer"
	"github.com/teranos/jazzgraph/graph"
)

var (
	arrowStyle  = pterm.NewStyle(pterm.FgYellow)
	idStyle     = pterm.NewStyle(pterm.FgGray)
	headerStyle = pterm.NewStyle(pterm.FgCyan, pterm.Bold)
)

// ArtistTable renders artists with id, primary era, instruments and relation count
func ArtistTable(w io.Writer, artists []*catalog.Artist) error {
	data := pterm.TableData{{"Artist", "ID", "Era", "Instruments", "Relations"}}
	for _, a := range artists {
		data = append(data, []string{
			a.Name,
			a.ID,
			a.PrimaryEra(),
			strings.Join(a.Instruments, ", "),
			fmt.Sprint(a.InfluenceCount()),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// Path renders an influence chain as "A -> B -> C"
func Path(w io.Writer, res explorer.PathResult) error {
	if !res.Found {
		_, err := fmt.Fprintf(w, "No influence path from %s to %s\n", res.From, res.To)
		return err
	}

	names := make([]string, len(res.Artists))
	for i, a := range res.Artists {
		names[i] = a.Name
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n",
		headerStyle.Sprintf("%d degree(s) of separation", res.Degrees),
		strings.Join(names, arrowStyle.Sprint(" -> ")),
	)
	return err
}

// Network renders the mini influence network as two lists around the artist
func Network(w io.Writer, mg *graph.MiniGraph) error {
	var center string
	var influencers, influenced []string
	for _, n := range mg.Nodes {
		label := n.Artist.Name + " " + idStyle.Sprint("("+n.ID+")")
		switch n.Role {
		case graph.RoleCenter:
			center = label
		case graph.RoleInfluencer:
			influencers = append(influencers, label)
		case graph.RoleInfluenced:
			influenced = append(influenced, label)
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Sprint(center))
	if !mg.HasConnections {
		fmt.Fprintln(&b, "  no known influence connections")
	}
	writeSide(&b, "Influenced by", influencers, mg.HiddenInfluencers)
	writeSide(&b, "Influenced", influenced, mg.HiddenInfluenced)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeSide(b *strings.Builder, title string, labels []string, hidden int) {
	if len(labels) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s:\n", title)
	for _, l := range labels {
		fmt.Fprintf(b, "    - %s\n", l)
	}
	if hidden > 0 {
		fmt.Fprintf(b, "    (+%d more)\n", hidden)
	}
}

// GraphSummary renders node and edge counts, the active filter and each node's position
func GraphSummary(w io.Writer, g *graph.Graph) error {
	f := g.Meta.Filter
	var filters []string
	if f.HasFocus() {
		filters = append(filters, fmt.Sprintf("focus=%s depth=%d", f.FocusArtistID, f.Depth))
	}
	if f.Era != "" {
		filters = append(filters, "era="+f.Era)
	}
	if f.Genre != "" {
		filters = append(filters, "genre="+f.Genre)
	}
	if len(filters) == 0 {
		filters = append(filters, "none")
	}

	fmt.Fprintf(w, "%s  %d nodes, %d edges, layout %s, filters: %s\n",
		headerStyle.Sprint("Influence graph"),
		len(g.Nodes), len(g.Edges), g.Meta.Layout, strings.Join(filters, " "))
	if msg, ok := g.Meta.Config["error"]; ok {
		fmt.Fprintf(w, "error: %s\n", msg)
	}
	if len(g.Nodes) == 0 {
		return nil
	}

	data := pterm.TableData{{"Artist", "Era", "Size", "X", "Y", "Flags"}}
	for _, n := range g.Nodes {
		era := ""
		if n.Era != nil {
			era = n.Era.Name
		}
		data = append(data, []string{
			n.Artist.Name,
			era,
			string(n.Size),
			fmt.Sprintf("%.0f", n.Position.X),
			fmt.Sprintf("%.0f", n.Position.Y),
			nodeFlags(n),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func nodeFlags(n graph.Node) string {
	var flags []string
	if n.Selected {
		flags = append(flags, "selected")
	}
	if n.Highlighted {
		flags = append(flags, "highlighted")
	}
	if n.OnPath {
		flags = append(flags, "path")
	}
	if n.Dimmed {
		flags = append(flags, "dimmed")
	}
	return strings.Join(flags, ",")
}

// AlbumTable renders albums with year, label and genres
func AlbumTable(w io.Writer, albums []catalog.Album) error {
	data := pterm.TableData{{"Album", "Artist", "Year", "Label", "Genres"}}
	for _, al := range albums {
		data = append(data, []string{
			al.Title,
			al.Artist,
			fmt.Sprint(al.Year),
			al.Label,
			strings.Join(al.Genres, ", "),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
