package presenter

import (
	"context"
	"fmt"
	"strings"

	"CryptoViewer/internal/recorder"
	"CryptoViewer/internal/render"
)

// Console maps text commands onto the Viewer and renders the result.
type Console struct {
	Viewer *Viewer
	Ctx    context.Context
}

// NewConsole creates a Console whose fetches run under ctx.
func NewConsole(ctx context.Context, v *Viewer) *Console {
	return &Console{Viewer: v, Ctx: ctx}
}

const consoleHelp = `Commands:
  list              show the (filtered) currency list
  search <text>     filter by name or symbol; "search" alone clears the filter
  select <id>       select a currency
  history [id]      load the price chart for id or the current selection
  refresh           fetch a fresh snapshot
  stats             show history-load outcomes from the journal
  help              show this message
`

// HandleCommand processes a single command line and returns the reply.
func (c *Console) HandleCommand(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "list", "ls":
		return render.FormatCatalog(c.Viewer.Home.Currencies())
	case "search", "find":
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
		return render.FormatCatalog(c.Viewer.Search(text))
	case "select":
		if len(args) != 1 {
			return "usage: select <id>\n"
		}
		cur := c.Viewer.SelectCurrency(args[0])
		return fmt.Sprintf("Selected %s (%s).\n", cur.Name, cur.ID)
	case "history", "chart":
		id := ""
		if len(args) > 0 {
			id = args[0]
		} else {
			id = c.Viewer.Selected()
		}
		if id == "" {
			return "usage: history <id> (or select a currency first)\n"
		}
		return render.FormatDetail(c.Viewer.LoadHistoryFor(c.Ctx, id))
	case "refresh", "reload":
		if err := c.Viewer.LoadCatalog(c.Ctx); err != nil {
			return fmt.Sprintf("Refresh failed: %v\n", err)
		}
		return render.FormatCatalog(c.Viewer.Home.Currencies())
	case "stats":
		counter, ok := c.Viewer.Home.Recorder.(recorder.OutcomeCounter)
		if !ok {
			return "Journal is disabled (set database.sqlite_path).\n"
		}
		counts, err := counter.CountOutcomes()
		if err != nil {
			return fmt.Sprintf("Stats failed: %v\n", err)
		}
		return render.FormatOutcomes(counts)
	default:
		return consoleHelp
	}
}
