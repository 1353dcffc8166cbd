package cli

import (
	"fmt"
	"io"
	"strings"

	"cardlist/internal/format"

	"github.com/spf13/cobra"
)

type itemRow struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

type itemRows []itemRow

func (r itemRows) RenderText(w io.Writer) error {
	for _, it := range r {
		if _, err := fmt.Fprintf(w, "%d\t%s\n", it.Index, it.Text); err != nil {
			return err
		}
	}
	return nil
}

func (r itemRow) RenderText(w io.Writer) error {
	return itemRows{r}.RenderText(w)
}

func rowsOf(items []string) itemRows {
	out := make(itemRows, 0, len(items))
	for i, s := range items {
		out = append(out, itemRow{Index: i, Text: s})
	}
	return out
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all cards in order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := openList(app)
			return writeOut(cmd, app, format.Envelope{
				Data: rowsOf(list.Items()),
				Meta: map[string]any{
					"count":    list.Len(),
					"location": app.backend.Location(),
				},
			})
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Append a card (words are joined with spaces; empty text is allowed)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := openList(app)
			text := strings.Join(args, " ")
			list.Add(text)
			if err := app.backend.Err(); err != nil {
				return writeErr(cmd, fmt.Errorf("save: %w", err))
			}
			return writeOut(cmd, app, format.Envelope{Data: itemRow{Index: list.Len() - 1, Text: text}})
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <index>",
		Short: "Show one card by its 0-based index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := openList(app)
			ix, err := parseIndex(args[0], list.Len())
			if err != nil {
				return writeErr(cmd, err)
			}
			text, _ := list.At(ix)
			return writeOut(cmd, app, format.Envelope{Data: itemRow{Index: ix, Text: text}})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <text...>",
		Short: "Replace the text of a card",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := openList(app)
			ix, err := parseIndex(args[0], list.Len())
			if err != nil {
				return writeErr(cmd, err)
			}
			before, _ := list.At(ix)
			text := strings.Join(args[1:], " ")

			list.RequestEdit(ix)
			list.ResolveEdit(&text)
			if err := app.backend.Err(); err != nil {
				return writeErr(cmd, fmt.Errorf("save: %w", err))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: itemRow{Index: ix, Text: text},
				Meta: map[string]any{"previous": before},
			})
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <index>",
		Aliases: []string{"rm"},
		Short:   "Delete a card (no confirmation prompt)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := openList(app)
			ix, err := parseIndex(args[0], list.Len())
			if err != nil {
				return writeErr(cmd, err)
			}
			text, _ := list.At(ix)

			list.RequestDelete(ix)
			list.ResolveDelete(true)
			if err := app.backend.Err(); err != nil {
				return writeErr(cmd, fmt.Errorf("save: %w", err))
			}
			return writeOut(cmd, app, format.Envelope{
				Data: itemRow{Index: ix, Text: text},
				Meta: map[string]any{"deleted": true, "count": list.Len()},
			})
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, format.Envelope{
				Data: app.cfg,
				Meta: map[string]any{"location": app.backend.Location()},
			})
		},
	}
}
