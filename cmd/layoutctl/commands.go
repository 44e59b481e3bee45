package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/notify"
	"storefront/internal/persist"
	"storefront/internal/render"
	"storefront/internal/storefront"
)

const defaultClient = "local"

// app carries the global flags and the hub opened for one invocation.
type app struct {
	out    io.Writer
	errOut io.Writer

	file    string
	client  string
	verbose bool

	hub *storefront.Hub
}

func defaultStateFile() string {
	dir := os.Getenv("STATE_DIR")
	if dir == "" {
		dir = "data"
	}
	return filepath.Join(dir, "state.json")
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "layoutctl",
		Short:         "Inspect and edit storefront layouts in a state file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.file, "file", "f", defaultStateFile(), "state file written by the file backend")
	root.PersistentFlags().StringVarP(&a.client, "client", "c", defaultClient, "client whose layouts to use")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "print toasts and debug logs")

	root.AddCommand(
		a.listCmd(),
		a.showCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.namedCmd(),
		a.renderCmd(),
	)
	return root
}

// open points the logger at errOut and opens the state file.
func (a *app) open() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level})))

	if !storefront.ValidClientID(a.client) {
		return fmt.Errorf("invalid client id %q", a.client)
	}
	backend, err := persist.OpenFileBackend(a.file)
	if err != nil {
		return err
	}
	var notifier notify.Notifier = discard{}
	if a.verbose {
		notifier = printer{w: a.errOut}
	}
	a.hub = storefront.NewHub(persist.NewAdapter(backend, storefront.Namespace), catalog.Default(), notifier)
	return nil
}

// do runs fn against the selected surface of the selected client.
func (a *app) do(ctx context.Context, name string, fn func(*storefront.State, *storefront.Surface) error) error {
	surface, err := storefront.ParseSurface(name)
	if err != nil {
		return fmt.Errorf("unknown surface %q (want landing or product)", name)
	}
	return a.hub.Do(ctx, a.client, func(st *storefront.State) error {
		s, err := st.Surface(surface)
		if err != nil {
			return err
		}
		return fn(st, s)
	})
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the clients stored in the state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend, err := persist.OpenFileBackend(a.file)
			if err != nil {
				return err
			}
			keys, err := persist.NewAdapter(backend, storefront.Namespace).Keys(cmd.Context())
			if err != nil {
				return err
			}
			var clients []string
			for _, k := range keys {
				id, _, _ := strings.Cut(k, ":")
				if !slices.Contains(clients, id) {
					clients = append(clients, id)
				}
			}
			slices.Sort(clients)
			for _, id := range clients {
				fmt.Fprintln(a.out, id)
			}
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <surface>",
		Short: "Print the elements of a surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd.Context(), args[0], func(_ *storefront.State, s *storefront.Surface) error {
				tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintf(tw, "%s (%s)\n", s.Name(), s.Mode())
				fmt.Fprintln(tw, "ORDER\tID\tTYPE\tSIZE\tSUMMARY")
				for _, el := range s.Elements() {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", el.Order, el.ID, el.Type(), el.Size, summary(el))
				}
				return tw.Flush()
			})
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <surface> <name>",
		Short: "Write a named layout as JSON to stdout",
		Long:  "Write a named layout as JSON to stdout. The layout is matched by id first, then by name.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd.Context(), args[0], func(_ *storefront.State, s *storefront.Surface) error {
				l, ok := findNamed(s.Named(), args[1])
				if !ok {
					return &models.NotFoundError{Kind: "layout", ID: args[1]}
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(l)
			})
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "import <surface> <file>",
		Short: "Replace a surface with a layout file and save it as a new named layout",
		Long:  "Replace a surface with a layout file and save it as a new named layout. Use - to read from stdin.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readLayout(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			if name == "" {
				name = doc.Name
			}
			if strings.TrimSpace(name) == "" {
				name = "Imported layout"
			}
			return a.do(cmd.Context(), args[0], func(_ *storefront.State, s *storefront.Surface) error {
				if err := s.Import(cmd.Context(), doc.Elements); err != nil {
					return err
				}
				saved, err := s.SaveAsNamed(cmd.Context(), name)
				if err != nil {
					return err
				}
				if _, err := s.Save(cmd.Context(), ""); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "imported %d elements as %q (%s)\n", len(saved.Elements), saved.Name, saved.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "layout name (defaults to the name in the file)")
	return cmd
}

func (a *app) namedCmd() *cobra.Command {
	named := &cobra.Command{
		Use:   "named",
		Short: "Manage the named layouts of a surface",
	}
	named.AddCommand(&cobra.Command{
		Use:   "list <surface>",
		Short: "List named layouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd.Context(), args[0], func(_ *storefront.State, s *storefront.Surface) error {
				active, _ := s.ActiveNamed()
				tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tELEMENTS\tCREATED\t")
				for _, l := range s.Named() {
					mark := ""
					if l.ID == active.ID {
						mark = "*"
					}
					fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", l.ID, l.Name, len(l.Elements), l.CreatedAt.Format("2006-01-02 15:04"), mark)
				}
				return tw.Flush()
			})
		},
	})
	named.AddCommand(&cobra.Command{
		Use:   "delete <surface> <id|name>",
		Short: "Delete a named layout",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.do(cmd.Context(), args[0], func(_ *storefront.State, s *storefront.Surface) error {
				l, ok := findNamed(s.Named(), args[1])
				if !ok {
					return &models.NotFoundError{Kind: "layout", ID: args[1]}
				}
				if err := s.DeleteNamed(cmd.Context(), l.ID); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "deleted %q\n", l.Name)
				return nil
			})
		},
	})
	return named
}

func (a *app) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render <surface>",
		Short: "Render a surface to HTML on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := render.New(a.hub.Catalog())
			if err != nil {
				return err
			}
			return a.do(cmd.Context(), args[0], func(_ *storefront.State, s *storefront.Surface) error {
				html, err := renderer.Page(s.Elements())
				if err != nil {
					return err
				}
				_, err = io.WriteString(a.out, string(html)+"\n")
				return err
			})
		},
	}
}

// summary describes an element in one short line.
func summary(el models.LayoutElement) string {
	const maxLen = 40
	var text string
	switch b := el.Body.(type) {
	case models.HeroBody:
		text = b.Content
	case models.TextBody:
		text = b.Content
	case models.ImageBody:
		text = b.ImageURL
	default:
		if items := el.Items(); items != nil {
			text = fmt.Sprintf("%d items", len(items))
		}
	}
	text = strings.Join(strings.Fields(text), " ")
	if r := []rune(text); len(r) > maxLen {
		text = string(r[:maxLen-3]) + "..."
	}
	return text
}

// findNamed matches ref against layout ids, then names.
func findNamed(named []models.CustomLayout, ref string) (models.CustomLayout, bool) {
	for _, l := range named {
		if l.ID == ref {
			return l, true
		}
	}
	for _, l := range named {
		if strings.EqualFold(l.Name, ref) {
			return l, true
		}
	}
	return models.CustomLayout{}, false
}

func readLayout(stdin io.Reader, path string) (models.CustomLayout, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return models.CustomLayout{}, err
		}
		defer f.Close()
		r = f
	}
	var doc models.CustomLayout
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return models.CustomLayout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	return doc, nil
}

// printer writes toasts as plain lines.
type printer struct{ w io.Writer }

func (p printer) Notify(_ context.Context, t notify.Toast) {
	fmt.Fprintf(p.w, "%s: %s\n", t.Title, t.Description)
}

type discard struct{}

func (discard) Notify(context.Context, notify.Toast) {}
