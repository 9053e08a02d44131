package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"autorig/internal/domain"
)

func selectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Author the vertex selection joints are placed from",
	}
	cmd.AddCommand(selectSetCmd(), selectAddCmd(), selectGroupCmd(), selectClearCmd(), selectShowCmd())
	return cmd
}

func selectSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <index|lo-hi> ...",
		Short: "Replace the selection with the given vertex indices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndices(args)
			if err != nil {
				return err
			}
			var sel domain.Selection
			if remote() {
				sel, err = wire.Host.SetSelection(cmd.Context(), idx, "", false)
			} else {
				sel, err = wire.Selection.Set(idx)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%d vertices selected\n", len(sel.Indices))
			return nil
		},
	}
}

func selectAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <index|lo-hi> ...",
		Short: "Add vertex indices to the selection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndices(args)
			if err != nil {
				return err
			}
			var sel domain.Selection
			if remote() {
				sel, err = wire.Host.SetSelection(cmd.Context(), idx, "", true)
			} else {
				sel, err = wire.Selection.Add(idx)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%d vertices selected\n", len(sel.Indices))
			return nil
		},
	}
}

func selectGroupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "group <name>",
		Short: "Select every vertex in a named OBJ group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				sel domain.Selection
				err error
			)
			if remote() {
				sel, err = wire.Host.SetSelection(cmd.Context(), nil, args[0], false)
			} else {
				sel, err = wire.Selection.SelectGroup(args[0])
			}
			if err != nil {
				return err
			}
			fmt.Printf("%d vertices selected from group %q\n", len(sel.Indices), args[0])
			return nil
		},
	}
}

func selectClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the selection",
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote() {
				if err := wire.Host.ClearSelection(cmd.Context()); err != nil {
					return err
				}
			} else if err := wire.Selection.Clear(); err != nil {
				return err
			}
			fmt.Println("Selection cleared")
			return nil
		},
	}
}

func selectShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the selected vertices and their positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				idx []int
				pts []domain.Vector3
				err error
			)
			if remote() {
				idx, pts, err = wire.Host.CurrentSelection(cmd.Context())
			} else {
				idx, pts, err = wire.Selection.Current()
			}
			if err != nil {
				return err
			}

			if len(idx) == 0 {
				fmt.Println("Nothing selected")
				return nil
			}
			for i, n := range idx {
				fmt.Printf("%6d  %s\n", n, pts[i])
			}

			if !remote() {
				stale, err := wire.Selection.Stale()
				if err != nil {
					return err
				}
				if stale {
					fmt.Println("warning: saved selection predates the current mesh")
				}
			}
			return nil
		},
	}
}

// parseIndices turns CLI args into vertex indices. Each arg is a single
// index or an inclusive lo-hi range.
func parseIndices(args []string) ([]int, error) {
	var out []int
	for _, a := range args {
		if lo, hi, ok := strings.Cut(a, "-"); ok {
			start, err := strconv.Atoi(lo)
			if err != nil {
				return nil, fmt.Errorf("bad index range %q", a)
			}
			end, err := strconv.Atoi(hi)
			if err != nil || end < start {
				return nil, fmt.Errorf("bad index range %q", a)
			}
			for i := start; i <= end; i++ {
				out = append(out, i)
			}
			continue
		}
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("bad vertex index %q", a)
		}
		out = append(out, n)
	}
	return out, nil
}
