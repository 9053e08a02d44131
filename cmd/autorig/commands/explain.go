package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// explain: surface the template's placement guidance.
func explainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explain [slot]",
		Short: "Print placement guidance for a slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl := wire.Template

			if len(args) == 0 {
				fmt.Printf("Template %q defines %d slots:\n\n", tmpl.Name, len(tmpl.Slots))
				section := ""
				for _, s := range tmpl.Slots {
					if s.Section != section {
						section = s.Section
						fmt.Printf("%s:\n", section)
					}
					mark := " "
					if s.Mirror {
						mark = "M"
					}
					fmt.Printf("  %s %s\n", mark, s.Name)
				}
				fmt.Println("\nSlots marked M can be mirrored. Run 'autorig explain <slot>' for guidance.")
				return nil
			}

			def, ok := tmpl.FindSlot(args[0])
			if !ok {
				return fmt.Errorf("template %q has no slot %q", tmpl.Name, args[0])
			}
			fmt.Printf("%s (%s)\n", def.Name, def.Section)
			if def.Doc != "" {
				fmt.Printf("  %s\n", def.Doc)
			}
			if def.Mirror {
				fmt.Printf("  Place it on one side only; 'autorig joint mirror %s' makes the twin.\n", def.Name)
			}
			return nil
		},
	}
}
