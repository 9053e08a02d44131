package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autorig/internal/domain"
)

// Indicator icons, matching the in-host rig panel.
const (
	iconPlaced   = "✅"
	iconUnplaced = "🟧"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-slot indicator lights and spine state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				rep domain.StatusReport
				err error
			)
			if remote() {
				rep, err = wire.Host.Status(cmd.Context())
			} else {
				rep, err = wire.Joints.Status()
			}
			if err != nil {
				return err
			}

			fmt.Printf("Mesh: %s (%d vertices, fingerprint %s)\n",
				rep.Scene.MeshName, rep.Scene.VertexCount, rep.Scene.MeshFingerprint)
			if rep.Spine.Built {
				fmt.Printf("Spine: %s built, %d joints\n", iconPlaced, rep.Spine.Count)
			} else {
				fmt.Printf("Spine: %s not built, %d joints configured\n", iconUnplaced, rep.Spine.Count)
			}

			section := ""
			for _, row := range rep.Slots {
				if row.Section != section {
					section = row.Section
					fmt.Printf("\n%s:\n", section)
				}
				icon := iconUnplaced
				if row.Indicator {
					icon = iconPlaced
				}
				line := fmt.Sprintf("  %s %-22s", icon, row.Slot)
				if row.Position != nil {
					line += " " + row.Position.String()
				}
				if row.Mirrored {
					line += "  (mirrored)"
				}
				fmt.Println(line)
			}

			if !remote() {
				stale, err := wire.Selection.Stale()
				if err != nil {
					return err
				}
				if stale {
					fmt.Println("\nwarning: saved selection predates the current mesh")
				}
			}
			return nil
		},
	}
}
