package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autorig/internal/domain"
)

func spineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spine",
		Short: "Build and resize the spine chain",
		Long: `Build and resize the spine chain.

The spine runs between the placed Pelvis and Neck joints, spaced evenly
with neither endpoint duplicated. Changing the count while the chain is
built rebuilds it in place.`,
	}
	cmd.AddCommand(spineCreateCmd(), spineDeleteCmd(), spineCountCmd(
		"add", "Add one spine joint", domain.SpineOpAdd,
	), spineCountCmd(
		"remove", "Remove one spine joint", domain.SpineOpRemove,
	), spineCountCmd(
		"reset", "Reset the spine to the default count", domain.SpineOpReset,
	), spineShowCountCmd())
	return cmd
}

func spineCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Build the spine between the Pelvis and Neck joints",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				objs []domain.SceneObject
				err  error
			)
			if remote() {
				objs, err = wire.Host.BuildSpine(cmd.Context())
			} else {
				objs, err = wire.Spine.Create()
			}
			if err != nil {
				return err
			}
			for _, obj := range objs {
				fmt.Printf("%s %s placed at %s\n", iconPlaced, obj.Name, obj.Position)
			}
			fmt.Printf("Spine built with %d joints\n", len(objs))
			return nil
		},
	}
}

func spineDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the spine joints, keeping the configured count",
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote() {
				if err := wire.Host.DeleteSpine(cmd.Context()); err != nil {
					return err
				}
			} else if err := wire.Spine.Delete(); err != nil {
				return err
			}
			fmt.Println("Spine removed")
			return nil
		},
	}
}

// spineCountCmd builds the add/remove/reset commands, which differ only in
// the operation they apply.
func spineCountCmd(use, short, op string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				n   int
				err error
			)
			if remote() {
				n, err = wire.Host.ChangeSpineCount(cmd.Context(), op, 0)
			} else {
				switch op {
				case domain.SpineOpAdd:
					n, err = wire.Spine.Add()
				case domain.SpineOpRemove:
					n, err = wire.Spine.Remove()
				default:
					n, err = wire.Spine.Reset()
				}
			}
			if err != nil {
				return err
			}
			fmt.Printf("Spine count: %d\n", n)
			return nil
		},
	}
}

func spineShowCountCmd() *cobra.Command {
	var set int
	cmd := &cobra.Command{
		Use:   "count",
		Short: "Show or set the spine joint count",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				n   int
				err error
			)
			switch {
			case cmd.Flags().Changed("set") && remote():
				n, err = wire.Host.ChangeSpineCount(cmd.Context(), domain.SpineOpSet, set)
			case cmd.Flags().Changed("set"):
				n, err = wire.Spine.SetCount(set)
			case remote():
				var rep domain.StatusReport
				rep, err = wire.Host.Status(cmd.Context())
				n = rep.Spine.Count
			default:
				n, err = wire.Spine.Count()
			}
			if err != nil {
				return err
			}
			fmt.Printf("Spine count: %d\n", n)
			return nil
		},
	}
	cmd.Flags().IntVar(&set, "set", 0, "set the count directly")
	return cmd
}
