package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autorig/internal/domain"
)

func jointCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "joint",
		Short: "Place, mirror and delete template-slot joints",
	}
	cmd.AddCommand(jointCreateCmd(), jointDeleteCmd(), jointMirrorCmd())
	return cmd
}

// joint create: place a slot joint at the centroid of the current selection.
func jointCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <slot>",
		Short: "Place a joint at the centroid of the selected vertices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := domain.SlotName(args[0])
			var (
				obj domain.SceneObject
				err error
			)
			if remote() {
				obj, err = wire.Host.CreateJoint(cmd.Context(), slot)
			} else {
				obj, err = wire.Joints.Create(slot)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %s placed at %s\n", iconPlaced, obj.Name, obj.Position)
			return nil
		},
	}
}

func jointDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slot>",
		Short: "Delete a placed joint and its mirrored twin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot := domain.SlotName(args[0])
			if remote() {
				if err := wire.Host.DeleteJoint(cmd.Context(), slot); err != nil {
					return err
				}
			} else if err := wire.Joints.Delete(slot); err != nil {
				return err
			}
			fmt.Printf("%s %s removed\n", iconUnplaced, slot)
			return nil
		},
	}
}

func jointMirrorCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "mirror [slot]",
		Short: "Create a mirrored twin across the dominant axis",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				var (
					twins []domain.SceneObject
					err   error
				)
				if remote() {
					twins, err = wire.Host.MirrorAllJoints(cmd.Context())
				} else {
					twins, err = wire.Joints.MirrorAll()
				}
				if err != nil {
					return err
				}
				if len(twins) == 0 {
					fmt.Println("Nothing to mirror")
					return nil
				}
				for _, obj := range twins {
					fmt.Printf("%s %s placed at %s\n", iconPlaced, obj.Name, obj.Position)
				}
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("give a slot name or --all")
			}
			slot := domain.SlotName(args[0])
			var (
				obj domain.SceneObject
				err error
			)
			if remote() {
				obj, err = wire.Host.MirrorJoint(cmd.Context(), slot)
			} else {
				obj, err = wire.Joints.Mirror(slot)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %s placed at %s\n", iconPlaced, obj.Name, obj.Position)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "mirror every placed joint on a mirrorable slot")
	return cmd
}
