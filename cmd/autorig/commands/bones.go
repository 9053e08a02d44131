package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// bones: parent placed joints per the template pairs and the spine chain.
func bonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bones",
		Short: "Parent placed joints into a skeleton",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				linked int
				err    error
			)
			if remote() {
				linked, err = wire.Host.BuildBones(cmd.Context())
			} else {
				linked, err = wire.Skeleton.BuildBones()
			}
			if err != nil {
				return err
			}
			fmt.Printf("Linked %d bones\n", linked)
			return nil
		},
	}
}
