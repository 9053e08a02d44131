package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autorig/internal/app"
	"autorig/internal/domain"
)

// init: create the .autorig state directory and a starter config.
func initCmd() *cobra.Command {
	var meshPath, templatePath string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the project state directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dot := wire.DotDirPath()
			ok, err := wire.Store.Exists()
			if err != nil {
				return err
			}
			if ok {
				return fmt.Errorf("project already initialised at %s", dot)
			}

			pc := app.ProjectConfig{Mesh: meshPath, Template: templatePath}
			if err := app.SaveProjectConfig(dot, pc); err != nil {
				return err
			}
			rig := domain.Rig{Spine: domain.SpineState{Count: domain.DefaultSpineCount}}
			if err := wire.Store.SaveRig(rig); err != nil {
				return err
			}

			fmt.Printf("Initialised %s\n", dot)
			if meshPath != "" {
				return loadMeshIntoScene(app.Resolve(wire.Dir, meshPath))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&meshPath, "mesh", "", "OBJ mesh to record in the config and load")
	cmd.Flags().StringVar(&templatePath, "template", "", "skeleton template YAML (default: built-in biped)")
	return cmd
}
