package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"autorig/internal/app"
	"autorig/internal/domain"
	"autorig/internal/mesh"
)

func sceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Load an OBJ mesh and inspect the scene",
	}
	cmd.AddCommand(sceneLoadCmd(), sceneInfoCmd())
	return cmd
}

// scene load: decode an OBJ into the project scene. Loading a mesh resets
// placed joints and the saved selection, matching a fresh import in the host.
func sceneLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [mesh.obj]",
		Short: "Import a mesh into the project scene",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote() {
				return fmt.Errorf("scene load works on local project files; run it where rigd runs")
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else if wire.Project.Mesh != "" {
				path = app.Resolve(wire.Dir, wire.Project.Mesh)
			}
			if path == "" {
				return fmt.Errorf("no mesh given and none recorded in the config")
			}

			if err := loadMeshIntoScene(path); err != nil {
				return err
			}

			if len(args) == 1 && wire.Project.Mesh != args[0] {
				pc := wire.Project
				pc.Mesh = args[0]
				if err := app.SaveProjectConfig(wire.DotDirPath(), pc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// loadMeshIntoScene decodes the OBJ at path into the project scene and
// resets the rig slots, reporting what was loaded.
func loadMeshIntoScene(path string) error {
	data, fp, err := mesh.Load(path)
	if err != nil {
		return err
	}
	if err := wire.Scene.LoadMesh(data.Name, fp, data.Vertices, data.Groups); err != nil {
		return err
	}
	if err := resetRig(); err != nil {
		return err
	}
	fmt.Printf("Loaded %s: %d vertices, %d groups (fingerprint %s)\n",
		data.Name, len(data.Vertices), len(data.Groups), fp)
	return nil
}

// resetRig clears slot state after a mesh import. The joints referred to the
// old geometry; the configured spine count is project configuration and
// survives.
func resetRig() error {
	rig, _, err := wire.Store.LoadRig()
	if err != nil {
		return err
	}
	return wire.Store.SaveRig(domain.Rig{Spine: domain.SpineState{Count: rig.SpineCount()}})
}

func sceneInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Summarise the loaded scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				info domain.SceneInfo
				err  error
			)
			if remote() {
				info, err = wire.Host.SceneInfo(cmd.Context())
			} else {
				info, err = wire.Scene.Info()
			}
			if err != nil {
				return err
			}

			fmt.Printf("Mesh:      %s (fingerprint %s)\n", info.MeshName, info.MeshFingerprint)
			fmt.Printf("Vertices:  %d\n", info.VertexCount)
			fmt.Printf("Groups:    %d\n", info.GroupCount)
			fmt.Printf("Objects:   %d\n", info.ObjectCount)
			fmt.Printf("Selection: %d vertices\n", info.SelectionSize)
			return nil
		},
	}
}
