package commands

import (
	"os"

	"github.com/spf13/cobra"

	"autorig/internal/app"
)

var (
	projectDir string
	hostURL    string
	wire       *app.Wire
)

func Execute() error {
	root := &cobra.Command{
		Use:   "autorig",
		Short: "Joint placement and skeleton authoring CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if projectDir == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				if found, ok := app.FindProject(cwd); ok {
					projectDir = found
				} else {
					projectDir = cwd
				}
			}

			var err error
			wire, err = app.NewWire(app.Config{ProjectDir: projectDir, HostURL: hostURL})
			return err
		},
	}

	root.PersistentFlags().StringVar(&projectDir, "project", "", "project root (default: nearest parent with .autorig)")
	root.PersistentFlags().StringVar(&hostURL, "host", "", "rigd base URL (e.g. http://127.0.0.1:8733)")

	root.AddCommand(
		initCmd(),
		sceneCmd(),
		selectCmd(),
		jointCmd(),
		spineCmd(),
		bonesCmd(),
		statusCmd(),
		exportCmd(),
		explainCmd(),
		watchCmd(),
	)
	return root.Execute()
}

// remote reports whether commands should go through a rigd host instead of
// the local project files.
func remote() bool { return wire.Host != nil }
