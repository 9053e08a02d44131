package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"autorig/internal/app"
	"autorig/internal/mesh"
)

// watch: report mesh re-exports so stale selections and joints are caught
// early. Watches the directory rather than the file itself because most
// exporters replace the file by rename.
func watchCmd() *cobra.Command {
	var reload bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the mesh file for re-exports",
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote() {
				return fmt.Errorf("watch works on local project files; run it where rigd runs")
			}
			if wire.Project.Mesh == "" {
				return fmt.Errorf("no mesh recorded; run 'autorig scene load <mesh.obj>' first")
			}
			path := app.Resolve(wire.Dir, wire.Project.Mesh)

			w, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.Add(filepath.Dir(path)); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Printf("Watching %s (ctrl-c to stop)\n", path)
			base := filepath.Base(path)
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-w.Events:
					if !ok {
						return nil
					}
					if filepath.Base(ev.Name) != base {
						continue
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
						continue
					}
					if err := handleMeshChange(path, reload); err != nil {
						fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
					}
				case err, ok := <-w.Errors:
					if !ok {
						return nil
					}
					fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
				}
			}
		},
	}
	cmd.Flags().BoolVar(&reload, "reload", false, "reload the mesh into the scene on change")
	return cmd
}

func handleMeshChange(path string, reload bool) error {
	// Exporters write in chunks; a decode failure usually means we raced a
	// partial file and the next event will catch the finished write.
	data, fp, err := mesh.Load(path)
	if err != nil {
		return err
	}

	cur, err := wire.Scene.MeshFingerprint()
	if err == nil && cur == fp {
		return nil
	}

	if !reload {
		fmt.Printf("mesh changed (fingerprint %s); joints and selection may be stale\n", fp)
		return nil
	}
	if err := wire.Scene.LoadMesh(data.Name, fp, data.Vertices, data.Groups); err != nil {
		return err
	}
	if err := resetRig(); err != nil {
		return err
	}
	fmt.Printf("reloaded %s: %d vertices (joints and selection reset)\n", data.Name, len(data.Vertices))
	return nil
}
