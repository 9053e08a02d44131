package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"autorig/internal/domain"
)

// export: write the joint hierarchy for downstream tools.
func exportCmd() *cobra.Command {
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the joint hierarchy as JSON or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				skel domain.Skeleton
				err  error
			)
			if remote() {
				skel, err = wire.Host.Skeleton(cmd.Context())
			} else {
				skel, err = wire.Skeleton.Export()
			}
			if err != nil {
				return err
			}

			var b []byte
			switch format {
			case "json":
				b, err = json.MarshalIndent(skel, "", "  ")
				b = append(b, '\n')
			case "yaml":
				b, err = yaml.Marshal(skel)
			default:
				return fmt.Errorf("unknown format %q (json or yaml)", format)
			}
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = os.Stdout.Write(b)
				return err
			}
			if err := os.WriteFile(outPath, b, 0o644); err != nil {
				return err
			}
			fmt.Printf("Wrote %d joints to %s\n", skel.JointCount, outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
