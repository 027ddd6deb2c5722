package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rdmitr/agentchat/internal/export"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid session id %q", args[0])
		}

		exporter, err := export.New(exportFormat)
		if err != nil {
			return err
		}

		a := openApp(cmd.Context())
		defer a.close()

		sess, ok := a.repo.Get(id)
		if !ok {
			return fmt.Errorf("unknown session %d", id)
		}

		out := os.Stdout
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}
		return exporter.Export(sess, out)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json, yaml, md")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
