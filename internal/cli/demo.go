package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/quillkit/quill"
	"github.com/quillkit/quill/model"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Compose, print and save a small example document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)

			store, dest, err := storeFor(cfg, cfg.GetString("output.path"))
			if err != nil {
				return err
			}

			ed := quill.NewEditor(model.NewDocument(), store)
			ed.AddText("Hello, world!")
			ed.AddLineBreak()
			ed.AddText("This is a real-world document editor example.")
			ed.AddLineBreak()
			ed.AddTab()
			ed.AddText("Indented text after a tab space.")
			ed.AddLineBreak()
			ed.AddImage("picture.jpg")

			fmt.Fprintln(cmd.OutOrStdout(), ed.Render())

			if err := ed.Save(); err != nil {
				return fmt.Errorf("saving document: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Document saved to %s\n", dest)
			return nil
		},
	}
}
