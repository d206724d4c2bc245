package cli

import (
	"fmt"
	"image"
	"os"
	"text/tabwriter"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spf13/cobra"

	"github.com/quillkit/quill/model"
)

func newStatsCmd() *cobra.Command {
	var inFormat string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print composition statistics for a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readInput(cmd, args, inFormat)
			if err != nil {
				return err
			}

			st := doc.Stats()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintf(w, "Elements\t%d\n", st.Elements)
			for _, et := range []model.ElementType{
				model.ElementTypeText,
				model.ElementTypeImage,
				model.ElementTypeLineBreak,
				model.ElementTypeTab,
			} {
				fmt.Fprintf(w, "  %s\t%d\n", et, st.ByType[et])
			}
			fmt.Fprintf(w, "Text runes\t%d\n", st.TextRunes)
			fmt.Fprintf(w, "Lines\t%d\n", st.Lines)
			if err := w.Flush(); err != nil {
				return err
			}

			return printImageInfo(cmd, doc)
		},
	}

	cmd.Flags().StringVar(&inFormat, "format", "", "input format: script or html (default: detect)")

	return cmd
}

// printImageInfo probes referenced image files that exist on disk and
// reports their pixel dimensions.
func printImageInfo(cmd *cobra.Command, doc *model.Document) error {
	var images []*model.Image
	for _, el := range doc.Elements() {
		if img, ok := el.(*model.Image); ok {
			images = append(images, img)
		}
	}
	if len(images) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "Images")
	for _, img := range images {
		fmt.Fprintf(w, "  %s\t%s\n", img.Path, probeImage(img.Path))
	}
	return w.Flush()
}

// probeImage reports "WIDTHxHEIGHT kind" for image files the registered
// decoders understand, without decoding pixel data.
func probeImage(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return "(not on disk)"
	}
	defer f.Close()

	cfg, kind, err := image.DecodeConfig(f)
	if err != nil {
		return "(unreadable)"
	}
	return fmt.Sprintf("%dx%d %s", cfg.Width, cfg.Height, kind)
}
