package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quillkit/quill"
	"github.com/quillkit/quill/export"
	"github.com/quillkit/quill/htmldoc"
	"github.com/quillkit/quill/model"
	"github.com/quillkit/quill/script"
)

func newComposeCmd() *cobra.Command {
	var (
		inFormat   string
		exportName string
		outPath    string
		save       bool
		preview    bool
	)

	cmd := &cobra.Command{
		Use:   "compose [file]",
		Short: "Render a composition script or HTML document",
		Long: `Compose reads a composition script or an HTML document, builds the
document, and writes it to stdout in the chosen export format. With no
file argument (or with "-") input is read from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := getConfig(cmd)

			doc, err := readInput(cmd, args, inFormat)
			if err != nil {
				return err
			}

			name := exportName
			if name == "" {
				name = cfg.GetString("output.format")
			}
			f, err := export.ParseFormat(name)
			if err != nil {
				return err
			}

			if preview {
				if exportName != "" && f != export.FormatMarkdown {
					return fmt.Errorf("--preview requires the markdown export format")
				}
				if err := previewMarkdown(cmd, cfg, doc); err != nil {
					return err
				}
			} else if err := export.NewExporter(f).Export(doc, cmd.OutOrStdout()); err != nil {
				return err
			}

			if save || outPath != "" {
				path := outPath
				if path == "" {
					path = cfg.GetString("output.path")
				}
				store, dest, err := storeFor(cfg, path)
				if err != nil {
					return err
				}
				if err := store.Save(doc.Render()); err != nil {
					return fmt.Errorf("saving document: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Document saved to %s\n", dest)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inFormat, "format", "", "input format: script or html (default: detect)")
	cmd.Flags().StringVarP(&exportName, "export", "e", "", "export format: text, markdown, html or json (default: config output.format)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "save the plain rendering to this path")
	cmd.Flags().BoolVar(&save, "save", false, "save the plain rendering to the configured output path")
	cmd.Flags().BoolVar(&preview, "preview", false, "render markdown output to the terminal with glamour")

	return cmd
}

// readInput builds the document from the file argument or stdin. An
// explicit format name bypasses detection.
func readInput(cmd *cobra.Command, args []string, formatName string) (*model.Document, error) {
	filename := ""
	if len(args) == 1 && args[0] != "-" {
		filename = args[0]
	}

	switch strings.ToLower(formatName) {
	case "":
		if filename == "" {
			return quill.OpenReader(cmd.InOrStdin())
		}
		return quill.Open(filename)
	case "script":
		if filename == "" {
			return script.Parse(cmd.InOrStdin())
		}
		return script.ParseFile(filename)
	case "html":
		var (
			h   *htmldoc.Reader
			err error
		)
		if filename == "" {
			h, err = htmldoc.OpenReader(cmd.InOrStdin())
		} else {
			h, err = htmldoc.Open(filename)
		}
		if err != nil {
			return nil, err
		}
		defer h.Close()
		return h.Document()
	default:
		return nil, fmt.Errorf("unknown input format: %q", formatName)
	}
}

// previewMarkdown renders the document's markdown export to the
// terminal with glamour.
func previewMarkdown(cmd *cobra.Command, cfg *viper.Viper, doc *model.Document) error {
	md, err := export.NewExporter(export.FormatMarkdown).ExportToString(doc)
	if err != nil {
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(cfg.GetString("preview.style")),
		glamour.WithWordWrap(cfg.GetInt("preview.width")),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}
