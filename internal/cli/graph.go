package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scorewell/engrave/pkg/document"
	"github.com/scorewell/engrave/pkg/render"
)

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		format string
		output string
		system int
	)

	cmd := &cobra.Command{
		Use:   "graph [document]",
		Short: "Render a document's constraint graph",
		Long: `Render a document's constraint graph.

The graph command shows the constraint topology instead of the solved
geometry: grid lines and blocks become nodes, constraints become labeled
edges. Useful for understanding why a document resolves the way it does.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %q (must be dot or svg)", format)
			}
			return c.runGraph(args[0], format, output, system)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file; '-' or empty writes to stdout")
	cmd.Flags().IntVar(&system, "system", -1, "render only this system (default: all)")

	return cmd
}

func (c *CLI) runGraph(path, format, output string, system int) error {
	doc, err := document.ReadFile(path)
	if err != nil {
		return err
	}
	if err := document.Validate(doc); err != nil {
		return err
	}

	systems := doc.Systems
	if system >= 0 {
		if system >= len(doc.Systems) {
			return fmt.Errorf("system %d out of range (document has %d)", system, len(doc.Systems))
		}
		systems = doc.Systems[system : system+1]
	}

	var dots []string
	for _, sys := range systems {
		dots = append(dots, render.ToDOT(sys))
	}
	data := []byte(strings.Join(dots, "\n"))

	if format == "svg" {
		if len(systems) > 1 {
			return fmt.Errorf("svg graph output requires a single system (use --system)")
		}
		data, err = render.RenderDOTSVG(dots[0])
		if err != nil {
			return fmt.Errorf("render graph: %w", err)
		}
	}

	if output == "" || output == "-" {
		fmt.Print(string(data))
		return nil
	}

	out, err := openOutput(output)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printSuccess("Graph written")
	printFile(output)
	return nil
}
