package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scorewell/engrave/pkg/document"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [document]",
		Short: "Check a layout document without resolving it",
		Long: `Check a layout document without resolving it.

The validate command parses the document, verifies every constraint
reference, and reports what it found. It never touches the cache and
produces no output files.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
	return cmd
}

func (c *CLI) runValidate(path string) error {
	doc, err := document.ReadFile(path)
	if err != nil {
		printError("Invalid document")
		return err
	}
	if err := document.Validate(doc); err != nil {
		printError("Invalid document")
		return err
	}

	var blocks, constraints int
	for _, sys := range doc.Systems {
		blocks += len(sys.Blocks)
		for _, line := range sys.HorizontalLines {
			constraints += len(line.Constraints)
		}
		for _, line := range sys.VerticalLines {
			constraints += len(line.Constraints)
		}
		for _, b := range sys.Blocks {
			constraints += len(b.Constraints)
		}
	}

	printSuccess("Document is valid")
	printDetail("%d systems, %d blocks, %d constraints", len(doc.Systems), blocks, constraints)
	printNextStep("Resolve it", fmt.Sprintf("engrave resolve %s", path))
	return nil
}
