// Package validate implements the command that checks an import
// document without staging anything.
package validate

import (
	"fmt"
	"os"

	"github.com/Radioaktywny/budget-planing-sub001/cmd/common"
	"github.com/Radioaktywny/budget-planing-sub001/cmd/root"
	"github.com/Radioaktywny/budget-planing-sub001/internal/importer"

	"github.com/spf13/cobra"
)

// Cmd is the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON/YAML import document.",
	Long: `Validate decodes an import document and reports either the number of
importable transactions or the full list of field errors, each with the
index of the offending array element. Nothing is staged or committed.`,
	Run: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Validate command called")

	doc, err := common.LoadDocument(root.SharedFlags.Input, importer.Format(root.SharedFlags.Format))
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	count, errs := importer.Validate(doc)
	if len(errs) > 0 {
		fmt.Printf("%d validation error(s):\n", len(errs))
		for _, e := range errs {
			fmt.Printf("  %s\n", e.Error())
		}
		os.Exit(1)
	}

	fmt.Printf("OK: %d transaction(s) ready for staging\n", count)
}
