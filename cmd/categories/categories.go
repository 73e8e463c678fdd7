// Package categories implements the command that prints the category
// forest as an indented, selectable list.
package categories

import (
	"fmt"
	"os"
	"strings"

	"github.com/Radioaktywny/budget-planing-sub001/cmd/common"
	"github.com/Radioaktywny/budget-planing-sub001/cmd/root"
	"github.com/Radioaktywny/budget-planing-sub001/internal/config"
	"github.com/Radioaktywny/budget-planing-sub001/internal/refdata"

	"github.com/spf13/cobra"
)

// Cmd is the categories command
var Cmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category tree as an indented selection list.",
	Run:   categoriesFunc,
}

func categoriesFunc(cmd *cobra.Command, args []string) {
	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	cache, _, err := common.BuildCache(cfg)
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	options := refdata.Linearize(cache.Categories())
	if len(options) == 0 {
		fmt.Println("No categories defined")
		return
	}
	for _, opt := range options {
		fmt.Printf("%s%s\n", strings.Repeat("  ", opt.Depth), opt.Name)
	}
}
