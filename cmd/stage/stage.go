// Package stage implements the dry-run command: build a review session
// from an import document and report its validation state without
// committing anything.
package stage

import (
	"fmt"
	"os"
	"sort"

	"github.com/Radioaktywny/budget-planing-sub001/cmd/common"
	"github.com/Radioaktywny/budget-planing-sub001/cmd/root"
	"github.com/Radioaktywny/budget-planing-sub001/internal/config"
	"github.com/Radioaktywny/budget-planing-sub001/internal/importer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/models"

	"github.com/spf13/cobra"
)

// Cmd is the stage command
var Cmd = &cobra.Command{
	Use:   "stage",
	Short: "Stage an import document for review (dry run).",
	Long: `Stage validates the document, builds the staging model, resolves
account/category/tag names against the reference data and prints each
record's review state together with the selection summary. No
transactions are committed.`,
	Run: stageFunc,
}

func stageFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Stage command called")

	cfg, err := config.InitializeConfig()
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	doc, err := common.LoadDocument(root.SharedFlags.Input, importer.Format(root.SharedFlags.Format))
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	cache, _, err := common.BuildCache(cfg)
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	session, err := common.StageDocument(cmd.Context(), cfg, doc, cache)
	if err != nil {
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	for i, t := range session.Records() {
		status := "ready"
		if len(t.FieldErrors) > 0 {
			status = "needs attention"
		}
		kind := string(t.Type)
		if t.IsSplit {
			kind = fmt.Sprintf("%s split(%d)", kind, len(t.Items))
		}
		fmt.Printf("%3d. %-10s %10s  %-30s [%s] %s\n",
			i+1, t.Date, t.Amount.StringFixed(2), t.Description, kind, status)
		for _, field := range sortedErrorFields(t) {
			fmt.Printf("       - %s: %s\n", field, t.FieldErrors[field])
		}
	}

	summary := session.Summary()
	fmt.Printf("\n%d of %d record(s) selected, net %s\n",
		summary.SelectedCount, len(session.Records()),
		common.FormatNet(summary.Net, cfg.Ledger.Currency))
}

func sortedErrorFields(t *models.StagedTransaction) []models.Field {
	fields := make([]models.Field, 0, len(t.FieldErrors))
	for f := range t.FieldErrors {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}
