// Package commit implements the command that stages an import document
// and commits the approved subset to the ledger.
package commit

import (
	"errors"
	"fmt"
	"os"

	"github.com/Radioaktywny/budget-planing-sub001/cmd/common"
	"github.com/Radioaktywny/budget-planing-sub001/cmd/root"
	"github.com/Radioaktywny/budget-planing-sub001/internal/committer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/config"
	"github.com/Radioaktywny/budget-planing-sub001/internal/importer"
	"github.com/Radioaktywny/budget-planing-sub001/internal/stagingerror"
	"github.com/Radioaktywny/budget-planing-sub001/internal/store"

	"github.com/spf13/cobra"
)

// Cmd is the commit command
var Cmd = &cobra.Command{
	Use:   "commit",
	Short: "Stage an import document and commit the approved records.",
	Long: `Commit builds the review session, runs pre-commit validation over the
selected records and, only when every selected record passes, commits
them one by one to the CSV ledger. A failing record during the commit
loop does not affect its siblings; the failed subset is reported so it
can be retried.`,
	Run: commitFunc,
}

func commitFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Commit command called")

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

	ledger := store.NewLedgerWriter(cfg.Ledger.File)
	orchestrator := committer.NewOrchestrator(ledger)

	result, err := orchestrator.Commit(cmd.Context(), session)
	if err != nil {
		var batchErr *stagingerror.BatchValidationError
		if errors.As(err, &batchErr) {
			fmt.Println("Commit aborted, nothing was written:")
			for _, f := range batchErr.Failures {
				fmt.Printf("  record %d (%s):\n", f.Index+1, f.Description)
				for _, msg := range f.Messages {
					fmt.Printf("    - %s\n", msg)
				}
			}
			os.Exit(1)
		}
		root.Log.Errorf("Error: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Committed %d record(s) to %s\n", result.Committed, cfg.Ledger.File)
	if failed := result.Failed(); len(failed) > 0 {
		fmt.Printf("%d record(s) failed and can be retried:\n", len(failed))
		for _, rec := range failed {
			fmt.Printf("  record %d (%s): %v\n", rec.Index+1, rec.Description, rec.Err)
		}
		os.Exit(1)
	}
}
