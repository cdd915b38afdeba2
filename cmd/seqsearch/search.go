package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"SeqSearch/internal/fmindex"
	"SeqSearch/internal/search"
	"SeqSearch/internal/seqio"
)

var searchFlags struct {
	errors    int
	subs      int
	ins       int
	dels      int
	errorRate float64
	mode      string
	strata    int
	seqFile   string
}

var searchCmd = &cobra.Command{
	Use:   "search <index-path> <query>...",
	Short: "Search queries against a stored index",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		indexPath := args[0]
		idx, err := fmindex.LoadBi(indexPath)
		if err != nil {
			return err
		}
		if searchFlags.seqFile != "" {
			text, err := seqio.ReadSequenceFile(searchFlags.seqFile, seqio.DNA)
			if err != nil {
				return err
			}
			idx.AttachText(text)
		}

		mode, err := search.ParseMode(searchFlags.mode)
		if err != nil {
			return err
		}
		cfg := search.Config{Mode: mode, Strata: searchFlags.strata}
		if searchFlags.errorRate > 0 {
			cfg.MaxErrorRate = &search.ErrorRates{
				Total:        searchFlags.errorRate,
				Substitution: searchFlags.errorRate,
				Insertion:    searchFlags.errorRate,
				Deletion:     searchFlags.errorRate,
			}
		} else if searchFlags.errors > 0 {
			cfg.MaxError = &search.Budget{
				Total:        searchFlags.errors,
				Substitution: searchFlags.subs,
				Insertion:    searchFlags.ins,
				Deletion:     searchFlags.dels,
			}
		}

		queries := make([][]byte, len(args)-1)
		for i, q := range args[1:] {
			ranks, err := seqio.DNA.Encode(q)
			if err != nil {
				return err
			}
			queries[i] = ranks
		}

		results, err := search.Run(idx, queries, cfg)
		if err != nil {
			return err
		}

		out := make([]map[string]any, len(results))
		for i, res := range results {
			positions := res.Positions
			if positions == nil {
				positions = []int{}
			}
			out[i] = map[string]any{
				"query":     args[1+i],
				"positions": positions,
			}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	f := searchCmd.Flags()
	f.IntVar(&searchFlags.errors, "errors", 0, "total error budget")
	f.IntVar(&searchFlags.subs, "substitutions", 0, "substitution budget")
	f.IntVar(&searchFlags.ins, "insertions", 0, "insertion budget")
	f.IntVar(&searchFlags.dels, "deletions", 0, "deletion budget")
	f.Float64Var(&searchFlags.errorRate, "error-rate", 0, "error budget as a fraction of the query length")
	f.StringVar(&searchFlags.mode, "mode", "all", "reporting mode (all, best, all_best, strata)")
	f.IntVar(&searchFlags.strata, "strata", 0, "strata width for --mode strata")
	f.StringVar(&searchFlags.seqFile, "sequence", "", "original sequence file (re-enables query reconstruction)")
}
