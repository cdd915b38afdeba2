package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"SeqSearch/internal/fmindex"
	"SeqSearch/internal/seqio"
)

var indexCmd = &cobra.Command{
	Use:   "index <sequence-file> <index-path>",
	Short: "Build a bidirectional index and store it as a blob pair",
	Long:  "Reads a plain or FASTA-formatted sequence file, builds the bidirectional FM index, and stores it at <index-path>.fwd and <index-path>.rev.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		seqPath, indexPath := args[0], args[1]

		text, err := seqio.ReadSequenceFile(seqPath, seqio.DNA)
		if err != nil {
			return err
		}
		if len(text) == 0 {
			return fmt.Errorf("sequence file %s contains no symbols", seqPath)
		}

		start := time.Now()
		idx, err := fmindex.NewBi(text)
		if err != nil {
			return err
		}
		if err := idx.Store(indexPath); err != nil {
			return err
		}

		slog.Info("index built",
			"sequence", seqPath,
			"index", indexPath,
			"length", len(text),
			"took", time.Since(start),
		)
		return nil
	},
}
