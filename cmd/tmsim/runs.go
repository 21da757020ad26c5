package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/tmsim/internal/export"
	"github.com/san-kum/tmsim/internal/storage"
	"github.com/san-kum/tmsim/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMACHINE\tTIME\tINPUT\tOUTCOME\tSTEPS\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%q\t%s\t%d\t%q\n",
			run.ID,
			run.Machine,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Input,
			run.Outcome,
			run.Steps,
			run.Output,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	fmt.Printf("--- %s on %q ---\n", meta.Machine, meta.Input)
	for _, r := range rows {
		fmt.Print(viz.FormatStep(r.Step, r.State, r.Head, viz.StoredTapeText(r.Tape)))
	}
	fmt.Printf("\n--- finished in %d steps ---\n", meta.Steps)
	fmt.Printf("final state: %s\n", meta.FinalState)
	fmt.Printf("output:      %q\n", meta.Output)
	fmt.Printf("verdict:     %s\n", meta.Outcome)
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("machine: %s\n", meta.Machine)
	fmt.Printf("steps: %d\n\n", meta.Steps)
	fmt.Println(viz.PlotTrace(rows, 80, 10))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	var w io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	if !asSVG {
		return st.ExportJSON(w, args[0])
	}

	rows, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}
	_, err = io.WriteString(w, export.SpaceTimeSVG(rows, svgScale))
	return err
}
