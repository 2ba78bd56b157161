package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sarchlab/sumpaxi/datarecording"
	"github.com/sarchlab/sumpaxi/tracing"
)

var (
	traceWhat  string
	traceLimit int
	traceSteps bool
)

var traceCmd = &cobra.Command{
	Use:   "trace FILE",
	Short: "List the commands recorded in a trace file.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		return printTrace(cmd.Context(), os.Stdout, reader)
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().StringVar(&traceWhat, "cmd", "",
		"Only list commands with this name")
	traceCmd.Flags().IntVar(&traceLimit, "limit", 0,
		"Maximum number of commands to list")
	traceCmd.Flags().BoolVar(&traceSteps, "steps", false,
		"Also list the phases each command went through")
}

func printTrace(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	reader.MapTable(tracing.TaskTable, tracing.TaskEntry{})

	params := datarecording.QueryParams{
		OrderBy: "StartTime",
		Limit:   traceLimit,
	}
	if traceWhat != "" {
		params.Where = "What = ?"
		params.Args = []any{traceWhat}
	}

	rows, err := reader.Query(ctx, tracing.TaskTable, params)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCMD\tWHERE\tSTART(s)\tEND(s)\tOUTCOME")

	if traceSteps {
		reader.MapTable(tracing.StepTable, tracing.StepEntry{})
	}

	for _, row := range rows {
		t := row.(*tracing.TaskEntry)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.9f\t%.9f\t%s\n",
			t.ID, t.What, t.Location, t.StartTime, t.EndTime, t.Outcome)

		if !traceSteps {
			continue
		}

		err = printSteps(ctx, tw, reader, t.ID)
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

func printSteps(
	ctx context.Context,
	w io.Writer,
	reader datarecording.DataReader,
	taskID string,
) error {
	steps, err := reader.Query(ctx, tracing.StepTable, datarecording.QueryParams{
		Where:   "TaskID = ?",
		Args:    []any{taskID},
		OrderBy: "Time",
	})
	if err != nil {
		return err
	}

	for _, row := range steps {
		s := row.(*tracing.StepEntry)
		fmt.Fprintf(w, "\t  %s\t\t%.9f\t\t\n", s.What, s.Time)
	}

	return nil
}
