package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/connectors/filesystem"
	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

var readCmd = &cobra.Command{
	Use:   "read [file]",
	Short: "Read a report file",
	Long: `Reads a single report file with the first adapter that accepts it and
prints the resulting data records and findings. Nothing is journaled.

Use --explain to see which adapters were probed and why they were skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

var (
	readOutput  string
	readExplain bool
)

func init() {
	readCmd.Flags().StringVarP(&readOutput, "output", "o", formatTable, "Output format: table, json or yaml")
	readCmd.Flags().BoolVar(&readExplain, "explain", false, "Print the adapter selection to stderr")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	if reader == nil {
		return errNotConfigured("reader")
	}
	if err := validateFormat(readOutput); err != nil {
		return err
	}

	path := filesystem.ResolvePath(args[0])
	outcome, err := reader.ReadFile(cmd.Context(), path)
	if readExplain {
		explain(cmd.ErrOrStderr(), outcome, err)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if readOutput != formatTable {
		return writeStructured(cmd.OutOrStdout(), readOutput, outcome.Result)
	}
	printResult(cmd, outcome)
	return nil
}

// explain prints the selection trace of a dispatch.
func explain(w io.Writer, outcome *domain.DispatchOutcome, err error) {
	var (
		unsupported *domain.UnsupportedFileTypeError
		noValid     *domain.NoValidAdapterError
		execErr     *domain.AdapterExecutionError
	)

	switch {
	case outcome != nil:
		fmt.Fprintf(w, "candidates: %s\n", strings.Join(outcome.Candidates, ", "))
		for _, p := range outcome.Probes {
			verdict := "rejected"
			switch {
			case p.Err != nil:
				verdict = "fault: " + p.Err.Error()
			case p.Valid:
				verdict = "accepted"
			}
			fmt.Fprintf(w, "  probe %-20s %s (%s)\n", p.Adapter, verdict, formatDuration(p.Duration))
		}
		fmt.Fprintf(w, "selected: %s\n", outcome.Adapter)
	case errors.As(err, &unsupported):
		fmt.Fprintf(w, "no adapter declares %s\n", unsupported.Extension)
	case errors.As(err, &noValid):
		fmt.Fprintf(w, "candidates: %s\n", strings.Join(noValid.Candidates, ", "))
		for _, f := range noValid.Faults {
			fmt.Fprintf(w, "  fault %s: %v\n", f.Adapter, f.Err)
		}
		fmt.Fprintln(w, "selected: none")
	case errors.As(err, &execErr):
		fmt.Fprintf(w, "selected: %s (read failed)\n", execErr.Adapter)
	}
}

func printResult(cmd *cobra.Command, outcome *domain.DispatchOutcome) {
	st := stylesFor(cmd.OutOrStdout())
	result := outcome.Result

	cmd.Printf("%s %s\n", st.Label.Render("Adapter:"), outcome.Adapter)
	cmd.Printf("%s %s\n", st.Label.Render("Data source:"), result.DataSource)
	cmd.Println()

	if len(result.Data) == 0 && len(result.Findings) == 0 {
		cmd.Println(st.Muted.Render("No records."))
		return
	}

	if len(result.Data) > 0 {
		rows := make([][]string, len(result.Data))
		for i, d := range result.Data {
			rows[i] = []string{d.DataSource, formatTime(d.DateTime), d.ArtifactPath, formatFields(d.Fields)}
		}
		cmd.Println(st.Title.Render("Data"))
		cmd.Println(st.Table([]string{"DATA SOURCE", "DATE", "ARTIFACT", "FIELDS"}, rows))
	}

	if len(result.Findings) > 0 {
		rows := make([][]string, len(result.Findings))
		for i, f := range result.Findings {
			rows[i] = []string{
				f.State,
				f.ArtifactPath,
				strings.Join(f.SubjectPath, "/"),
				f.Description,
				fmt.Sprint(len(f.Data)),
			}
		}
		cmd.Println(st.Title.Render("Findings"))
		cmd.Println(st.Table([]string{"STATE", "ARTIFACT", "SUBJECT", "DESCRIPTION", "DATA"}, rows))
	}

	cmd.Printf("Total: %d records, %d findings\n", len(result.Data), len(result.Findings))
}
