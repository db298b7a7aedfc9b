package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Model-Engineering-Solutions/mqc-adapters/internal/core/domain"
)

var adaptersCmd = &cobra.Command{
	Use:   "adapters",
	Short: "Inspect registered adapters",
	Long: `List the registered adapters, show one adapter's metadata, or preview
which adapters would be probed for a file.`,
	RunE: runAdaptersList,
}

var adaptersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List adapters in priority order",
	Args:  cobra.NoArgs,
	RunE:  runAdaptersList,
}

var adaptersShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show adapter details",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdaptersShow,
}

var adaptersCandidatesCmd = &cobra.Command{
	Use:   "candidates [file]",
	Short: "Show the adapters probed for a file",
	Long: `Lists the adapters declaring the file's extension in the order they
would be probed. The file itself is not opened.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdaptersCandidates,
}

// adaptersHTML renders the description as HTML in show.
var adaptersHTML bool

func init() {
	adaptersShowCmd.Flags().BoolVar(&adaptersHTML, "html", false, "Render the description as HTML")

	adaptersCmd.AddCommand(adaptersListCmd)
	adaptersCmd.AddCommand(adaptersShowCmd)
	adaptersCmd.AddCommand(adaptersCandidatesCmd)
	rootCmd.AddCommand(adaptersCmd)
}

func runAdaptersList(cmd *cobra.Command, _ []string) error {
	if catalog == nil {
		return errNotConfigured("adapter catalog")
	}

	infos := catalog.List()
	if len(infos) == 0 {
		cmd.Println("No adapters registered.")
		return nil
	}

	cmd.Println(adapterTable(cmd, infos))
	cmd.Printf("Total: %d adapters\n", len(infos))
	return nil
}

func runAdaptersShow(cmd *cobra.Command, args []string) error {
	if catalog == nil {
		return errNotConfigured("adapter catalog")
	}

	info, err := catalog.Info(args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("adapter %q not found", args[0])
		}
		return fmt.Errorf("failed to get adapter: %w", err)
	}

	st := stylesFor(cmd.OutOrStdout())
	cmd.Println(st.Title.Render(info.Name))
	cmd.Printf("  %s %d\n", st.Label.Render("Priority:"), info.Priority)
	cmd.Printf("  %s %s\n", st.Label.Render("Data source:"), info.DataSource)
	cmd.Printf("  %s %s\n", st.Label.Render("Extensions:"), strings.Join(info.FileExtensions, ", "))
	if info.Version != "" {
		cmd.Printf("  %s %s\n", st.Label.Render("Version:"), info.Version)
	}
	cmd.Println()

	if adaptersHTML {
		cmd.Println(domain.RenderDescription(info.Description))
	} else {
		cmd.Println(info.Description)
	}
	return nil
}

func runAdaptersCandidates(cmd *cobra.Command, args []string) error {
	if catalog == nil {
		return errNotConfigured("adapter catalog")
	}

	name := args[0]
	candidates := catalog.Candidates(name)
	if len(candidates) == 0 {
		ext := domain.ExtensionOf(name)
		if ext == "" {
			ext = "(none)"
		}
		cmd.Printf("No adapter handles extension %s.\n", ext)
		return nil
	}

	cmd.Printf("Probe order for %s:\n\n", name)
	cmd.Println(adapterTable(cmd, candidates))
	return nil
}

func adapterTable(cmd *cobra.Command, infos []domain.AdapterInfo) string {
	rows := make([][]string, len(infos))
	for i, info := range infos {
		rows[i] = []string{
			info.Name,
			strconv.Itoa(info.Priority),
			info.DataSource,
			strings.Join(info.FileExtensions, " "),
		}
	}
	return stylesFor(cmd.OutOrStdout()).Table(
		[]string{"NAME", "PRIORITY", "DATA SOURCE", "EXTENSIONS"},
		rows,
	)
}
