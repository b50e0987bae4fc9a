package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tedfulk/ollama-rename-img/internal/core/domain"
	"github.com/Tedfulk/ollama-rename-img/internal/core/services"
	"github.com/Tedfulk/ollama-rename-img/pkg/ui"
)

var (
	processDelimiter string
)

var processCmd = &cobra.Command{
	Use:   "process [directory]",
	Short: "Convert WebP files and rename them from AI keywords",
	Long: `Process every WebP image in a directory.

Each file is converted to JPEG, classified by the vision model, and renamed
to the keywords the model returns. The WebP original is deleted once its
converted counterpart has been renamed successfully. Files that fail to
convert or classify are left alone and reported.

Examples:
  imgrename process ~/Pictures/screenshots
  imgrename process -d - ~/Pictures/screenshots   # dash-separated names
  imgrename process -v ~/Pictures/screenshots     # show per-file progress`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processDelimiter, "delimiter", "d", "", "Delimiter between keywords: '_', '-' or ' ' (default from config)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	directory := args[0]

	delimiter := resolveDelimiter(processDelimiter)
	if err := domain.ValidateDelimiter(delimiter); err != nil {
		fmt.Println(ui.FormatError("Invalid delimiter: must be '_', '-' or ' ' (space)"))
		return err
	}

	info, err := os.Stat(directory)
	if err != nil || !info.IsDir() {
		fmt.Println(ui.FormatError("Not a directory: " + directory))
		return fmt.Errorf("not a directory: %s", directory)
	}

	stats, err := runPipeline(ctx, directory, delimiter)
	if err != nil {
		return err
	}
	if stats != nil {
		printSummary(stats)
	}
	return nil
}

// runPipeline runs conversion followed by the classify/rename batch. It is
// shared by the process and watch commands. A nil stats result means there
// was nothing to process.
func runPipeline(ctx context.Context, directory, delimiter string) (*services.ProcessStats, error) {
	convResp, err := convertService.Execute(ctx, services.ConvertRequest{Directory: directory})
	if err != nil {
		fmt.Println(ui.FormatError("Failed to scan directory"))
		return nil, err
	}

	if len(convResp.Images) == 0 {
		fmt.Println(ui.FormatWarning("No converted images to process"))
		return nil, nil
	}
	appLogger.Info("Converted %d file(s) to JPEG", len(convResp.Images))

	return processService.Execute(ctx, services.ProcessRequest{
		Directory: directory,
		Delimiter: delimiter,
		Images:    convResp.Images,
	})
}

// resolveDelimiter applies flag > config precedence.
func resolveDelimiter(flag string) string {
	if flag != "" {
		return flag
	}
	return appConfig.Delimiter
}

func printSummary(stats *services.ProcessStats) {
	fmt.Println()
	fmt.Println(ui.FormatTitle("Summary"))
	fmt.Println(ui.RenderKeyValue("Renamed", strconv.Itoa(stats.Renamed)))
	fmt.Println(ui.RenderKeyValue("Originals removed", strconv.Itoa(stats.Removed)))
	fmt.Println(ui.RenderKeyValue("Skipped", strconv.Itoa(stats.Skipped)))
	fmt.Println(ui.RenderKeyValue("Failed", strconv.Itoa(stats.Failed)))
	fmt.Println(ui.RenderKeyValue("Unprocessed", strconv.Itoa(stats.Residual)))

	if stats.Failed == 0 && stats.Residual == 0 {
		fmt.Println()
		fmt.Println(ui.FormatSuccess("All images processed"))
	}
}
