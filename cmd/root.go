package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Tedfulk/ollama-rename-img/internal/adapters/ollama"
	"github.com/Tedfulk/ollama-rename-img/internal/core/services"
	"github.com/Tedfulk/ollama-rename-img/internal/logging"
	"github.com/Tedfulk/ollama-rename-img/pkg/config"
	"github.com/Tedfulk/ollama-rename-img/pkg/ui"
)

var (
	appConfig *config.Config
	appLogger *logging.Logger

	// Adapter
	ollamaClient *ollama.Client

	// Services
	convertService *services.ConvertService
	processService *services.ProcessService
)

var (
	flagVerbose bool
	flagModel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "imgrename",
	Short: "Rename image files based on their content",
	Long: ui.StyleTitle.Render("imgrename") + " - AI Image Renamer\n\n" +
		"Converts WebP images to JPEG, asks a local vision model for\n" +
		"descriptive keywords, and renames each file from those keywords.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Vision model to use (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// A .env in the working directory may supply OLLAMA_HOST and friends.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(cfg.ColorTheme)
	appLogger = logging.New(flagVerbose)

	model := cfg.Model
	if flagModel != "" {
		model = flagModel
	}
	ollamaClient = ollama.New(cfg.Host, model)

	// Initialize services
	convertService = services.NewConvertService(appLogger, cfg.JPEGQuality)
	processService = services.NewProcessService(ollamaClient, appLogger)

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
