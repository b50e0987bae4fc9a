package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tedfulk/ollama-rename-img/pkg/config"
	"github.com/Tedfulk/ollama-rename-img/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	source := path
	if _, err := os.Stat(path); os.IsNotExist(err) {
		source = "defaults (no config file)"
	}

	fmt.Println(ui.FormatTitle("Configuration"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Host", appConfig.Host))
	fmt.Println(ui.RenderKeyValue("Model", appConfig.Model))
	fmt.Println(ui.RenderKeyValue("Delimiter", "'"+appConfig.Delimiter+"'"))
	fmt.Println(ui.RenderKeyValue("JPEG Quality", strconv.Itoa(appConfig.JPEGQuality)))
	fmt.Println(ui.RenderKeyValue("Color Theme", appConfig.ColorTheme))
	fmt.Println(ui.RenderKeyValue("Watch Debounce (ms)", strconv.Itoa(appConfig.WatchDebounceMS)))
	fmt.Println()
	fmt.Println(ui.FormatMuted("Source: " + source))
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Println(ui.FormatWarning("Config file already exists: " + path))
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		fmt.Println(ui.FormatError("Failed to write config file"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Wrote default config: " + path))
	return nil
}
