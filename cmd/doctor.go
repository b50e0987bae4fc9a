package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tedfulk/ollama-rename-img/pkg/config"
	"github.com/Tedfulk/ollama-rename-img/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your imgrename setup",
	Long: `Diagnose issues with your imgrename setup.

Checks for:
  - Ollama server reachability
  - Availability of the configured vision model
  - Configuration file presence`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	ctx := getContext()

	fmt.Println(ui.FormatTitle("imgrename doctor"))
	fmt.Println()

	checkStep("Ollama Server ("+appConfig.Host+")", func() error {
		return ollamaClient.Health(ctx)
	})

	checkStep("Vision Model ("+ollamaClient.Model()+")", func() error {
		ok, err := ollamaClient.HasModel(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("not pulled (try: ollama pull %s)", ollamaClient.Model())
		}
		return nil
	})

	checkStep("Configuration File", func() error {
		path, err := config.Path()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			// Not fatal, defaults apply
			return fmt.Errorf("missing at %s (run 'imgrename config init')", path)
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
