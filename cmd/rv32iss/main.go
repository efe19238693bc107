package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rv32iss/rv32iss/config"
	"github.com/rv32iss/rv32iss/loader"
	"github.com/rv32iss/rv32iss/sim"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rv32iss",
		Short: "RV32I instruction-set simulator",
	}

	var configPath string
	var maxSteps int
	var quiet bool

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a raw binary image and execute it step by step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImage(args[0], configPath, maxSteps, quiet)
		},
	}
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to a TOML simulator configuration")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 10_000, "Maximum number of instructions to execute")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress per-step trace output")

	rootCmd.AddCommand(runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImage(imagePath, configPath string, maxSteps int, quiet bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	s, err := sim.New(cfg)
	if err != nil {
		return fmt.Errorf("rv32iss: failed to initialize simulator: %w", err)
	}

	image, err := os.ReadFile(imagePath) // #nosec G304 -- user-supplied path is the whole point of this CLI
	if err != nil {
		return fmt.Errorf("rv32iss: failed to read image %s: %w", imagePath, err)
	}
	if err := loader.LoadImage(s, cfg.Entry, image); err != nil {
		return fmt.Errorf("rv32iss: failed to load image: %w", err)
	}

	for i := 0; i < maxSteps; i++ {
		rec, err := s.Step()
		if err != nil {
			return fmt.Errorf("rv32iss: execution fault after %d steps: %w", i, err)
		}
		if !quiet {
			fmt.Println(rec.String())
		}
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("rv32iss: failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// defaultConfig describes a single 16 MiB RAM region at address 0, entered
// at address 0, used when no --config file is given.
func defaultConfig() *config.Config {
	return &config.Config{
		Entry: 0,
		MemRegions: []config.MemoryRegionConfig{
			{Start: 0, End: 0x1000000, Type: config.RegionRAM, Init: config.PolicyConfig{Kind: config.PolicyZero}},
		},
		RegInit: config.PolicyConfig{Kind: config.PolicyZero},
	}
}
