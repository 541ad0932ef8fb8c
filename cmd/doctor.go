package cmd

import (
	"os"
	osexec "os/exec"

	"github.com/fatih/color"
	"github.com/k1LoW/slidefmt/config"
	"github.com/k1LoW/slidefmt/md"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check slidefmt environment and configuration",
	Long:  `Check slidefmt environment and configuration to ensure everything is set up correctly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)
		bold := color.New(color.Bold)

		allOK := true

		// 1. Check configuration file (optional)
		cmd.Print("🔧 Checking configuration file ... ")
		cfg, err := config.Load(profile)
		switch {
		case err != nil:
			red.Println("✗ CONFIG ERROR")
			cmd.Printf("   Error loading config: %v\n", err)
			allOK = false
			cfg = &config.Config{}
		case cfg.Path() == "":
			green.Println("✓ OK")
			cmd.Println("   No configuration file, using defaults")
		default:
			green.Println("✓ OK")
			cmd.Printf("   Configuration file: %s\n", cfg.Path())
		}

		// 2. Check layout rules
		cmd.Print("📐 Checking layout rules ... ")
		if _, err := md.New(md.WithRules(cfg.Rules...)); err != nil {
			red.Println("✗ INVALID RULE")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   %d rule(s)\n", len(cfg.Rules))
		}

		// 3. Check theme and transition
		cmd.Print("🎨 Checking theme and transition ... ")
		var unknown []string
		if cfg.Theme != "" {
			if _, ok := md.LookupTheme(cfg.Theme); !ok {
				unknown = append(unknown, "theme "+cfg.Theme)
			}
		}
		if cfg.Transition != "" {
			if _, ok := md.LookupTransition(cfg.Transition); !ok {
				unknown = append(unknown, "transition "+cfg.Transition)
			}
		}
		if len(unknown) > 0 {
			yellow.Println("⚠️ NOT IN CATALOG")
			for _, u := range unknown {
				cmd.Printf("   Unknown %s (it is written as is)\n", u)
			}
		} else {
			green.Println("✓ OK")
		}

		// 4. Check state directory
		cmd.Print("📁 Checking state directory ... ")
		dir := config.StateHomePath()
		if err := os.MkdirAll(dir, 0o700); err != nil {
			red.Println("✗ NOT WRITABLE")
			cmd.Printf("   %v\n", err)
			allOK = false
		} else {
			green.Println("✓ OK")
			cmd.Printf("   State directory: %s\n", dir)
		}

		// 5. Check Slidev toolchain (only needed by present)
		cmd.Print("📦 Checking npx ... ")
		if p, err := osexec.LookPath("npx"); err != nil {
			yellow.Println("⚠️ NOT FOUND")
			cmd.Println("   Install Node.js to use `slidefmt present`")
		} else {
			green.Println("✓ OK")
			cmd.Printf("   npx: %s\n", p)
		}

		cmd.Println()
		if allOK {
			bold.Printf("🎉 ")
			green.Print("All checks passed! You are ready to use slidefmt")
			bold.Println(".")
			cmd.Println()
			cmd.Println("Try converting a markdown file:")
			yellow.Println("  slidefmt convert notes.md -o slides.md")
		} else {
			red.Println("⚠️  Setup is incomplete.")
			cmd.Println("\nPlease fix the issues above to use slidefmt properly.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
