// ABOUTME: Install Claude Code skill for liftlog
// ABOUTME: Embeds and installs the skill definition to ~/.claude/skills/

package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

//go:embed skill/SKILL.md
var skillFS embed.FS

var installSkillCmd = &cobra.Command{
	Use:         "install-skill",
	Short:       "Install Claude Code skill",
	Annotations: noStore,
	Long: `Install the liftlog skill for Claude Code.

This copies the skill definition to ~/.claude/skills/liftlog/
so Claude Code can use liftlog commands contextually.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		return installSkill(home)
	},
}

func init() {
	rootCmd.AddCommand(installSkillCmd)
}

// skillPath returns where the skill file lives under home.
func skillPath(home string) string {
	return filepath.Join(home, ".claude", "skills", "liftlog", "SKILL.md")
}

func installSkill(home string) error {
	dest := skillPath(home)

	fmt.Println("┌─────────────────────────────────────────────────────────────┐")
	fmt.Println("│             Liftlog Skill for Claude Code                   │")
	fmt.Println("└─────────────────────────────────────────────────────────────┘")
	fmt.Println()
	fmt.Println("This will install the liftlog skill, enabling Claude Code to:")
	fmt.Println()
	fmt.Println("  • Add exercises and record personal records")
	fmt.Println("  • Log workouts with duration and calories")
	fmt.Println("  • Review calories burned over time")
	fmt.Println("  • Use the /liftlog slash command")
	fmt.Println()
	fmt.Println("Destination:")
	fmt.Printf("  %s\n", dest)
	fmt.Println()

	if _, err := os.Stat(dest); err == nil {
		fmt.Println("Note: A skill file already exists and will be overwritten.")
		fmt.Println()
	}

	ok, err := confirm("Install the liftlog skill?")
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Installation canceled.")
		return nil
	}

	content, err := skillFS.ReadFile("skill/SKILL.md")
	if err != nil {
		return fmt.Errorf("failed to read embedded skill: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0750); err != nil {
		return fmt.Errorf("failed to create skill directory: %w", err)
	}
	if err := os.WriteFile(dest, content, 0600); err != nil {
		return fmt.Errorf("failed to write skill file: %w", err)
	}

	color.Green("✓ Installed liftlog skill successfully!")
	fmt.Println()
	fmt.Println("Try asking Claude: \"Log 30 minutes of rowing, 280 calories\" or \"What's my bench PR?\"")
	return nil
}
