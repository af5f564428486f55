package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-match3/internal/games/gems"
	"github.com/vovakirdan/tui-match3/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games and campaign levels",
	Long: `Shows the registered games and the Gem Swap campaign with the
board size, score target and move budget of every level.

Use --config and --difficulty to see a custom or adjusted campaign.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	listCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func listTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
	}

	games := listTable("ID", "Title")
	for _, g := range registry.List() {
		games.Row(g.ID, g.Title)
	}
	fmt.Println(games)

	levels := listTable("#", "Level", "Board", "Colors", "Target", "Moves")
	for i, lvl := range gems.Levels() {
		levels.Row(
			strconv.Itoa(i+1),
			lvl.Name,
			fmt.Sprintf("%dx%d", lvl.Width, lvl.Height),
			strconv.Itoa(lvl.Variations),
			strconv.Itoa(lvl.Target),
			strconv.Itoa(lvl.Moves),
		)
	}
	fmt.Println()
	fmt.Println("Gem Swap campaign:")
	fmt.Println(levels)

	fmt.Println()
	fmt.Println("Run 'arcade play gems --level N' to start from a level.")
	return nil
}
