package cmd

import (
	"fmt"

	"github.com/brogergvhs/isbnrange/internal/config"
	"github.com/brogergvhs/isbnrange/internal/ui"

	"github.com/spf13/cobra"
)

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := config.ListConfigs()
		if err != nil {
			return fmt.Errorf("cannot read configs directory: %w", err)
		}
		if len(list) == 0 {
			fmt.Println("No configs found. Run `isbnrange config init` to create one.")
			return nil
		}

		rows := make([][]string, 0, len(list))
		for _, c := range list {
			active := ""
			if c.Active {
				active = "yes"
			}
			rows = append(rows, []string{c.Label, c.Path, active})
		}

		fmt.Println(ui.RenderTable([]string{"LABEL", "PATH", "ACTIVE"}, rows, nil))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
}
