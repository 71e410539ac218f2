package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brogergvhs/isbnrange/internal/config"
	"github.com/brogergvhs/isbnrange/internal/ui"

	"github.com/spf13/cobra"
)

var flagGroupsFilter string

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the registration groups in the range table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, log, err := loadRuntime(config.Options{})
		if err != nil {
			return err
		}

		res, err := loadTable(cfg, log).Wait(cmd.Context())
		if err != nil {
			return err
		}

		filter := strings.ToLower(strings.TrimSpace(flagGroupsFilter))

		var rows [][]string
		for _, g := range res.Table().Groups() {
			if filter != "" &&
				!strings.Contains(strings.ToLower(g.Agency), filter) &&
				!strings.HasPrefix(g.Prefix, filter) {
				continue
			}
			rows = append(rows, []string{g.Prefix, g.Agency, strconv.Itoa(len(g.Ranges))})
		}

		if len(rows) == 0 {
			fmt.Println("No matching groups.")
			return nil
		}

		fmt.Println(ui.RenderTable(
			[]string{"PREFIX", "AGENCY", "RANGES"},
			rows,
			[]ui.Align{ui.AlignLeft, ui.AlignLeft, ui.AlignRight},
		))
		fmt.Printf("%d of %d groups\n", len(rows), res.Table().Len())
		return nil
	},
}

func init() {
	groupsCmd.Flags().StringVar(&flagGroupsFilter, "filter", "", "only groups whose agency contains TEXT or whose prefix starts with it")
	rootCmd.AddCommand(groupsCmd)
}
