package cmd

import (
	"errors"
	"fmt"

	"github.com/brogergvhs/isbnrange/internal/config"
	"github.com/brogergvhs/isbnrange/internal/isbn"

	"github.com/spf13/cobra"
)

var groupCmd = &cobra.Command{
	Use:   "group ISBN",
	Short: "Show the registration group and registrant rule an ISBN falls in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, log, err := loadRuntime(config.Options{})
		if err != nil {
			return err
		}

		res, err := loadTable(cfg, log).Wait(cmd.Context())
		if err != nil {
			return err
		}

		loc, err := res.Resolve(args[0])
		if errors.Is(err, isbn.ErrGroupNotFound) {
			fmt.Printf("%s: no registration group identified\n", loc.Digits)
			return err
		}
		if err != nil {
			return err
		}

		registrant, publication, ok := loc.Split()

		fmt.Printf("ISBN:        %s\n", loc.Hyphenated())
		fmt.Printf("Group:       %s\n", loc.Group.Prefix)
		fmt.Printf("Agency:      %s\n", loc.Group.Agency)
		if ok {
			fmt.Printf("Registrant:  %s\n", registrant)
			fmt.Printf("Publication: %s\n", publication)
		} else {
			fmt.Printf("Registrant:  undetermined (%s is in no published range)\n", registrant)
		}
		fmt.Printf("Check digit: %s\n", loc.Digits.CheckDigit())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(groupCmd)
}
