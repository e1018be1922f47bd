package main

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/config"
)

var (
	profileQuery string
	profileJSON  bool
)

var profileCmd = &cobra.Command{
	Use:   "profile [id]",
	Short: "Show a facility profile and staff directory",
	Long:  "Shows the overview, room rates, amenities, and categorized staff directory of one facility. --q looks the facility up by name instead of id.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := 0
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return eris.Errorf("invalid facility id %q", args[0])
			}
			id = n
		} else if profileQuery == "" {
			return eris.New("a facility id or --q is required")
		}

		e, err := initEnv(cmd.Context(), config.ModeQuery)
		if err != nil {
			return err
		}

		p, ok := browser.BuildProfile(e.Catalog.Facilities, e.Catalog.Contacts, e.Linker, id, profileQuery)
		if !ok {
			return eris.New("facility not found")
		}

		out := cmd.OutOrStdout()
		if profileJSON {
			return writeJSON(out, p)
		}
		printProfile(out, p)
		return nil
	},
}

func init() {
	profileCmd.Flags().StringVarP(&profileQuery, "q", "q", "", "find the facility by name")
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(profileCmd)
}
