package main

import (
	"fmt"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/config"
	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/paginate"
	"github.com/sells-group/scout-cli/internal/resident"
)

var (
	residentsQuery string
	residentsPage  int
	residentsJSON  bool
)

type residentsResult struct {
	paginate.Page[model.ResidentView]
	Counts map[model.ResidentStatus]int `json:"counts"`
	Nav    paginate.Nav                 `json:"nav"`
}

var residentsCmd = &cobra.Command{
	Use:   "residents <id>",
	Short: "List a facility's residents and leads",
	Long:  "Lists residents linked to the facility who meet the minimum age, marking each as a Resident or a Lead by comparing addresses.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return eris.Errorf("invalid facility id %q", args[0])
		}

		e, err := initEnv(cmd.Context(), config.ModeQuery)
		if err != nil {
			return err
		}

		f, ok := facility.FindByID(e.Catalog.Facilities, id)
		if !ok {
			return eris.New("facility not found")
		}

		views := e.Resolver.ForFacility(e.Catalog.Residents, f)
		list := browser.NewResidentList(views, e.Sizes.Residents)
		list.SetSearchTerm(residentsQuery)
		list.SetPage(residentsPage)

		res := list.Results()
		out := cmd.OutOrStdout()
		if residentsJSON {
			return writeJSON(out, residentsResult{
				Page:   res,
				Counts: resident.Count(list.Filtered()),
				Nav:    paginate.NavOf(res),
			})
		}
		_, _ = fmt.Fprintf(out, "%s\n\n", f.FacilityName)
		printResidents(out, res)
		printNav(out, paginate.NavOf(res))
		return nil
	},
}

func init() {
	residentsCmd.Flags().StringVarP(&residentsQuery, "q", "q", "", "filter by resident name")
	residentsCmd.Flags().IntVar(&residentsPage, "page", 1, "page number")
	residentsCmd.Flags().BoolVar(&residentsJSON, "json", false, "print JSON instead of text")
	rootCmd.AddCommand(residentsCmd)
}
