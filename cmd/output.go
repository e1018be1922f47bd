package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/paginate"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode json")
	}
	return nil
}

// printFacilities renders one page of results. Card view shows a block per
// facility, table view a row.
func printFacilities(out io.Writer, page paginate.Page[model.Facility], view browser.ViewMode) {
	if len(page.Items) == 0 {
		_, _ = fmt.Fprintln(out, "No facilities found.")
		return
	}

	if view == browser.ViewTable {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tLOCATION\tCARE TYPES\tFROM")
		_, _ = fmt.Fprintln(w, "--\t----\t--------\t----------\t----")
		for _, f := range page.Items {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				f.ID, f.FacilityName, f.Location(), strings.Join(f.CareTypes(), ", "), startingPrice(f))
		}
		_ = w.Flush()
	} else {
		for _, f := range page.Items {
			_, _ = fmt.Fprintf(out, "[%d] %s\n", f.ID, f.FacilityName)
			_, _ = fmt.Fprintf(out, "    %s\n", f.Location())
			if cts := f.CareTypes(); len(cts) > 0 {
				_, _ = fmt.Fprintf(out, "    %s\n", strings.Join(cts, " | "))
			}
			_, _ = fmt.Fprintf(out, "    from %s\n", startingPrice(f))
		}
	}

	_, _ = fmt.Fprintf(out, "Showing %d-%d of %d\n", page.Start+1, page.End, page.TotalItems)
}

func startingPrice(f model.Facility) string {
	p, ok := facility.MinPrice(f)
	if !ok {
		return model.NotAvailable
	}
	return facility.FormatPrice(strconv.FormatFloat(p, 'f', -1, 64))
}

// printNav renders the pager as "< 1 [2] 3 >".
func printNav(out io.Writer, nav paginate.Nav) {
	if nav.TotalPages <= 1 {
		return
	}
	var b strings.Builder
	if nav.HasPrev {
		b.WriteString("< ")
	}
	for i, n := range nav.Numbers {
		if i > 0 {
			b.WriteByte(' ')
		}
		if n == nav.Current {
			fmt.Fprintf(&b, "[%d]", n)
		} else {
			b.WriteString(strconv.Itoa(n))
		}
	}
	if nav.HasNext {
		b.WriteString(" >")
	}
	_, _ = fmt.Fprintf(out, "Page %d of %d  %s\n", nav.Current, nav.TotalPages, b.String())
}

func printProfile(out io.Writer, p browser.Profile) {
	f := p.Facility
	_, _ = fmt.Fprintf(out, "%s\n%s\n", f.FacilityName, p.Location)
	if p.OwnershipGroup != "" {
		_, _ = fmt.Fprintf(out, "Ownership: %s\n", p.OwnershipGroup)
	}
	_, _ = fmt.Fprintf(out, "Review score: %s\n", p.ReviewScore)
	if p.ProfileURL != "" {
		_, _ = fmt.Fprintf(out, "Profile: %s\n", p.ProfileURL)
	}

	_, _ = fmt.Fprintln(out, "\nStaff")
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, k := range p.KPIs {
		_, _ = fmt.Fprintf(w, "  %s:\t%d\n", k.Category, k.Count)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out, "\nRoom types and rates")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, r := range p.RoomRates {
		_, _ = fmt.Fprintf(w, "  %s:\t%s\n", r.Label, r.Price)
	}
	_ = w.Flush()

	if len(p.Amenities) > 0 {
		_, _ = fmt.Fprintln(out, "\nAmenities")
		for _, col := range p.Amenities {
			_, _ = fmt.Fprintf(out, "  %s\n", strings.Join(col, ", "))
		}
	}

	if p.Bio != "" {
		_, _ = fmt.Fprintf(out, "\n%s\n", p.Bio)
	}

	_, _ = fmt.Fprintln(out, "\nDirectory")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tNAME\tTITLE\tEMAIL\tPHONE")
	_, _ = fmt.Fprintln(w, "--------\t----\t-----\t-----\t-----")
	for _, g := range p.Directory.Groups {
		for _, m := range g.Members {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				g.Category, m.FullName(), m.JobTitle, m.Email, strings.Join(m.Phones(), ", "))
		}
	}
	_ = w.Flush()
}

func printResidents(out io.Writer, page paginate.Page[model.ResidentView]) {
	if len(page.Items) == 0 {
		_, _ = fmt.Fprintln(out, "No residents found for this facility.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tAGE\tCURRENT ADDRESS\tPRIOR ADDRESS\tPHONE\tSTATUS")
	_, _ = fmt.Fprintln(w, "----\t---\t---------------\t-------------\t-----\t------")
	for _, v := range page.Items {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n",
			v.FullName(), v.AgeYears,
			orNA(v.CurrentAddress), orNA(v.PastAddress1),
			strings.Join(residentPhones(v.Resident), ", "), v.Status)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, "Showing %d-%d of %d\n", page.Start+1, page.End, page.TotalItems)
}

func residentPhones(r model.Resident) []string {
	var out []string
	for _, p := range []string{r.PhoneNumber1, r.PhoneNumber2} {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NotAvailable
	}
	return s
}
