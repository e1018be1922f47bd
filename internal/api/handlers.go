package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/facility"
	"github.com/sells-group/scout-cli/internal/model"
	"github.com/sells-group/scout-cli/internal/paginate"
	"github.com/sells-group/scout-cli/internal/resident"
)

type healthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Facilities int    `json:"facilities"`
}

type facilitiesResponse struct {
	paginate.Page[model.Facility]
	Facets facility.Facets `json:"facets"`
	Nav    paginate.Nav    `json:"nav"`
}

type residentsResponse struct {
	paginate.Page[model.ResidentView]
	Counts map[model.ResidentStatus]int `json:"counts"`
	Nav    paginate.Nav                 `json:"nav"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "ok",
		Version:    s.catalog.Version.String(),
		Facilities: len(s.catalog.Facilities),
	})
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, facility.FilterOptions())
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	price, err := facility.ParsePriceCategory(q.Get("price"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid price category")
		return
	}
	view, err := browser.ParseViewMode(q.Get("view"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid view mode")
		return
	}
	page, ok := parsePage(q)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}

	sess := browser.NewSession(s.catalog.Facilities, s.sizes)
	sess.SetView(view)
	sess.SetSearchTerm(q.Get("q"))
	sess.SetStates(multi(q, "state")...)
	sess.SetCareTypes(multi(q, "care_type")...)
	sess.SetPrice(price)
	sess.SetPage(page)

	res := sess.Results()
	writeJSON(w, http.StatusOK, facilitiesResponse{
		Page:   res,
		Facets: sess.Facets(),
		Nav:    paginate.NavOf(res),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	profile, found := browser.BuildProfile(s.catalog.Facilities, s.catalog.Contacts, s.linker, id, r.URL.Query().Get("q"))
	if !found {
		writeError(w, http.StatusNotFound, "facility not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleResidents(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid facility id")
		return
	}
	page, ok := parsePage(r.URL.Query())
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	f, found := facility.FindByID(s.catalog.Facilities, id)
	if !found {
		writeError(w, http.StatusNotFound, "facility not found")
		return
	}

	list := browser.NewResidentList(s.resolver.ForFacility(s.catalog.Residents, f), s.sizes.Residents)
	list.SetSearchTerm(r.URL.Query().Get("q"))
	list.SetPage(page)

	res := list.Results()
	writeJSON(w, http.StatusOK, residentsResponse{
		Page:   res,
		Counts: resident.Count(list.Filtered()),
		Nav:    paginate.NavOf(res),
	})
}

func parseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil
}

func parsePage(q url.Values) (int, bool) {
	raw := q.Get("page")
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}

// multi collects a repeated or comma-separated query parameter.
func multi(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
