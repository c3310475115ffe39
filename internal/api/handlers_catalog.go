package api

import (
	"net/http"
	"strconv"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
)

type jobListQuery struct {
	Keyword   string `validate:"max=100"`
	MinSalary int64  `validate:"gte=0"`
	Page      int    `validate:"gte=1"`
}

type jobPage struct {
	Jobs       []catalog.Job `json:"jobs"`
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	Total      int           `json:"total"`
	TotalPages int           `json:"totalPages"`
}

// ListJobs serves the job portal: optional q (title or company keyword),
// minSalary and page, four jobs per page.
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := jobListQuery{Keyword: r.URL.Query().Get("q"), Page: 1}
	if v := r.URL.Query().Get("minSalary"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "minSalary must be an integer")
			return
		}
		q.MinSalary = n
	}
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, ErrCodeBadRequest, "page must be an integer")
			return
		}
		q.Page = n
	}
	if !validateStruct(w, r, q) {
		return
	}

	matched := h.catalog.SearchJobs(catalog.JobQuery{Keyword: q.Keyword, MinSalary: q.MinSalary})
	jobs, pages := catalog.Paginate(matched, q.Page, catalog.JobsPerPage)
	respondOK(w, r, jobPage{
		Jobs:       jobs,
		Page:       q.Page,
		PerPage:    catalog.JobsPerPage,
		Total:      len(matched),
		TotalPages: pages,
	})
}

func (h *Handler) ListCertifications(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, h.catalog.Certifications)
}
