package patient

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/careboard/careboard/pkg/pagination"
)

// Handler exposes the patient service over REST.
type Handler struct {
	svc    *Service
	drafts *DraftStore
}

// NewHandler creates a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc, drafts: NewDraftStore()}
}

// RegisterRoutes mounts the patient endpoints on g. Static segments are
// registered alongside /:id; echo routes them with static priority.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/patients", h.ListPatients)
	g.GET("/patients/stats", h.GetStats)
	g.GET("/patients/:id", h.GetPatient)
	g.POST("/patients", h.CreatePatient)
	g.PUT("/patients/:id", h.UpdatePatient)
	g.DELETE("/patients/:id", h.DeletePatient)

	g.GET("/patients/draft/:key", h.LoadDraft)
	g.PUT("/patients/draft/:key", h.SaveDraft)
	g.DELETE("/patients/draft/:key", h.ClearDraft)
}

// ListPatients returns the collection. With no query parameters it
// returns the plain JSON array the CRUD surface promises; with any of
// search, sortBy, sortDir, page, pageSize, or displayCount it evaluates
// the query engine and returns the paged envelope instead.
func (h *Handler) ListPatients(c echo.Context) error {
	if !hasQueryParams(c) {
		patients, err := h.svc.ListPatients(c.Request().Context())
		if err != nil {
			return httpError(err)
		}
		return c.JSON(http.StatusOK, patients)
	}

	q, err := queryFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result, err := h.svc.QueryPatients(c.Request().Context(), q)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pagination.Response{
		Data:         result.Visible,
		TotalMatched: result.TotalMatched,
		HasMore:      result.HasMore,
	})
}

// GetStats returns the analytics aggregates for the full collection.
func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GetPatient returns a single record.
func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.GetPatient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

// CreatePatient stores a new record; the store assigns the id.
func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	created, err := h.svc.CreatePatient(c.Request().Context(), &p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

// UpdatePatient replaces a record, preserving id and createdAt.
func (h *Handler) UpdatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	updated, err := h.svc.UpdatePatient(c.Request().Context(), c.Param("id"), &p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeletePatient removes a record and returns a success indicator.
func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.DeletePatient(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// SaveDraft overwrites the autosaved form state under a key.
func (h *Handler) SaveDraft(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}
	d := h.drafts.Save(c.Param("key"), body)
	return c.JSON(http.StatusOK, d)
}

// LoadDraft restores the autosaved form state, 404 when none exists.
func (h *Handler) LoadDraft(c echo.Context) error {
	d, ok := h.drafts.Load(c.Param("key"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "no draft saved")
	}
	return c.JSON(http.StatusOK, d)
}

// ClearDraft removes the autosaved form state after a successful submit.
func (h *Handler) ClearDraft(c echo.Context) error {
	h.drafts.Clear(c.Param("key"))
	return c.NoContent(http.StatusNoContent)
}

func hasQueryParams(c echo.Context) bool {
	for _, name := range []string{"search", "sortBy", "sortDir", "page", "pageSize", "displayCount"} {
		if c.QueryParams().Has(name) {
			return true
		}
	}
	return false
}

// queryFromContext builds an engine query from request parameters,
// rejecting unknown sort inputs before they reach Sort.
func queryFromContext(c echo.Context) (Query, error) {
	q := Query{
		Search:  c.QueryParam("search"),
		SortBy:  SortKey(c.QueryParam("sortBy")),
		SortDir: SortDir(c.QueryParam("sortDir")),
		Page:    pagination.FromContext(c),
	}
	if !ValidSortKey(q.SortBy) {
		return Query{}, errors.New("unknown sortBy: must be one of name, age, lastVisit, status")
	}
	if !ValidSortDir(q.SortDir) {
		return Query{}, errors.New("unknown sortDir: must be asc or desc")
	}
	if raw := c.QueryParam("displayCount"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return Query{}, errors.New("displayCount must be a positive integer")
		}
		q.Window = pagination.NewWindow(n)
	}
	return q, nil
}

// httpError translates the repository error taxonomy into transport
// status codes.
func httpError(err error) error {
	if verr, ok := AsValidation(err); ok {
		return echo.NewHTTPError(http.StatusBadRequest, verr.Error())
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	case errors.Is(err, ErrPermission):
		return echo.NewHTTPError(http.StatusForbidden, "permission denied")
	case errors.Is(err, ErrConnection):
		return echo.NewHTTPError(http.StatusBadGateway, "upstream patient store unreachable")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
