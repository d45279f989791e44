package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jpkrishna28/mls-point-locator/internal/model"
	"github.com/jpkrishna28/mls-point-locator/internal/repository"
	"github.com/jpkrishna28/mls-point-locator/internal/service"
	"github.com/jpkrishna28/mls-point-locator/internal/store"
)

// FacilityHandler serves every read and write endpoint over the facility
// store. All routes here sit behind the session gate.
type FacilityHandler struct {
	Store   *store.FacilityStore
	Updater *service.Updater
}

func NewFacilityHandler(st *store.FacilityStore, up *service.Updater) *FacilityHandler {
	return &FacilityHandler{Store: st, Updater: up}
}

// Index is the landing payload: the identity plus the district list the
// dashboard needs to draw its first filter.
func (h *FacilityHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"current_user": c.Get("username"),
		"districts":    h.Store.Districts(),
		"total_points": h.Store.Len(),
	})
}

// FilteredData answers the district/mandal table view. Both filters accept
// "All" (or absence) as a wildcard and combine with AND semantics.
func (h *FacilityHandler) FilteredData(c echo.Context) error {
	district := c.FormValue("district_name")
	mandal := c.FormValue("mandal_name")
	if district == "" {
		district = "All"
	}
	if mandal == "" {
		mandal = "All"
	}

	records := h.Store.Filter(district, mandal)
	data := store.Project(records, model.FilteredDataColumns)
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": data})
}

// Districts returns the sorted distinct district names.
func (h *FacilityHandler) Districts(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Store.Districts())
}

// Mandals returns the sorted distinct mandal names of one district. An
// unknown district is an empty list, not an error.
func (h *FacilityHandler) Mandals(c echo.Context) error {
	district := c.Param("district")
	return c.JSON(http.StatusOK, h.Store.Mandals(district))
}

// MLSPoints lists the facilities of a district+mandal pair with the map
// pin projection. Zero matches returns an empty array.
func (h *FacilityHandler) MLSPoints(c echo.Context) error {
	records := h.Store.Filter(c.Param("district"), c.Param("mandal"))
	return c.JSON(http.StatusOK, store.Project(records, model.MapPointColumns))
}

// SearchMLS matches the search term as a case-insensitive substring of the
// facility code.
func (h *FacilityHandler) SearchMLS(c echo.Context) error {
	term := c.Param("term")
	records := h.Store.SearchCode(term)
	return c.JSON(http.StatusOK, store.Project(records, model.SearchColumns))
}

// ViewDetails returns the full record for the detail page, every required
// key present (empty string when unset) and Aadhaar fields excluded.
func (h *FacilityHandler) ViewDetails(c echo.Context) error {
	return h.details(c, model.ViewDetailKeys)
}

// EditDetails returns the full record for the edit form, including the
// sensitive Aadhaar and nominee fields.
func (h *FacilityHandler) EditDetails(c echo.Context) error {
	return h.details(c, model.EditDetailKeys)
}

func (h *FacilityHandler) details(c echo.Context, keys []string) error {
	code := c.Param("code")
	rec, ok := h.Store.GetByCode(code)
	if !ok {
		return notFound(c, code)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"info":         store.WithDefaults(rec, keys),
		"current_user": c.Get("username"),
	})
}

// UpdateDetails applies a field patch to one facility. Success is only
// reported when both the backing table and the in-memory mirror were
// written; a database error never claims partial success.
func (h *FacilityHandler) UpdateDetails(c echo.Context) error {
	code := c.Param("code")

	fields, err := patchFields(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	username, _ := c.Get("username").(string)
	updated, err := h.Updater.Update(c.Request().Context(), code, fields, username)
	if err != nil {
		if errors.Is(err, repository.ErrFacilityNotFound) {
			return notFound(c, code)
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "updated": updated})
}

// patchFields reads the update payload from either a JSON object or a
// classic form post, flattening to column -> value.
func patchFields(c echo.Context) (map[string]string, error) {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ct, echo.MIMEApplicationJSON) {
		var body map[string]string
		if err := c.Bind(&body); err != nil {
			return nil, err
		}
		return body, nil
	}
	form, err := c.FormParams()
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(form))
	for k, vs := range form {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields, nil
}

func notFound(c echo.Context, code string) error {
	return c.JSON(http.StatusNotFound, echo.Map{
		"success": false,
		"error":   "no record found for MLS code " + code,
	})
}
