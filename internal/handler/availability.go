package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

// AvailabilityHandler answers the read-only planning questions: is a
// vessel free over a range, and what would a charter cost.
type AvailabilityHandler struct {
	Charter *charter.Service
	Vessels *repository.VesselRepo
}

func NewAvailabilityHandler(svc *charter.Service, v *repository.VesselRepo) *AvailabilityHandler {
	return &AvailabilityHandler{Charter: svc, Vessels: v}
}

func rangeParams(c echo.Context) (start, end time.Time, ok bool) {
	var err error
	start, err = parseDate(c.QueryParam("start"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "start must be YYYY-MM-DD"})
		return start, end, false
	}
	end, err = parseDate(c.QueryParam("end"))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, echo.Map{"error": "end must be YYYY-MM-DD"})
		return start, end, false
	}
	return start, end, true
}

// Availability reports whether the vessel is free over ?start=..&end=..
// (YYYY-MM-DD, inclusive). Pending overlaps are listed as conflicts but
// only confirmed or active ones make the range unavailable. An optional
// ?exclude= reservation ID lets a reservation being re-evaluated ignore
// itself.
func (h *AvailabilityHandler) Availability(c echo.Context) error {
	vesselID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}
	start, end, ok := rangeParams(c)
	if !ok {
		return nil
	}
	var excludeID uint64
	if s := c.QueryParam("exclude"); s != "" {
		if excludeID, err = strconv.ParseUint(s, 10, 64); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid exclude id"})
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	avail, err := h.Charter.CheckAvailability(ctx, vesselID, start, end, excludeID)
	if err != nil {
		return charterError(c, err)
	}
	return c.JSON(http.StatusOK, avail)
}

type quoteResp struct {
	VesselID       uint64 `json:"vessel_id"`
	Days           int    `json:"days"`
	BaseCostCents  int64  `json:"base_cost_cents"`
	TotalCostCents int64  `json:"total_cost_cents"`
}

// Quote prices a hypothetical charter over ?start=..&end=.. against the
// vessel's rate schedule without creating anything. Identical inputs
// always produce the identical quote.
func (h *AvailabilityHandler) Quote(c echo.Context) error {
	vesselID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}
	start, end, ok := rangeParams(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vessel, err := h.Vessels.GetVessel(ctx, vesselID)
	if err != nil {
		return charterError(c, err)
	}

	days, err := charter.DaysInclusive(start, end)
	if err != nil {
		return charterError(c, err)
	}
	base, total, err := charter.EstimateCost(vessel.Rates, start, end, nil)
	if err != nil {
		return charterError(c, err)
	}
	return c.JSON(http.StatusOK, quoteResp{
		VesselID:       vesselID,
		Days:           days,
		BaseCostCents:  base,
		TotalCostCents: total,
	})
}
