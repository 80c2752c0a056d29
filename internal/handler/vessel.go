package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

// VesselHandler exposes vessel management for owners and administrators.
type VesselHandler struct {
	Vessels *repository.VesselRepo
}

func NewVesselHandler(v *repository.VesselRepo) *VesselHandler {
	return &VesselHandler{Vessels: v}
}

type vesselReq struct {
	Name             string `json:"name"`
	VesselType       string `json:"vessel_type"`
	Status           string `json:"status"`
	DailyRateCents   int64  `json:"daily_rate_cents"`
	WeeklyRateCents  *int64 `json:"weekly_rate_cents"`
	MonthlyRateCents *int64 `json:"monthly_rate_cents"`
}

// vesselStatuses are the operational states a vessel may be in. Only
// OPERATIONAL vessels are expected to take new charters, but the core does
// not police that; owners flip the flag as the fleet moves through refits.
var vesselStatuses = map[string]bool{
	"OPERATIONAL": true,
	"MAINTENANCE": true,
	"RETIRED":     true,
}

func (r *vesselReq) validate() string {
	if strings.TrimSpace(r.Name) == "" {
		return "name required"
	}
	if s := strings.TrimSpace(r.Status); s != "" && !vesselStatuses[s] {
		return "status must be OPERATIONAL, MAINTENANCE or RETIRED"
	}
	if r.DailyRateCents < 0 {
		return "daily_rate_cents must be non-negative"
	}
	if r.WeeklyRateCents != nil && *r.WeeklyRateCents < 0 {
		return "weekly_rate_cents must be non-negative"
	}
	if r.MonthlyRateCents != nil && *r.MonthlyRateCents < 0 {
		return "monthly_rate_cents must be non-negative"
	}
	return ""
}

// Create registers a new vessel owned by the caller.
func (h *VesselHandler) Create(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req vesselReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec := &repository.VesselRecord{
		OwnerID:          actor.ID,
		Name:             strings.TrimSpace(req.Name),
		VesselType:       strings.TrimSpace(req.VesselType),
		Status:           strings.TrimSpace(req.Status),
		DailyRateCents:   req.DailyRateCents,
		WeeklyRateCents:  req.WeeklyRateCents,
		MonthlyRateCents: req.MonthlyRateCents,
	}
	if err := h.Vessels.Create(ctx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create vessel failed"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// Get returns a single vessel. Any authenticated user may look a vessel up
// to request a charter on it.
func (h *VesselHandler) Get(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Vessels.GetByID(ctx, id)
	if err != nil {
		return charterError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// ListMine returns the caller's vessels.
func (h *VesselHandler) ListMine(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Vessels.ListByOwner(ctx, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list vessels failed"})
	}
	if out == nil {
		out = []*repository.VesselRecord{}
	}
	return c.JSON(http.StatusOK, out)
}

// ListAll returns every vessel in the fleet. Administrator only.
func (h *VesselHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Vessels.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list vessels failed"})
	}
	if out == nil {
		out = []*repository.VesselRecord{}
	}
	return c.JSON(http.StatusOK, out)
}

// Update modifies a vessel the caller owns. Administrators may update any
// vessel.
func (h *VesselHandler) Update(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}
	var req vesselReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := actor.ID
	if actor.Role == charter.RoleAdministrator {
		existing, err := h.Vessels.GetByID(ctx, id)
		if err != nil {
			return charterError(c, err)
		}
		ownerID = existing.OwnerID
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = "OPERATIONAL"
	}
	rec := &repository.VesselRecord{
		ID:               id,
		Name:             strings.TrimSpace(req.Name),
		VesselType:       strings.TrimSpace(req.VesselType),
		Status:           status,
		DailyRateCents:   req.DailyRateCents,
		WeeklyRateCents:  req.WeeklyRateCents,
		MonthlyRateCents: req.MonthlyRateCents,
	}
	if err := h.Vessels.UpdateByIDAndOwner(ctx, rec, ownerID); err != nil {
		return charterError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// Delete removes a vessel the caller owns. Vessels with reservations on
// file are protected by the schema and answer 409.
func (h *VesselHandler) Delete(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	ownerID := actor.ID
	if actor.Role == charter.RoleAdministrator {
		existing, err := h.Vessels.GetByID(ctx, id)
		if err != nil {
			return charterError(c, err)
		}
		ownerID = existing.OwnerID
	}

	if err := h.Vessels.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "vessel has reservations on file"})
		}
		return charterError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
