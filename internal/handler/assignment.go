package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

// AssignmentHandler manages operator assignments on vessels. Only a
// vessel's owner or an administrator may assign or remove operators, and
// removal is refused while the operator still has confirmed or active
// reservations on the vessel.
type AssignmentHandler struct {
	Vessels     *repository.VesselRepo
	Assignments *repository.AssignmentRepo
	Users       *repository.UserRepo
	Charter     *charter.Service
}

func NewAssignmentHandler(v *repository.VesselRepo, a *repository.AssignmentRepo, u *repository.UserRepo, svc *charter.Service) *AssignmentHandler {
	return &AssignmentHandler{Vessels: v, Assignments: a, Users: u, Charter: svc}
}

type assignReq struct {
	OperatorID uint64 `json:"operator_id"`
}

// ownedVessel loads the vessel and verifies the caller may manage it.
// Someone else's vessel answers repository.ErrForbidden.
func (h *AssignmentHandler) ownedVessel(ctx context.Context, vesselID uint64, actor charter.Actor) (*repository.VesselRecord, error) {
	rec, err := h.Vessels.GetByID(ctx, vesselID)
	if err != nil {
		return nil, err
	}
	if actor.Role != charter.RoleAdministrator && rec.OwnerID != actor.ID {
		return nil, repository.ErrForbidden
	}
	return rec, nil
}

// Assign links an operator to the vessel.
func (h *AssignmentHandler) Assign(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vesselID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil || req.OperatorID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "operator_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vessel, err := h.ownedVessel(ctx, vesselID, actor)
	if err != nil {
		return charterError(c, err)
	}

	operator, err := h.Users.GetByID(ctx, req.OperatorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "operator not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load operator failed"})
	}
	if operator.Role != string(charter.RoleVesselOperator) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user is not a vessel operator"})
	}

	rec := &repository.AssignmentRecord{VesselID: vessel.ID, OperatorID: req.OperatorID}
	if err := h.Assignments.Assign(ctx, rec); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "operator already assigned"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign failed"})
	}
	return c.JSON(http.StatusCreated, rec)
}

// Remove deletes an operator assignment unless the operator still holds
// confirmed or active reservations on the vessel.
func (h *AssignmentHandler) Remove(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vesselID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}
	operatorID, err := paramID(c, "operator_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid operator id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vessel, err := h.ownedVessel(ctx, vesselID, actor)
	if err != nil {
		return charterError(c, err)
	}

	if err := h.Charter.CanRemoveOperator(ctx, vessel.ID, operatorID); err != nil {
		return charterError(c, err)
	}
	if err := h.Assignments.Remove(ctx, vessel.ID, operatorID); err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "assignment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the vessel's assignments, newest first.
func (h *AssignmentHandler) List(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	vesselID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vessel, err := h.ownedVessel(ctx, vesselID, actor)
	if err != nil {
		return charterError(c, err)
	}

	out, err := h.Assignments.ListByVessel(ctx, vessel.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list assignments failed"})
	}
	if out == nil {
		out = []*repository.AssignmentRecord{}
	}
	return c.JSON(http.StatusOK, out)
}
