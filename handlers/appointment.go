package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicport/middleware"
	"clinicport/models"
	"clinicport/services/appointment"
	"clinicport/utils"
)

// AppointmentHandler exposes the scheduling engine over HTTP.
type AppointmentHandler struct {
	Service appointment.SchedulingService
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc appointment.SchedulingService) *AppointmentHandler {
	return &AppointmentHandler{Service: svc}
}

func actorFromContext(c *gin.Context) appointment.Actor {
	return appointment.Actor{
		AccountID: c.GetString(middleware.CtxAccountID),
		IsDoctor:  c.GetString(middleware.CtxRole) == models.RoleDoctor,
	}
}

// respondEngineError maps the engine's typed errors onto HTTP statuses.
// The distinct codes are what let the UI react appropriately, e.g.
// refreshing the slot picker on 409.
func respondEngineError(c *gin.Context, err error) {
	var (
		verr *appointment.ValidationError
		cerr *appointment.ConflictError
		terr *appointment.InvalidTransitionError
		nerr *appointment.NotFoundError
		ierr *appointment.InfrastructureError
	)
	switch {
	case errors.As(err, &verr):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", verr.Error())
	case errors.As(err, &cerr):
		utils.JSONError(c, http.StatusConflict, "Slot no longer available", "Please choose another slot")
	case errors.As(err, &terr):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Transition not allowed", terr.Error())
	case errors.As(err, &nerr):
		utils.JSONError(c, http.StatusNotFound, "Appointment not found", nerr.Error())
	case errors.As(err, &ierr):
		utils.JSONError(c, http.StatusServiceUnavailable, "Temporary storage failure", "Please retry shortly")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}

// BookHandler creates an appointment for the authenticated account.
func (h *AppointmentHandler) BookHandler(c *gin.Context) {
	var req appointment.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	req.PatientID = c.GetString(middleware.CtxAccountID)

	appt, err := h.Service.Book(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// MyAppointmentsHandler lists the authenticated account's appointments.
func (h *AppointmentHandler) MyAppointmentsHandler(c *gin.Context) {
	appts, err := h.Service.ListForPatient(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// GetAppointmentHandler fetches one appointment; only the owner and
// doctors may see it.
func (h *AppointmentHandler) GetAppointmentHandler(c *gin.Context) {
	appt, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	actor := actorFromContext(c)
	if !actor.IsDoctor && actor.AccountID != appt.PatientID {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "Not your appointment")
		return
	}
	c.JSON(http.StatusOK, appt)
}

// TransitionHandler applies accept/reject/cancel to an appointment.
func (h *AppointmentHandler) TransitionHandler(c *gin.Context) {
	var input struct {
		Action      string `json:"action" binding:"required"`
		DoctorNotes string `json:"doctorNotes"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	appt, err := h.Service.Transition(
		c.Request.Context(),
		c.Param("id"),
		actorFromContext(c),
		appointment.Action(input.Action),
		input.DoctorNotes,
	)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// RescheduleHandler moves an appointment to a new slot.
func (h *AppointmentHandler) RescheduleHandler(c *gin.Context) {
	var input struct {
		Date   string `json:"date" binding:"required"`
		Time   string `json:"time" binding:"required"`
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}

	appt, err := h.Service.Reschedule(
		c.Request.Context(),
		c.Param("id"),
		actorFromContext(c),
		input.Date,
		input.Time,
		input.Reason,
	)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// DaySheetHandler returns every appointment on a date for the doctor's
// daily review.
func (h *AppointmentHandler) DaySheetHandler(c *gin.Context) {
	appts, err := h.Service.DaySheet(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": c.Param("date"), "appointments": appts})
}
