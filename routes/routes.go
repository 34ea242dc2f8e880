package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinicport/handlers"
	"clinicport/middleware"
	"clinicport/utils"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Auth        *handlers.AuthHandler
	Schedule    *handlers.ScheduleHandler
	Appointment *handlers.AppointmentHandler
}

// RegisterRoutes attaches all portal endpoints to the router.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	registerHealthRoute(r)
	registerAuthRoutes(r, hb)
	registerScheduleRoutes(r, hb)
	registerAppointmentRoutes(r, hb)
}

func registerAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
		api.POST("/logout", middleware.JWTAuthMiddleware(), hb.Auth.LogoutHandler)
	}
}

func registerScheduleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/schedule")
	{
		// Public: the picker needs these before sign-in completes.
		api.GET("/config/:date", hb.Schedule.ConfigHandler)
		api.GET("/availability/:date", hb.Schedule.AvailabilityHandler)
	}
}

func registerAppointmentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.POST("", hb.Appointment.BookHandler)
		api.GET("/mine", hb.Appointment.MyAppointmentsHandler)
		api.GET("/id/:id", hb.Appointment.GetAppointmentHandler)
		api.POST("/id/:id/transition", hb.Appointment.TransitionHandler)
		api.PUT("/id/:id/reschedule", hb.Appointment.RescheduleHandler)

		doctor := api.Group("")
		doctor.Use(middleware.DoctorOnlyMiddleware())
		doctor.GET("/day/:date", hb.Appointment.DaySheetHandler)
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}
