package transport

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/velvet-labs/velvet/internal/transport/middleware"
)

type Handlers struct {
	Events     *EventHandler
	Attendance *AttendanceHandler
	Gigs       *GigHandler
	Wallets    *WalletHandler
	Splits     *SplitHandler
	Revenue    *RevenueHandler
	Users      *UserHandler
}

func InitRoutes(h *Handlers, requestTimeout time.Duration) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Timeout(requestTimeout))

	api := router.Group("/api/v1")
	{
		events := api.Group("/events")
		{
			events.POST("", h.Events.CreateEvent)
			events.GET("", h.Events.ListEvents)
			events.GET("/:id", h.Events.GetEvent)
			events.POST("/:id/publish", h.Events.PublishEvent)
			events.POST("/:id/fund", h.Events.MarkAsFunded)
			events.POST("/:id/cancel", h.Events.CancelEvent)
			events.POST("/:id/complete", h.Events.CompleteEvent)

			events.GET("/:id/attendees", h.Attendance.ListAttendees)
			events.POST("/:id/rsvp", h.Attendance.RSVP)
			events.POST("/:id/check-in", h.Attendance.CheckIn)
			events.POST("/:id/cancel-rsvp", h.Attendance.CancelRSVP)
			events.POST("/:id/confirm-rsvp", h.Attendance.ConfirmRSVP)
			events.POST("/:id/excuse", h.Attendance.ExcuseAttendee)
			events.POST("/:id/no-show-sweep", h.Attendance.RunNoShowSweep)
		}

		gigs := api.Group("/gigs")
		{
			gigs.POST("/availabilities", h.Gigs.PostAvailability)
			gigs.GET("/availabilities", h.Gigs.ListOpenAvailabilities)
			gigs.POST("/applications", h.Gigs.ApplyToGig)
			gigs.POST("/applications/:id/accept", h.Gigs.AcceptApplication)
			gigs.POST("/applications/:id/reject", h.Gigs.RejectApplication)
		}

		wallets := api.Group("/wallets")
		{
			wallets.GET("/:user_id", h.Wallets.GetWallet)
			wallets.POST("/:user_id/deposit", h.Wallets.Deposit)
			wallets.POST("/:user_id/withdraw", h.Wallets.Withdraw)
			wallets.POST("/:user_id/lock", h.Wallets.LockFunds)
			wallets.POST("/:user_id/release", h.Wallets.ReleaseFunds)
		}

		splits := api.Group("/splits")
		{
			splits.POST("", h.Splits.CreateSplit)
			splits.GET("/:id", h.Splits.GetSplit)
			splits.POST("/:id/pay", h.Splits.RecordPayment)
		}

		revenue := api.Group("/revenue")
		{
			revenue.POST("/distributions", h.Revenue.CalculateDistribution)
			revenue.GET("/distributions/:id", h.Revenue.GetDistribution)
			revenue.POST("/distributions/:id/process", h.Revenue.ProcessDistribution)
		}

		users := api.Group("/users")
		{
			users.POST("/register", h.Users.Register)
			users.GET("/:id", h.Users.GetUser)
			users.POST("/:id/use-invite", h.Users.UseInvite)
			users.POST("/:id/debt", h.Users.RecordDebt)
			users.POST("/:id/settle-debt", h.Users.SettleDebt)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
