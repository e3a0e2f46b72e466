/*
Package server exposes the vesting service over HTTP.

Read endpoints answer from the last committed state. Every write endpoint
runs as one atomic operation of the service, on behalf of the address given
in the X-Lockup-Signer header.
*/
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/iov-one/lockup/app"
	"github.com/iov-one/lockup/x"
	"github.com/tendermint/tendermint/libs/log"
)

// Server is the HTTP API of a vesting service.
type Server struct {
	svc    *app.Service
	app    *fiber.App
	logger log.Logger
}

// New builds the API of svc. The service must be created with HeaderAuth
// as its authenticator for the signer header to be honored.
func New(svc *app.Service, logger log.Logger) *Server {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	s := &Server{svc: svc, logger: logger}
	s.app = fiber.New(fiber.Config{
		AppName:               "lockup",
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Use(s.logRequest)
	s.app.Use(signerMiddleware)

	s.app.Get("/pool", s.getPool)

	s.app.Get("/schedules", s.listSchedules)
	s.app.Post("/schedules", s.createSchedule)
	s.app.Get("/schedules/:id", s.getSchedule)
	s.app.Get("/schedules/:id/releasable", s.getReleasable)
	s.app.Post("/schedules/:id/release", s.release)
	s.app.Post("/schedules/:id/revoke", s.revoke)

	s.app.Get("/holders/:address/count", s.holderCount)
	s.app.Get("/holders/:address/last", s.holderLast)
	s.app.Get("/holders/:address/ids/:index", s.holderID)
	s.app.Get("/holders/:address/schedules/:index", s.holderSchedule)

	s.app.Post("/pause", s.setPaused)
	s.app.Post("/withdraw", s.withdraw)
	s.app.Post("/admin", s.transferAdmin)
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves the API on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting at most timeout for open requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status = StatusCode(err)
	}
	s.logger.Debug("request",
		"method", c.Method(),
		"path", c.Path(),
		"status", status,
		"signer", x.MainSigner(c.UserContext(), HeaderAuth{}).String(),
		"duration", time.Since(start)/time.Microsecond)
	return err
}
