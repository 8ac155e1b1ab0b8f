package web

import (
	"errors"
	"io/fs"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html"
	"github.com/sirupsen/logrus"

	embedded "github.com/goserg/teammaker"
	"github.com/goserg/teammaker/internal/balance"
	"github.com/goserg/teammaker/internal/config"
	"github.com/goserg/teammaker/internal/rank"
	"github.com/goserg/teammaker/internal/service"
	"github.com/goserg/teammaker/internal/web/webpath"
)

type Server struct {
	rosterService *service.RosterService
	app           *fiber.App
	cfg           config.Server
	log           *logrus.Entry
}

func New(rs *service.RosterService, cfg config.Server, l *logrus.Logger) (*Server, error) {
	server := Server{
		rosterService: rs,
		cfg:           cfg,
		log:           l.WithField("from", "web"),
	}

	fsFS, err := fs.Sub(embedded.Views, "views")
	if err != nil {
		return nil, err
	}
	engine := html.NewFileSystem(http.FS(fsFS), ".html")
	engine.Reload(cfg.Debug)
	engine.Debug(cfg.Debug)
	engine.AddFunc("Short", rank.Short)
	engine.AddFunc("Long", rank.Long)
	engine.AddFunc("Position", position)

	app := fiber.New(fiber.Config{
		Views:                 engine,
		DisableStartupMessage: true,
		ErrorHandler:          server.handleError,
	})
	app.Use(server.logRequest)

	app.Get(webpath.Home, func(ctx *fiber.Ctx) error {
		return ctx.Redirect(webpath.ApiHealthz)
	})
	app.Get(webpath.ApiHealthz, func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	app.Get(webpath.ApiRoster, server.handleRoster)
	app.Get(webpath.ApiTeams, server.handleTeams)
	app.Get(webpath.Roster, server.handleRosterPage)
	server.app = app
	return &server, nil
}

func (s *Server) Serve() error {
	return s.app.Listen(s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port))
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) logRequest(ctx *fiber.Ctx) error {
	start := time.Now()
	err := ctx.Next()
	s.log.WithFields(logrus.Fields{
		"method":   ctx.Method(),
		"path":     ctx.Path(),
		"status":   ctx.Response().StatusCode(),
		"duration": time.Since(start),
	}).Debug("request")
	return err
}

func (s *Server) handleError(ctx *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		code = fe.Code
	case errors.Is(err, ErrBadChannel):
		code = fiber.StatusBadRequest
	case errors.Is(err, balance.ErrInvalidRosterSize):
		code = fiber.StatusConflict
	default:
		s.log.WithError(err).WithField("path", ctx.Path()).Error("request failed")
	}
	msg := err.Error()
	if code == fiber.StatusInternalServerError {
		msg = "internal error"
	}
	return ctx.Status(code).JSON(errorResponse{Error: msg})
}

func (s *Server) handleRoster(ctx *fiber.Ctx) error {
	channel, err := parseChannel(ctx)
	if err != nil {
		return err
	}
	roster, err := s.rosterService.List(ctx.UserContext(), channel)
	if err != nil {
		return err
	}
	return ctx.JSON(newRosterResponse(roster))
}

func (s *Server) handleTeams(ctx *fiber.Ctx) error {
	channel, err := parseChannel(ctx)
	if err != nil {
		return err
	}
	teams, err := s.rosterService.MakeTeams(ctx.UserContext(), channel)
	if err != nil {
		return err
	}
	return ctx.JSON(newTeamsResponse(teams))
}

func (s *Server) handleRosterPage(ctx *fiber.Ctx) error {
	channel, err := parseChannel(ctx)
	if err != nil {
		return err
	}
	roster, err := s.rosterService.List(ctx.UserContext(), channel)
	if err != nil {
		return err
	}
	page := newData("Roster "+channel).With("Roster", roster)
	if roster.Full() {
		teams, err := s.rosterService.MakeTeams(ctx.UserContext(), channel)
		if err != nil {
			page = page.WithErrors(err)
		} else {
			page = page.With("Teams", teams)
		}
	}
	return ctx.Render("roster", page, "layouts/main")
}

// position turns a zero based index into the list number shown to users.
func position(i int) int {
	return i + 1
}
