package controller

import (
	"bufio"
	"context"
	"encoding/json"

	"ai-recruiter-be/internal/dto"
	"ai-recruiter-be/internal/pkg/logger"
	"ai-recruiter-be/internal/pkg/serverutils"
	"ai-recruiter-be/internal/service"
	"ai-recruiter-be/pkg/agent"
	"ai-recruiter-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Chat(ctx *fiber.Ctx) error
	Workflow(ctx *fiber.Ctx) error
	ChatWs(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
	jwtSecret    string
	logger       logger.ILogger
}

func NewAgentController(agentService service.IAgentService, jwtSecret string, log logger.ILogger) IAgentController {
	return &agentController{
		agentService: agentService,
		jwtSecret:    jwtSecret,
		logger:       log,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/agent")
	h.Post("/chat", jwtMiddleware, c.Chat)
	h.Get("/workflow", c.Workflow)
	h.Get("/ws", c.ChatWs)
}

// Chat streams one turn as server-sent events.
func (c *agentController) Chat(ctx *fiber.Ctx) error {
	userID, ok := serverutils.UserID(ctx)
	if !ok {
		return apperror.Unauthorized("Unauthorized")
	}

	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.BadRequest("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	// The body writer runs after this handler returns, so the turn gets its
	// own context, cancelled when the client stops reading.
	streamCtx, cancel := context.WithCancel(context.WithoutCancel(ctx.UserContext()))
	events, err := c.agentService.Stream(streamCtx, userID, &req)
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for e := range events {
			frame, err := e.SSE()
			if err != nil {
				c.logger.Error("AgentController", "Failed to encode event", map[string]interface{}{"event": string(e.Type), "error": err.Error()})
				continue
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}

// Workflow returns the graph topology without running it.
func (c *agentController) Workflow(ctx *fiber.Ctx) error {
	topology, err := c.agentService.Workflow(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(topology)
}

// ChatWs serves the same stream over a websocket. Each inbound text frame is
// a ChatRequest; each event is written as one {event, data} frame.
func (c *agentController) ChatWs(ctx *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := serverutils.ParseUserID(serverutils.TokenFromRequest(ctx), c.jwtSecret)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid token"))
	}

	return websocket.New(func(conn *websocket.Conn) {
		c.serveChat(conn, userID)
	})(ctx)
}

func (c *agentController) serveChat(conn *websocket.Conn, userID uuid.UUID) {
	connCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.logger.Info("AgentController", "Chat websocket opened", map[string]interface{}{"user_id": userID.String()})
	defer c.logger.Info("AgentController", "Chat websocket closed", map[string]interface{}{"user_id": userID.String()})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req dto.ChatRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			err = apperror.BadRequest("Invalid request body")
			if !writeFailure(conn, err) {
				return
			}
			continue
		}
		if err := serverutils.ValidateRequest(req); err != nil {
			if !writeFailure(conn, err) {
				return
			}
			continue
		}

		events, err := c.agentService.Stream(connCtx, userID, &req)
		if err != nil {
			if !writeFailure(conn, err) {
				return
			}
			continue
		}
		for e := range events {
			if err := conn.WriteJSON(wsFrame(e)); err != nil {
				return
			}
		}
	}
}

func wsFrame(e agent.Event) dto.ChatFrame {
	return dto.ChatFrame{Event: string(e.Type), Data: e.Data}
}

// writeFailure reports a rejected request in the stream protocol. It returns
// false once the connection is unusable.
func writeFailure(conn *websocket.Conn, err error) bool {
	if werr := conn.WriteJSON(dto.ChatFrame{Event: string(agent.EventError), Data: err.Error()}); werr != nil {
		return false
	}
	return conn.WriteJSON(dto.ChatFrame{Event: string(agent.EventDone), Data: "end"}) == nil
}
