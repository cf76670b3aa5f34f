package controller

import (
	"ai-recruiter-be/internal/pkg/serverutils"
	"ai-recruiter-be/internal/service"
	"ai-recruiter-be/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeBaseController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	IndexDocument(ctx *fiber.Ctx) error
	GetTask(ctx *fiber.Ctx) error
}

type knowledgeBaseController struct {
	indexingService service.IIndexingService
}

func NewKnowledgeBaseController(indexingService service.IIndexingService) IKnowledgeBaseController {
	return &knowledgeBaseController{
		indexingService: indexingService,
	}
}

func (c *knowledgeBaseController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	kb := r.Group("/knowledge-bases", jwtMiddleware)
	kb.Post("/documents/:id/index", c.IndexDocument)

	tasks := r.Group("/tasks", jwtMiddleware)
	tasks.Get("/:id", c.GetTask)
}

func (c *knowledgeBaseController) IndexDocument(ctx *fiber.Ctx) error {
	userID, ok := serverutils.UserID(ctx)
	if !ok {
		return apperror.Unauthorized("Unauthorized")
	}
	documentID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.BadRequest("Invalid document ID")
	}

	res, err := c.indexingService.Enqueue(ctx.UserContext(), userID, documentID)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Indexing queued", res))
}

func (c *knowledgeBaseController) GetTask(ctx *fiber.Ctx) error {
	userID, ok := serverutils.UserID(ctx)
	if !ok {
		return apperror.Unauthorized("Unauthorized")
	}
	taskID, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.BadRequest("Invalid task ID")
	}

	res, err := c.indexingService.GetTask(ctx.UserContext(), userID, taskID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Task retrieved", res))
}
