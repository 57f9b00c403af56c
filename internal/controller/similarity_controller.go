package controller

import (
	"inquiry-be/internal/dto"
	"inquiry-be/internal/pkg/serverutils"
	"inquiry-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISimilarityController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	RelatedSessions(ctx *fiber.Ctx) error
	RelatedDocuments(ctx *fiber.Ctx) error
	ConceptSearch(ctx *fiber.Ctx) error
}

type similarityController struct {
	similarityService service.ISimilarityService
}

func NewSimilarityController(similarityService service.ISimilarityService) ISimilarityController {
	return &similarityController{
		similarityService: similarityService,
	}
}

func (c *similarityController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/similarity")
	h.Post("/search", c.Search)
	h.Get("/sessions/:id", c.RelatedSessions)
	h.Get("/documents/:id", c.RelatedDocuments)

	r.Get("/search/concept", c.ConceptSearch)
}

func (c *similarityController) Search(ctx *fiber.Ctx) error {
	var req dto.SimilaritySearchRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.similarityService.SearchSessions(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search sessions", res))
}

func (c *similarityController) RelatedSessions(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	limit := ctx.QueryInt("limit")

	res, err := c.similarityService.RelatedSessions(ctx.Context(), id, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get related sessions", res))
}

func (c *similarityController) RelatedDocuments(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}
	limit := ctx.QueryInt("limit")

	res, err := c.similarityService.RelatedDocuments(ctx.Context(), id, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get related documents", res))
}

func (c *similarityController) ConceptSearch(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	limit := ctx.QueryInt("limit")

	var projectId *uuid.UUID
	if raw := ctx.Query("project_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid project id")
		}
		projectId = &id
	}

	res, err := c.similarityService.ConceptSearch(ctx.Context(), query, limit, projectId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success concept search", res))
}
