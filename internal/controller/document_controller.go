package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/raneshrk02/regulations-chat/internal/dto"
	"github.com/raneshrk02/regulations-chat/internal/pkg/serverutils"
	"github.com/raneshrk02/regulations-chat/internal/service"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	GetRecent(ctx *fiber.Ctx) error
	GetByNumber(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) IDocumentController {
	return &documentController{
		documentService: documentService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Get("/recent", c.GetRecent)
	h.Get("/:number", c.GetByNumber)
}

func (c *documentController) GetRecent(ctx *fiber.Ctx) error {
	var query dto.RecentDocumentsQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(&query); err != nil {
		return err
	}

	limit := query.Limit
	if limit == 0 {
		limit = 10
	}

	res, err := c.documentService.GetRecent(ctx.Context(), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch recent documents", res))
}

func (c *documentController) GetByNumber(ctx *fiber.Ctx) error {
	number := ctx.Params("number")
	if number == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing document number")
	}

	res, err := c.documentService.GetByNumber(ctx.Context(), number)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success fetch document", res))
}
