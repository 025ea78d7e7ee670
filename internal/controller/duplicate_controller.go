package controller

import (
	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/serverutils"
	"brandlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDuplicateController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Scan(ctx *fiber.Ctx) error
	PreviewMerge(ctx *fiber.Ctx) error
	Merge(ctx *fiber.Ctx) error
}

type duplicateController struct {
	service service.IDuplicateService
	guards  *Guards
}

func NewDuplicateController(service service.IDuplicateService, guards *Guards) IDuplicateController {
	return &duplicateController{service: service, guards: guards}
}

func (c *duplicateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1/:workspaceId/duplicates", c.guards.Jwt, c.guards.WorkspaceMember)
	h.Get("", c.GetAll)
	h.Post("/scan", c.Scan)
	h.Post("/merge/preview", c.PreviewMerge)
	h.Post("/merge", c.Merge)
}

func (c *duplicateController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.FindDuplicates(ctx.UserContext(), currentWorkspaceId(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get duplicate groups", res))
}

func (c *duplicateController) Scan(ctx *fiber.Ctx) error {
	res, err := c.service.ScanWorkspace(ctx.UserContext(), currentWorkspaceId(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success scan workspace", res))
}

func (c *duplicateController) PreviewMerge(ctx *fiber.Ctx) error {
	var req dto.MergeContactsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.PreviewMerge(ctx.UserContext(), currentWorkspaceId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview merge", res))
}

func (c *duplicateController) Merge(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.MergeContactsRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Merge(ctx.UserContext(), currentWorkspaceId(ctx), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success merge contacts", res))
}
