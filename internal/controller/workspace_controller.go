package controller

import (
	"brandlink-be/internal/dto"
	"brandlink-be/internal/pkg/serverutils"
	"brandlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	AddMember(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service service.IWorkspaceService
	guards  *Guards
}

func NewWorkspaceController(service service.IWorkspaceService, guards *Guards) IWorkspaceController {
	return &workspaceController{service: service, guards: guards}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/workspace/v1", c.guards.Jwt)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("/:workspaceId/members", c.guards.WorkspaceMember, c.AddMember)
}

func (c *workspaceController) GetAll(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all workspace", res))
}

func (c *workspaceController) Create(ctx *fiber.Ctx) error {
	userId, err := currentUserId(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateWorkspaceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create workspace", res))
}

func (c *workspaceController) AddMember(ctx *fiber.Ctx) error {
	var req dto.AddMemberRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AddMember(ctx.UserContext(), currentWorkspaceId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add member", res))
}
