package controller

import (
	"fmt"

	"brandlink-be/internal/pkg/apperror"
	"brandlink-be/internal/pkg/serverutils"
	"brandlink-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Guards bundles the middleware every protected route group needs.
type Guards struct {
	Jwt             fiber.Handler
	WorkspaceMember fiber.Handler
}

func NewGuards(jwtSecret string, workspaceService service.IWorkspaceService) *Guards {
	return &Guards{
		Jwt:             serverutils.NewJwtMiddleware(jwtSecret),
		WorkspaceMember: RequireWorkspaceMember(workspaceService),
	}
}

// RequireWorkspaceMember rejects callers outside :workspaceId and stores the
// parsed id in Locals("workspace_id"). Must run after the JWT middleware.
func RequireWorkspaceMember(workspaceService service.IWorkspaceService) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := currentUserId(ctx)
		if err != nil {
			return err
		}
		workspaceId, err := uuid.Parse(ctx.Params("workspaceId"))
		if err != nil {
			return fmt.Errorf("%w: workspace id", apperror.ErrInvalidInput)
		}

		ok, err := workspaceService.IsMember(ctx.UserContext(), workspaceId, userId)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: not a member of this workspace", apperror.ErrForbidden)
		}

		ctx.Locals("workspace_id", workspaceId)
		return ctx.Next()
	}
}

func currentUserId(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid user id", apperror.ErrUnauthorized)
	}
	return userId, nil
}

func currentWorkspaceId(ctx *fiber.Ctx) uuid.UUID {
	id, _ := ctx.Locals("workspace_id").(uuid.UUID)
	return id
}

func paramId(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, name)
	}
	return id, nil
}

// parseBody maps body decode failures to 400 instead of fiber's 422.
func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error())
	}
	return serverutils.ValidateRequest(out)
}
