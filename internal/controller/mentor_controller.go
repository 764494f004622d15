package controller

import (
	"cet-mentor-be/internal/dto"
	"cet-mentor-be/internal/pkg/serverutils"
	"cet-mentor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMentorController interface {
	RegisterRoutes(r fiber.Router)
	Suggest(ctx *fiber.Ctx) error
	Predict(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
	Feedback(ctx *fiber.Ctx) error
	Reload(ctx *fiber.Ctx) error
}

type mentorController struct {
	mentorService service.IMentorService
}

func NewMentorController(mentorService service.IMentorService) IMentorController {
	return &mentorController{
		mentorService: mentorService,
	}
}

func (c *mentorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/mentor/v1")
	h.Post("suggest", c.Suggest)
	h.Post("predict", c.Predict)
	h.Post("chat", c.Chat)
	h.Post("feedback", c.Feedback)
	h.Post("admin/reload", c.Reload)
}

func (c *mentorController) Suggest(ctx *fiber.Ctx) error {
	var req dto.SuggestRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.Suggest(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success suggest colleges", res))
}

func (c *mentorController) Predict(ctx *fiber.Ctx) error {
	var req dto.PredictRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.Predict(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success predict admission chance", res))
}

func (c *mentorController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.mentorService.Chat(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success chat", res))
}

func (c *mentorController) Feedback(ctx *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.mentorService.RecordFeedback(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success record feedback", nil))
}

func (c *mentorController) Reload(ctx *fiber.Ctx) error {
	res, err := c.mentorService.ReloadKnowledge(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reload knowledge base", res))
}
