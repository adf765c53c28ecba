package controller

import (
	"quicknotes-be/internal/constant"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
	auth        fiber.Handler
}

// NewNoteController mounts every route behind auth.
func NewNoteController(noteService service.INoteService, auth fiber.Handler) INoteController {
	return &noteController{
		noteService: noteService,
		auth:        auth,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes", c.auth)
	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := serverutils.BindJSON(ctx, &req, constant.MsgNoteFieldsRequired); err != nil {
		return err
	}

	note, err := c.noteService.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.NoteMutationResponse{
		Message: constant.MsgNoteCreated,
		Note:    *note,
	})
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	notes, err := c.noteService.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(notes)
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.BindJSON(ctx, &req, constant.MsgNoteFieldsRequired); err != nil {
		return err
	}

	note, err := c.noteService.Update(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.NoteMutationResponse{
		Message: constant.MsgNoteUpdated,
		Note:    *note,
	})
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserIDFromCtx(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), userId, ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(dto.MessageResponse{Message: constant.MsgNoteDeleted})
}
