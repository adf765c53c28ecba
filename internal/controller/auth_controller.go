package controller

import (
	"quicknotes-be/internal/constant"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/pkg/apperror"
	"quicknotes-be/internal/pkg/serverutils"
	"quicknotes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
}

func NewAuthController(service service.IAuthService) IAuthController {
	return &authController{service: service}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/register", c.Register)
	h.Post("/login", c.Login)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.BindJSON(ctx, &req, constant.MsgCredentialsRequired); err != nil {
		return err
	}

	user, err := c.service.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(dto.RegisterResponse{
		Message: constant.MsgUserRegistered,
		User:    *user,
	})
}

// Login answers 400 for an unknown username as well as a wrong password so
// the status code does not tell the two apart.
func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.BindJSON(ctx, &req, constant.MsgCredentialsRequired); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		if apperror.Is(err, apperror.NotFound) {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(apperror.From(err).Message))
		}
		return err
	}

	return ctx.JSON(res)
}
