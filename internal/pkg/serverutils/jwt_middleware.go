package serverutils

import (
	"context"
	"strings"

	"quicknotes-be/internal/constant"
	"quicknotes-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// TokenVerifier turns a bearer token into the user id it was issued for.
type TokenVerifier interface {
	Verify(tokenString string) (uuid.UUID, error)
}

type userIDKey struct{}

// JwtMiddleware guards every route registered after it. The user row is not
// re-read: a valid signature is the whole check.
func JwtMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		scheme, tokenStr, _ := strings.Cut(ctx.Get(fiber.HeaderAuthorization), " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if tokenStr == "" {
			return apperror.NewUnauthenticated(constant.MsgMissingToken, nil)
		}
		if !strings.EqualFold(scheme, "Bearer") {
			return apperror.NewUnauthenticated(constant.MsgInvalidToken, nil)
		}

		userID, err := verifier.Verify(tokenStr)
		if err != nil {
			return apperror.NewUnauthenticated(constant.MsgInvalidToken, err)
		}

		ctx.Locals(constant.ContextKeyUserID, userID)
		ctx.SetUserContext(WithUserID(ctx.UserContext(), userID))
		return ctx.Next()
	}
}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}

// UserIDFromCtx reads the id bound by JwtMiddleware. A handler mounted
// without the middleware gets Unauthenticated rather than a zero id.
func UserIDFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := ctx.Locals(constant.ContextKeyUserID).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperror.NewUnauthenticated(constant.MsgMissingToken, nil)
	}
	return userID, nil
}
