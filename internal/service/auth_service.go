package service

import (
	"context"
	"errors"

	"quicknotes-be/internal/constant"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/pkg/apperror"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/pkg/security"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/pkg/events"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

// TokenIssuer signs a bearer token for a user id.
type TokenIssuer interface {
	Issue(userID uuid.UUID) (string, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	hasher         security.IPasswordHasher
	tokens         TokenIssuer
	eventPublisher events.Publisher
	logger         logger.ILogger
}

// NewAuthService wires the credential flow. eventPublisher may be nil.
func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	hasher security.IPasswordHasher,
	tokens TokenIssuer,
	eventPublisher events.Publisher,
	log logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		hasher:         hasher,
		tokens:         tokens,
		eventPublisher: eventPublisher,
		logger:         log,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserDTO, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.NewInvalidInput(constant.MsgCredentialsRequired)
	}
	if len(req.Password) > security.MaxPasswordBytes {
		return nil, apperror.NewInvalidInput(constant.MsgPasswordTooLong)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if existing != nil {
		return nil, apperror.NewDuplicateUsername(constant.MsgUsernameTaken)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	user := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
	}

	// The unique index settles two registrations racing past the lookup.
	if err := uow.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.NewDuplicateUsername(constant.MsgUsernameTaken)
		}
		return nil, apperror.NewInternal(err)
	}

	s.logger.Info("auth", "User registered", map[string]interface{}{"user_id": user.Id})
	s.publish(ctx, events.New(events.UserRegistered, map[string]interface{}{
		"user_id":  user.Id,
		"username": user.Username,
	}))

	return &dto.UserDTO{Id: user.Id, Username: user.Username}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, apperror.NewInvalidInput(constant.MsgCredentialsRequired)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if user == nil {
		return nil, apperror.NewNotFound(constant.MsgUserNotFound)
	}

	ok, err := s.hasher.Verify(user.PasswordHash, req.Password)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if !ok {
		return nil, apperror.NewInvalidCredentials(constant.MsgInvalidCredentials)
	}

	signed, err := s.tokens.Issue(user.Id)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	s.publish(ctx, events.New(events.UserLogin, map[string]interface{}{
		"user_id": user.Id,
	}))

	return &dto.LoginResponse{Token: signed}, nil
}

// publish never fails the caller; audit events are auxiliary.
func (s *authService) publish(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("auth", "Failed to publish event", map[string]interface{}{
			"event": evt.EventType(),
			"error": err.Error(),
		})
	}
}
