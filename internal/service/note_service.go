package service

import (
	"context"
	"time"

	"quicknotes-be/internal/constant"
	"quicknotes-be/internal/dto"
	"quicknotes-be/internal/entity"
	"quicknotes-be/internal/mapper"
	"quicknotes-be/internal/pkg/apperror"
	"quicknotes-be/internal/pkg/logger"
	"quicknotes-be/internal/repository/specification"
	"quicknotes-be/internal/repository/unitofwork"
	"quicknotes-be/pkg/events"

	"github.com/google/uuid"
)

// INoteService is always called with the owner bound by the identity
// middleware. A note owned by someone else is indistinguishable from one
// that does not exist.
type INoteService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error)
	Update(ctx context.Context, userId uuid.UUID, noteId string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, noteId string) error
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	mapper           *mapper.NoteMapper
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		mapper:           mapper.NewNoteMapper(),
		logger:           log,
	}
}

func (c *noteService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperror.NewInvalidInput(constant.MsgNoteFieldsRequired)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	now := time.Now()
	note := entity.Note{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperror.NewInternal(err)
	}

	c.publish(ctx, events.NoteCreated, &note)

	res := c.mapper.ToResponse(&note)
	return &res, nil
}

func (c *noteService) List(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	specs := append(
		[]specification.Specification{specification.NoteOwnedByUser{UserID: userId}},
		specification.ChronologicalNotes()...,
	)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	return c.mapper.ToResponses(notes), nil
}

func (c *noteService) Update(ctx context.Context, userId uuid.UUID, noteId string, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperror.NewInvalidInput(constant.MsgNoteFieldsRequired)
	}

	id, err := uuid.Parse(noteId)
	if err != nil {
		return nil, apperror.NewNotFound(constant.MsgNoteNotFound)
	}

	owned := []specification.Specification{
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.NewInternal(err)
	}
	defer uow.Rollback()

	affected, err := uow.NoteRepository().UpdateContent(ctx, req.Title, req.Content, owned...)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if affected == 0 {
		return nil, apperror.NewNotFound(constant.MsgNoteNotFound)
	}

	note, err := uow.NoteRepository().FindOne(ctx, owned...)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if note == nil {
		return nil, apperror.NewNotFound(constant.MsgNoteNotFound)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.NewInternal(err)
	}

	c.publish(ctx, events.NoteUpdated, note)

	res := c.mapper.ToResponse(note)
	return &res, nil
}

func (c *noteService) Delete(ctx context.Context, userId uuid.UUID, noteId string) error {
	id, err := uuid.Parse(noteId)
	if err != nil {
		return apperror.NewNotFound(constant.MsgNoteNotFound)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	affected, err := uow.NoteRepository().Delete(ctx,
		specification.ByID{ID: id},
		specification.NoteOwnedByUser{UserID: userId},
	)
	if err != nil {
		return apperror.NewInternal(err)
	}
	if affected == 0 {
		return apperror.NewNotFound(constant.MsgNoteNotFound)
	}

	c.publish(ctx, events.NoteDeleted, &entity.Note{Id: id, UserId: userId})
	return nil
}

func (c *noteService) publish(ctx context.Context, eventType string, note *entity.Note) {
	if c.publisherService == nil {
		return
	}
	evt := events.New(eventType, map[string]interface{}{
		"note_id": note.Id,
		"user_id": note.UserId,
	})
	if err := c.publisherService.Publish(ctx, evt); err != nil {
		c.logger.Warn("note", "Failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
