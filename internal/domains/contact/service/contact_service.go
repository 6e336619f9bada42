package service

import (
	"context"

	"petmarket-backend/internal/domains/contact/model"
	"petmarket-backend/internal/domains/contact/repository"
	"petmarket-backend/pkg/logger"
)

// ContactService - business logic contract for contact messages
type ContactService interface {
	Submit(ctx context.Context, req model.CreateContactRequest) (*model.ContactMessage, error)
}

type contactService struct {
	repo repository.ContactRepository
}

// NewContactService - Constructor
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Submit(ctx context.Context, req model.CreateContactRequest) (*model.ContactMessage, error) {
	msg := req.ToEntity()

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	logger.Info("Contact message received", map[string]interface{}{
		"message_id": msg.ID.String(),
		"subject":    msg.Subject,
	})

	return msg, nil
}
