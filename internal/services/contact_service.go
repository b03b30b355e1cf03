package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"

	"returnit_backend/internal/email"
	"returnit_backend/internal/logger"
	"returnit_backend/internal/repositories"
	"returnit_backend/internal/services/dto"
	"returnit_backend/pkg/apperrors"
)

const contactBodyTemplate = `Dear User,

We are reaching out regarding a report submitted to our Lost & Found system
about an item that may match something you have reported as missing.

Item Details:
%s

If this item seems to be yours, please reply directly to the following email
address to confirm ownership and arrange for its return:
%s

In your response, include any identifying details that can help verify the
item belongs to you (serial number, stickers, or other unique marks).

Best regards,
ReturnIt Lost & Found
`

type ContactService interface {
	// ContactOwner resolves the owner's registered address and sends them an
	// inquiry about one of their reports.
	ContactOwner(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) error
}

type contactService struct {
	users  repositories.UserRepository
	sender email.Sender
}

func NewContactService(users repositories.UserRepository, sender email.Sender) ContactService {
	return &contactService{users: users, sender: sender}
}

func (s *contactService) ContactOwner(ctx context.Context, db *gorm.DB, req *dto.ContactRequest) error {
	owner, err := s.users.FindByID(db, req.OwnerID)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.NewNotFoundError("contact", "Item owner not found")
	}
	if err != nil {
		return apperrors.RepositoryError("contact", err)
	}

	msg := &email.Message{
		To:      owner.Email,
		ReplyTo: req.SenderEmail,
		Subject: fmt.Sprintf("Lost & Found: Inquiry about %q", req.Title),
		Body:    fmt.Sprintf(contactBodyTemplate, req.ItemDetails, req.SenderEmail),
	}

	if err := s.sender.Send(msg); err != nil {
		logger.CtxWithError(ctx, "failed to send contact email", err, "owner_id", req.OwnerID)
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "contact", "Failed to send email", http.StatusInternalServerError)
	}

	logger.CtxInfo(ctx, "contact email sent", "owner_id", req.OwnerID)
	return nil
}
