package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"returnit_backend/internal/email"
	"returnit_backend/internal/models"
	"returnit_backend/internal/repositories"
	"returnit_backend/internal/services/dto"
	"returnit_backend/pkg/apperrors"
)

type fakeUserRepo struct {
	users  map[string]*models.User
	tokens map[string]*models.RefreshToken
}

func (r *fakeUserRepo) FindByID(db *gorm.DB, id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Create(db *gorm.DB, user *models.User) error {
	if _, err := r.FindByEmail(db, user.Email); err == nil {
		return repositories.ErrUserAlreadyExists
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(db *gorm.DB, user *models.User) error { return nil }

func (r *fakeUserRepo) Delete(db *gorm.DB, userID string) error {
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, userID)
	return nil
}

func (r *fakeUserRepo) CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error {
	if r.tokens == nil {
		r.tokens = map[string]*models.RefreshToken{}
	}
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return rt, nil
}

func (r *fakeUserRepo) DeleteRefreshToken(db *gorm.DB, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeUserRepo) CleanExpiredRefreshTokens(db *gorm.DB) error {
	for key, rt := range r.tokens {
		if time.Now().After(rt.ExpiresAt) {
			delete(r.tokens, key)
		}
	}
	return nil
}

type recordingSender struct {
	sent    []*email.Message
	sendErr error
}

func (s *recordingSender) Send(msg *email.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

func contactRequest(ownerID string) *dto.ContactRequest {
	return &dto.ContactRequest{
		OwnerID:     ownerID,
		SenderEmail: "finder@example.com",
		Title:       "Black wallet",
		ItemDetails: "Black leather wallet with a student ID inside",
	}
}

func TestContactOwner_SendsEmailToOwner(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*models.User{
		"owner-1": {Email: "owner@example.com"},
	}}
	sender := &recordingSender{}
	svc := NewContactService(repo, sender)

	err := svc.ContactOwner(context.Background(), nil, contactRequest("owner-1"))
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "owner@example.com", msg.To)
	assert.Equal(t, "finder@example.com", msg.ReplyTo)
	assert.Contains(t, msg.Subject, "Black wallet")
	assert.Contains(t, msg.Body, "student ID")
	assert.Contains(t, msg.Body, "finder@example.com")
}

func TestContactOwner_UnknownOwner(t *testing.T) {
	svc := NewContactService(&fakeUserRepo{users: map[string]*models.User{}}, &recordingSender{})

	err := svc.ContactOwner(context.Background(), nil, contactRequest("missing"))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestContactOwner_SenderFailure(t *testing.T) {
	repo := &fakeUserRepo{users: map[string]*models.User{
		"owner-1": {Email: "owner@example.com"},
	}}
	svc := NewContactService(repo, &recordingSender{sendErr: assert.AnError})

	err := svc.ContactOwner(context.Background(), nil, contactRequest("owner-1"))
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeExternalServiceError, appErr.Code)
}
