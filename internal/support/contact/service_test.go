// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package contact_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-press/inkwell/internal/platform/apperr"
	"github.com/inkwell-press/inkwell/internal/support/contact"
)

type stubContactRepo struct {
	nextID   int64
	contacts map[int64]*contact.Contact
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{nextID: 1, contacts: make(map[int64]*contact.Contact)}
}

func (repo *stubContactRepo) Create(_ context.Context, entity *contact.Contact) error {
	entity.ID = repo.nextID
	repo.nextID++
	copied := *entity
	repo.contacts[entity.ID] = &copied
	return nil
}

func (repo *stubContactRepo) List(_ context.Context, _, _ int) ([]*contact.Contact, int, error) {
	result := make([]*contact.Contact, 0, len(repo.contacts))
	for _, entity := range repo.contacts {
		copied := *entity
		result = append(result, &copied)
	}
	return result, len(result), nil
}

func (repo *stubContactRepo) Delete(_ context.Context, id int64) error {
	if _, ok := repo.contacts[id]; !ok {
		return apperr.NotFound("Contact submission")
	}
	delete(repo.contacts, id)
	return nil
}

func newContactService() (*contact.Service, *stubContactRepo) {
	repo := newStubContactRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return contact.NewService(repo, logger), repo
}

func TestService_Submit(t *testing.T) {
	service, repo := newContactService()

	entity, err := service.Submit(context.Background(), contact.SubmitInput{
		Name:    "Marta",
		Email:   "marta@example.com",
		Subject: "Missing order confirmation",
		Body:    "I completed checkout but never got a confirmation.",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), entity.ID)
	assert.Contains(t, repo.contacts, entity.ID)
}

func TestService_Submit_RejectsInvalidInput(t *testing.T) {
	service, _ := newContactService()

	testCases := []struct {
		name  string
		input contact.SubmitInput
	}{
		{name: "missing name", input: contact.SubmitInput{Email: "a@b.co", Subject: "s", Body: "b"}},
		{name: "bad email", input: contact.SubmitInput{Name: "M", Email: "not-an-email", Subject: "s", Body: "b"}},
		{name: "missing subject", input: contact.SubmitInput{Name: "M", Email: "a@b.co", Body: "b"}},
		{name: "missing body", input: contact.SubmitInput{Name: "M", Email: "a@b.co", Subject: "s"}},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), testCase.input)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestService_AdminDelete(t *testing.T) {
	service, _ := newContactService()

	entity, err := service.Submit(context.Background(), contact.SubmitInput{
		Name: "Marta", Email: "marta@example.com", Subject: "s", Body: "b",
	})
	require.NoError(t, err)

	require.NoError(t, service.AdminDelete(context.Background(), entity.ID))

	err = service.AdminDelete(context.Background(), entity.ID)
	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
