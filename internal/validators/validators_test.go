// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/airguard-admin/models"
)

func validForm() models.UserForm {
	return models.UserForm{
		AccountID: "2021-000123",
		Username:  "Jane Doe",
		Email:     "jane@example.com",
		Role:      models.RoleStudent,
		Status:    models.StatusReady,
	}
}

func TestUserValidator_ValidForm(t *testing.T) {
	v := NewUserValidator()
	require.NoError(t, v.Validate(context.Background(), validForm()))

	f := validForm()
	f.Email = ""
	f.Status = ""
	assert.NoError(t, v.Validate(context.Background(), &f), "email and status are optional")
}

func TestUserValidator_CollectsEveryField(t *testing.T) {
	v := NewUserValidator()
	form := models.UserForm{AccountID: "short", Username: "  ", Email: "nope", Role: "Guest", Status: "Gone"}

	err := v.Validate(context.Background(), form)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	assert.Equal(t, FieldErrors{
		FieldAccountID: MsgAccountIDTooShort,
		FieldUsername:  MsgNameRequired,
		FieldEmail:     MsgInvalidEmail,
		FieldRole:      MsgInvalidRole,
		FieldStatus:    MsgInvalidStatus,
	}, Fields(err))
}

func TestUserValidator_Fields(t *testing.T) {
	v := NewUserValidator()
	form := validForm()
	form.AccountID = "x"

	// only the requested field is checked
	assert.NoError(t, v.Validate(context.Background(), form, FieldUsername, FieldEmail))
	assert.Error(t, v.Validate(context.Background(), form, FieldAccountID))
	assert.ErrorIs(t, v.Validate(context.Background(), form, "nickname"), ErrUnknownField)
	assert.Equal(t, FieldErrors{FieldPassword: MsgPasswordRequired}, Fields(v.Validate(context.Background(), validForm(), FieldPassword)))
}

func TestUserValidator_Email(t *testing.T) {
	v := NewUserValidator()
	tests := []struct {
		email string
		ok    bool
	}{
		{"a@b.co", true},
		{"first.last@sub.example.org", true},
		{"plain", false},
		{"a@b", false},
		{"Jane <jane@example.com>", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			f := validForm()
			f.Email = tt.email
			err := v.Validate(context.Background(), f, FieldEmail)
			assert.Equal(t, tt.ok, err == nil, "err: %v", err)
		})
	}
}

func TestUserValidator_Credentials(t *testing.T) {
	v := NewUserValidator()

	assert.NoError(t, v.Validate(context.Background(), models.Credentials{AccountID: "admin", Password: "x"}))

	err := v.Validate(context.Background(), &models.Credentials{})
	require.ErrorIs(t, err, ErrValidation)
	assert.Len(t, Fields(err), 2)
}

func TestUserValidator_UnsupportedType(t *testing.T) {
	assert.ErrorIs(t, NewUserValidator().Validate(context.Background(), 42), ErrUnsupportedType)
}

func TestChatValidator(t *testing.T) {
	v := NewChatValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, "hello"))
	assert.NoError(t, v.Validate(ctx, models.ChatMessage{Message: "hi"}))
	assert.ErrorIs(t, v.Validate(ctx, " \n\t "), ErrValidation)
	assert.ErrorIs(t, v.Validate(ctx, &models.ChatMessage{}), ErrValidation)
	assert.ErrorIs(t, v.Validate(ctx, 1), ErrUnsupportedType)
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{"b": "second", "a": "first"}
	assert.Equal(t, "validation failed: a: first; b: second", fe.Error())

	wrapped := fmt.Errorf("add user: %w", fe)
	assert.Equal(t, fe, Fields(wrapped))
	assert.Nil(t, Fields(errors.New("other")))
}
