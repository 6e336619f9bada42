package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validContactRequest() CreateContactRequest {
	return CreateContactRequest{
		FullName: "Jane Doe",
		Email:    "jane@example.com",
		Subject:  "Question about adoption",
		Message:  "Is Rex still available for adoption?",
	}
}

func TestCreateContactRequest_Validate(t *testing.T) {
	assert.NoError(t, validContactRequest().Validate())

	req := validContactRequest()
	req.FullName = ""
	assert.Error(t, req.Validate())

	req = validContactRequest()
	req.Email = "not-an-email"
	assert.Error(t, req.Validate())

	req = validContactRequest()
	req.Email = ""
	assert.Error(t, req.Validate())

	req = validContactRequest()
	req.Subject = ""
	assert.Error(t, req.Validate())

	req = validContactRequest()
	req.Message = ""
	assert.Error(t, req.Validate())
}

func TestCreateContactRequest_ToEntity(t *testing.T) {
	msg := validContactRequest().ToEntity()

	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.Equal(t, "Jane Doe", msg.FullName)
	assert.False(t, msg.CreatedAt.IsZero())
}
