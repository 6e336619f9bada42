package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// ContactMessage - an inbound message from the public contact form.
// Records are append-only; nothing in the API reads them back.
type ContactMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Subject   string    `json:"subject" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateContactRequest - payload for POST /contact
type CreateContactRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

func (r CreateContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("full_name is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("email must be a valid email address"),
		),
		validation.Field(&r.Subject,
			validation.Required.Error("subject is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
		),
	)
}

func (r CreateContactRequest) ToEntity() *ContactMessage {
	return &ContactMessage{
		ID:        uuid.New(),
		FullName:  r.FullName,
		Email:     r.Email,
		Subject:   r.Subject,
		Message:   r.Message,
		CreatedAt: time.Now(),
	}
}

const ErrCodeValidationFailed = "CONTACT_001"
