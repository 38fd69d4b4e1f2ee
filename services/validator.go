package services

import (
	"github.com/go-playground/validator/v10"

	"sync-lab/errors"
)

var validate = validator.New()

// CreateSessionRequest is what the UI boundary hands over. The core trusts
// it after this validation and does not re-check inside the session service.
type CreateSessionRequest struct {
	HostName  string `validate:"required,alphanum,min=3"`
	MaxUsers  int    `validate:"required,gte=2,lte=20"`
	Enable2FA bool
	Pin       string `validate:"omitempty,len=8,numeric"`
}

func ValidateCreateSession(req CreateSessionRequest) error {
	if err := validate.Struct(req); err != nil {
		return classify(err)
	}
	if req.Enable2FA && req.Pin == "" {
		return errors.ErrInvalidSessionConfig
	}
	return nil
}

type JoinSessionRequest struct {
	Code string `validate:"required,len=10,numeric"`
	Name string `validate:"required,alphanum,min=3"`
	Pin  string `validate:"omitempty"`
}

func ValidateJoinSession(req JoinSessionRequest) error {
	if err := validate.Struct(req); err != nil {
		return classify(err)
	}
	return nil
}

// classify maps validator output onto the error taxonomy: bad display names
// and malformed codes get their own sentinels, everything else is a config
// problem.
func classify(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "HostName", "Name":
				return errors.ErrInvalidDisplayName
			case "Code":
				return errors.ErrInvalidRoomCode
			}
		}
	}
	return errors.ErrInvalidSessionConfig
}
