package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationKind names the rule a field broke.
type ValidationKind string

const (
	InvalidCategory ValidationKind = "InvalidCategory"
	EmptyField      ValidationKind = "EmptyField"
)

// ValidationError describes the first field of a payload that failed validation.
type ValidationError struct {
	Field string
	Kind  ValidationKind
}

func (e *ValidationError) Error() string {
	if e.Kind == InvalidCategory {
		names := make([]string, len(categories))
		for i, c := range categories {
			names[i] = string(c)
		}
		return fmt.Sprintf("%s must be one of %s", e.Field, strings.Join(names, ", "))
	}
	return fmt.Sprintf("%s cannot be empty", e.Field)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	return v
}

// HootCreateRequest is the payload of POST /hoots.
type HootCreateRequest struct {
	Title    string `json:"title" validate:"required,notblank"`
	Text     string `json:"text" validate:"required,notblank"`
	Category string `json:"category" validate:"required,category"`
}

// Validate checks the create payload; all fields are required.
func (r HootCreateRequest) Validate() error {
	return translate(validate.Struct(r))
}

// Hoot builds a new hoot owned by author from the payload.
func (r HootCreateRequest) Hoot(author string) *Hoot {
	return &Hoot{
		Title:    trimmed(r.Title),
		Text:     trimmed(r.Text),
		Category: Category(r.Category),
		Author:   author,
		Comments: []*Comment{},
	}
}

// HootUpdateRequest is the payload of PUT /hoots/{hootId}. Nil fields stay unchanged.
type HootUpdateRequest struct {
	Title    *string `json:"title" validate:"omitnil,notblank"`
	Text     *string `json:"text" validate:"omitnil,notblank"`
	Category *string `json:"category" validate:"omitnil,category"`
}

// Validate checks only the fields that were supplied.
func (r HootUpdateRequest) Validate() error {
	return translate(validate.Struct(r))
}

// CommentRequest is the payload for creating or editing a comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required,notblank"`
}

func (r CommentRequest) Validate() error {
	return translate(validate.Struct(r))
}

// Comment builds a new comment owned by author from the payload.
func (r CommentRequest) Comment(author string) *Comment {
	return &Comment{
		Text:   trimmed(r.Text),
		Author: author,
	}
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	kind := EmptyField
	if fe.Tag() == "category" || fe.Field() == "category" {
		kind = InvalidCategory
	}
	return &ValidationError{Field: fe.Field(), Kind: kind}
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
