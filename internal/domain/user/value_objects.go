package user

import (
	"regexp"
	"strings"

	"bodyshop/internal/pkg/errs"
)

var (
	ErrInvalidEmail = errs.Mark(errs.New("invalid email format"), errs.ErrValidation)
	ErrInvalidRole  = errs.Mark(errs.New("invalid role"), errs.ErrValidation)
	ErrEmptyName    = errs.Mark(errs.New("name cannot be empty"), errs.ErrValidation)
	ErrNameTooLong  = errs.Mark(errs.New("name exceeds maximum length"), errs.ErrValidation)
)

const MaxNameLength = 100

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) String() string {
	return e.value
}

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Name{}, ErrEmptyName
	}
	if len([]rune(s)) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }
