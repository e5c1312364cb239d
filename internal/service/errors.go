package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/nurpe/procurement/internal/scoring"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// translate maps storage and engine errors onto the service taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, scoring.ErrInvalidInput):
		return errors.Join(ErrInvalidInput, err)
	}
	return err
}
