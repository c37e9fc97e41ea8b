package api

import "errors"

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p SelectPayload) Validate() error {
	if p.UnitID < 0 {
		return errors.New("unitId cannot be negative")
	}
	if p.UnitID == 0 && (p.X == nil || p.Y == nil) {
		return errors.New("unitId or x/y is required")
	}
	return nil
}
