// Package domain holds DTOs for genres http and service contracts
package domain

import "github.com/google/uuid"

// Genre is the genre payload
type Genre struct {
	UUID uuid.UUID `json:"uuid" example:"3d8d9bf5-0d90-4353-88ba-4ccc5d2c07ff"`
	Name string    `json:"name" example:"Drama"`
}
