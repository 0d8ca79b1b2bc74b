// Eyedea | 2026
// dto.go

package org

type CreatePillarRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type CreateDepartmentRequest struct {
	Name   string `json:"name"   validate:"required,min=1,max=100"`
	Pillar string `json:"pillar" validate:"required,min=1,max=100"`
}

type CreateTeamRequest struct {
	Name       string `json:"name"       validate:"required,min=1,max=100"`
	Pillar     string `json:"pillar"     validate:"required,min=1,max=100"`
	Department string `json:"department" validate:"required,min=1,max=100"`
}

type CreateTechPersonRequest struct {
	Name           string `json:"name"           validate:"required,min=1,max=100"`
	Email          string `json:"email"          validate:"omitempty,email,max=255"`
	Specialization string `json:"specialization" validate:"max=100"`
}

type SeedResult struct {
	Seeded  bool   `json:"seeded"`
	Message string `json:"message"`
}
