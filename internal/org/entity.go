// Eyedea | 2026
// entity.go

package org

import (
	"time"
)

type Pillar struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Department struct {
	ID        string    `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	Pillar    string    `db:"pillar"     json:"pillar"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Team struct {
	ID         string    `db:"id"         json:"id"`
	Name       string    `db:"name"       json:"name"`
	Pillar     string    `db:"pillar"     json:"pillar"`
	Department string    `db:"department" json:"department"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type TechPerson struct {
	ID             string    `db:"id"             json:"id"`
	Name           string    `db:"name"           json:"name"`
	Email          string    `db:"email"          json:"email,omitempty"`
	Specialization string    `db:"specialization" json:"specialization,omitempty"`
	CreatedAt      time.Time `db:"created_at"     json:"created_at"`
}
