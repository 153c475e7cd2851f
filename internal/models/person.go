package models

import (
	"fmt"
	"strings"
)

// Person is someone whose career to date we track.
type Person struct {
	Name     string  `db:"person_name" json:"person_name" validate:"required,max=30"`
	Town     string  `db:"lives_in_town" json:"lives_in_town" validate:"required,max=40"`
	Nickname *string `db:"nickname" json:"nickname,omitempty" validate:"omitempty,max=20"`
}

func (p Person) Key() string { return p.Name }

func (p Person) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid person %q: %w", p.Name, err)
	}
	return nil
}

func (p Person) Show() string {
	return strings.Join([]string{p.Name, p.Town, opt(p.Nickname)}, " ")
}
