package dto

import "github.com/elliotchance/pie/v2"

type Papel struct {
	ID        int64  `json:"id"`
	Authority string `json:"authority"`
}

// User is the profile returned by the backend "who am I" endpoint.
type User struct {
	ID     int64   `json:"id"`
	Name   string  `json:"nome"`
	Email  string  `json:"email"`
	Papeis []Papel `json:"papeis"`
}

func (u *User) Roles() []Role {
	if u == nil {
		return nil
	}

	return pie.Map(u.Papeis, func(p Papel) Role {
		return Role(p.Authority)
	})
}

type UserInsert struct {
	Name     string  `json:"nome" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"senha" validate:"required"`
	PapeisID []int64 `json:"papeisId" validate:"required,min=1"`
}

type UserUpdate struct {
	Name     string  `json:"nome" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	PapeisID []int64 `json:"papeisId" validate:"required,min=1"`
}

type UserSelfUpdate struct {
	Name  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type UserPasswordUpdate struct {
	CurrentPassword string `json:"senhaAtual" validate:"required"`
	NewPassword     string `json:"novaSenha" validate:"required,min=6"`
}
