package mapper

import (
	"naapi/app/api"
	"naapi/app/dto"

	"github.com/elliotchance/pie/v2"
	"github.com/rofleksey/meg"
)

func MapUser(u dto.User) api.User {
	return api.User{
		Id:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Roles: meg.NonNilSlice(pie.Map(u.Roles(), func(r dto.Role) string {
			return string(r)
		})),
	}
}

func MapUserPtr(u *dto.User) *api.User {
	if u == nil {
		return nil
	}

	res := MapUser(*u)
	return &res
}

func MapCapabilities(caps map[dto.Capability]bool) api.Capabilities {
	res := make(api.Capabilities, len(caps))
	for capability, granted := range caps {
		res[string(capability)] = granted
	}

	return res
}
