package auth

import (
	"context"
	"naapi/app/config"
	"naapi/app/dto"
	"naapi/app/util"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rofleksey/rbac"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const wildcard = "*"

// Service resolves capabilities from role sets. Results are never cached.
type Service struct {
	policy rbac.Policy
}

func New(di *do.Injector) (*Service, error) {
	return NewPolicy(do.MustInvoke[*config.Config](di).Auth.CustomRoles)
}

// NewPolicy builds the grant table, custom roles replacing the default one.
func NewPolicy(customRoles map[string][]dto.Capability) (*Service, error) {
	rolesMap := customRoles
	if len(rolesMap) == 0 {
		rolesMap = make(map[string][]dto.Capability, len(dto.DefaultGrants))
		for role, capabilities := range dto.DefaultGrants {
			rolesMap[string(role)] = capabilities
		}
	}

	policyBuilder := rbac.NewPolicyBuilder()

	for _, capability := range dto.AllCapabilities {
		if err := policyBuilder.RegisterPermission(string(capability)); err != nil {
			return nil, oops.Errorf("failed to register capability %s: %w", capability, err)
		}
	}

	for roleName, capabilities := range rolesMap {
		if err := policyBuilder.RegisterRole(roleName); err != nil {
			return nil, oops.Errorf("failed to register role %s: %w", roleName, err)
		}

		if pie.Contains(capabilities, wildcard) {
			capabilities = dto.AllCapabilities
		}

		for _, capability := range capabilities {
			if !pie.Contains(dto.AllCapabilities, capability) {
				return nil, oops.Errorf("unknown capability %s for role %s", capability, roleName)
			}

			if err := policyBuilder.Grant(roleName, string(capability)); err != nil {
				return nil, oops.Errorf("failed to grant capability %s for role %s: %w", capability, roleName, err)
			}
		}
	}

	return &Service{
		policy: policyBuilder.Build(),
	}, nil
}

func (s *Service) knownRoles(usr *dto.User) []string {
	if usr == nil {
		return nil
	}

	return pie.Filter(pie.Map(usr.Roles(), func(r dto.Role) string {
		return string(r)
	}), s.policy.RoleExists)
}

func (s *Service) Can(usr *dto.User, capability dto.Capability) bool {
	roles := s.knownRoles(usr)
	if len(roles) == 0 {
		return false
	}

	return s.policy.IsGranted(string(capability), roles...)
}

// Capabilities reports every capability of the closed enum for usr.
func (s *Service) Capabilities(usr *dto.User) map[dto.Capability]bool {
	result := make(map[dto.Capability]bool, len(dto.AllCapabilities))
	for _, capability := range dto.AllCapabilities {
		result[capability] = s.Can(usr, capability)
	}

	return result
}

// CanViewReportsAsStaff is reports:view without the teacher role.
func (s *Service) CanViewReportsAsStaff(usr *dto.User) bool {
	return s.Can(usr, dto.CapabilityViewReports) && !HasAnyRole(usr, dto.RoleTeacher)
}

func HasAnyRole(usr *dto.User, roles ...dto.Role) bool {
	if usr == nil {
		return false
	}

	held := usr.Roles()
	return pie.Any(roles, func(r dto.Role) bool {
		return pie.Contains(held, r)
	})
}

func (s *Service) ExtractFromCtx(ctx context.Context) *dto.User {
	userOpt := ctx.Value(util.UserContextKey)
	if userOpt == nil {
		return nil
	}

	result, ok := userOpt.(*dto.User)
	if !ok {
		return nil
	}

	return result
}

// TokenExpiry reads the exp claim of a JWT without verifying it. Opaque or
// basic tokens report false.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
