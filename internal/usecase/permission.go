package usecase

import (
	"context"

	"github.com/infra-status-service/internal/domain"
	"github.com/infra-status-service/internal/domain/repository"
	"github.com/infra-status-service/internal/pkg/errors"
)

// PermissionResolver выводит права актора из его департамента и NetworkPolicy
type PermissionResolver struct {
	departments repository.DepartmentRepository
	policy      *domain.NetworkPolicy
}

func NewPermissionResolver(departments repository.DepartmentRepository, policy *domain.NetworkPolicy) *PermissionResolver {
	if policy == nil {
		policy = domain.DefaultNetworkPolicy()
	}
	return &PermissionResolver{
		departments: departments,
		policy:      policy,
	}
}

func (p *PermissionResolver) departmentSlug(ctx context.Context, actor *domain.Actor) (string, error) {
	if actor == nil {
		return "", errors.ErrUnauthorized
	}
	if p.policy.IsAdmin(actor.Role) {
		return "", nil
	}
	return p.departments.SlugForUser(ctx, actor.UserID)
}

// AuthorizeNetwork - FORBIDDEN, если сеть вне множества актора
func (p *PermissionResolver) AuthorizeNetwork(ctx context.Context, actor *domain.Actor, network domain.NetworkType) error {
	slug, err := p.departmentSlug(ctx, actor)
	if err != nil {
		return err
	}
	if !p.policy.Allowed(actor.Role, slug).Has(network) {
		return errors.ErrForbiddenNetwork.WithDetails(map[string]interface{}{
			"network_type": network,
		})
	}
	return nil
}

func (p *PermissionResolver) AuthorizeZoneEdit(ctx context.Context, actor *domain.Actor) error {
	slug, err := p.departmentSlug(ctx, actor)
	if err != nil {
		return err
	}
	if !p.policy.CanEditZones(actor.Role, slug) {
		return errors.ErrForbiddenZone
	}
	return nil
}
