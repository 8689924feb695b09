package qa

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Role is the slice of a guild role the synchronizer inspects.
type Role struct {
	ID uint64
	// CanManage is set when the role carries the manage-guild capability.
	CanManage bool
}

// CommandPermissionSetter replaces the role list allowed to invoke a
// restricted configuration command.
type CommandPermissionSetter interface {
	SetCommandRoles(ctx context.Context, guildID, commandID uint64, roleIDs []uint64) error
}

// PermissionSynchronizer recomputes which roles may invoke the configuration
// commands from a guild's live role set. It runs once per guild at startup
// and on guild join; later role changes are not tracked, so the permission
// list can go stale until the next restart.
type PermissionSynchronizer struct {
	setter CommandPermissionSetter
	logger *zap.Logger
}

// NewPermissionSynchronizer creates a permission synchronizer.
func NewPermissionSynchronizer(setter CommandPermissionSetter, logger *zap.Logger) *PermissionSynchronizer {
	return &PermissionSynchronizer{
		setter: setter,
		logger: logger.Named("qa_permissions"),
	}
}

// ManagedRoles filters a role set down to the roles carrying the manage-guild
// capability, preserving input order.
func ManagedRoles(roles []Role) []uint64 {
	ids := make([]uint64, 0, len(roles))
	for _, role := range roles {
		if role.CanManage {
			ids = append(ids, role.ID)
		}
	}

	return ids
}

// Resync sets the filtered role list as the exact permitted-invoker set of
// every given command. The previous list is replaced, not merged. The
// recomputation is idempotent.
func (s *PermissionSynchronizer) Resync(ctx context.Context, guildID uint64, roles []Role, commandIDs []uint64) error {
	allowed := ManagedRoles(roles)

	for _, commandID := range commandIDs {
		if err := s.setter.SetCommandRoles(ctx, guildID, commandID, allowed); err != nil {
			return fmt.Errorf("set roles for command %d: %w", commandID, err)
		}
	}

	s.logger.Debug("Resynced command permissions",
		zap.Uint64("guild_id", guildID),
		zap.Int("allowed_roles", len(allowed)),
		zap.Int("commands", len(commandIDs)))

	return nil
}
