package repository

import (
	"context"
	"fmt"
	"icpac/internal/domains/user/model"
	"icpac/shared"
	"icpac/shared/constant"
	"icpac/shared/failure"
)

var actorColumns = []string{model.FieldID, model.FieldRole, model.FieldManagedRooms, model.FieldActive}

// LoadActor resolves the user attached to ctx by the auth middleware. A context without a user
// yields the anonymous actor; a user that no longer exists or was deactivated is unauthorized.
func LoadActor(ctx context.Context, repo User) (model.Actor, error) {
	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return model.Actor{}, nil
	}

	user, err := repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName), actorColumns...)
	if err != nil {
		return model.Actor{}, fmt.Errorf("failed to load actor: %w", err)
	}

	if user.ID == constant.Empty || !user.Active {
		return model.Actor{}, failure.Unauthorized("user account is not available") // nolint:wrapcheck
	}

	return user.Actor(), nil
}
