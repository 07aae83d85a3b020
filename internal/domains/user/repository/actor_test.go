package repository_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	userMocks "icpac/internal/domains/user/mocks"
	"icpac/internal/domains/user/model"
	"icpac/internal/domains/user/repository"
	"icpac/shared/constant"
	"icpac/shared/failure"
)

func withUser(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func TestLoadActor(t *testing.T) {
	t.Run("anonymous without a user", func(t *testing.T) {
		repo := userMocks.NewMockUser(gomock.NewController(t))

		actor, err := repository.LoadActor(context.Background(), repo)

		require.NoError(t, err)
		assert.True(t, actor.Anonymous())
	})

	t.Run("loads role and rooms from the store", func(t *testing.T) {
		repo := userMocks.NewMockUser(gomock.NewController(t))
		repo.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.User{ID: "admin-1", Role: constant.RoleRoomAdmin, ManagedRooms: pq.Int64Array{2, 5}, Active: true}, nil)

		actor, err := repository.LoadActor(withUser("admin-1"), repo)

		require.NoError(t, err)
		assert.Equal(t, model.Actor{ID: "admin-1", Role: constant.RoleRoomAdmin, ManagedRooms: []int64{2, 5}}, actor)
	})

	t.Run("deactivated users are unauthorized", func(t *testing.T) {
		repo := userMocks.NewMockUser(gomock.NewController(t))
		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.User{ID: "u-1", Active: false}, nil)

		_, err := repository.LoadActor(withUser("u-1"), repo)

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("store errors are wrapped", func(t *testing.T) {
		repo := userMocks.NewMockUser(gomock.NewController(t))
		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.User{}, errors.New("timeout"))

		_, err := repository.LoadActor(withUser("u-1"), repo)

		assert.ErrorContains(t, err, "timeout")
	})
}
