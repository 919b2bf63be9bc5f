package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dao"
	"github.com/DmitriSedov/rest-api-design-tutorial/internal/dto"
	"github.com/DmitriSedov/rest-api-design-tutorial/pkg/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, app.TokenManager) {
	t.Helper()
	seed, err := dao.DefaultSeed()
	require.NoError(t, err)
	store := dao.NewMemoryStore()
	require.NoError(t, store.Reset(context.Background(), seed))

	tm := app.NewTokenManager(app.TokenConfig{SecretKey: "k"})
	return NewUserService(store.Users(), tm, nil), tm
}

func TestUserService_Authenticate(t *testing.T) {
	svc, tm := newUserService(t)
	ctx := context.Background()

	res, token, err := svc.Authenticate(ctx, &dto.AuthRequest{Email: ptr("saurabh@example.com"), Password: ptr(dao.SeedPassword)})
	require.NoError(t, err)
	assert.Equal(t, "Authentication successful", res.Message)
	assert.Equal(t, dto.AuthUserDTO{ID: "1", Name: "Saurabh", Email: "saurabh@example.com"}, res.User)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.UID())
	assert.Equal(t, "Saurabh", claims.Name)

	_, _, err = svc.Authenticate(ctx, &dto.AuthRequest{Email: ptr("saurabh@example.com"), Password: ptr("wrong")})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	_, _, err = svc.Authenticate(ctx, &dto.AuthRequest{Email: ptr("ghost@example.com"), Password: ptr(dao.SeedPassword)})
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestUserService_Profile(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	profile, modTime, err := svc.Profile(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, &dto.UserProfileDTO{ID: "2", Name: "Arpita", Email: "arpita@example.com", CreatedAt: 1671494400000}, profile)
	assert.True(t, modTime.Equal(time.Date(2022, 12, 20, 0, 0, 0, 0, time.UTC)))

	// 令牌中的用户已被删除
	_, _, err = svc.Profile(ctx, "99")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}
