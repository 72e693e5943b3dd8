package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/tokoku/internal/events"
	"github.com/Skotchmaster/tokoku/internal/transport"
	"github.com/Skotchmaster/tokoku/pkg/tokens"
)

func TestUserService_Register_Validation(t *testing.T) {
	svc := &UserService{Repo: newTestRepo(t)}

	tests := []struct {
		name string
		req  transport.RegisterRequest
	}{
		{name: "empty name", req: transport.RegisterRequest{Email: "a@b.c", Password: "p"}},
		{name: "empty email", req: transport.RegisterRequest{Name: "A", Password: "p"}},
		{name: "empty password", req: transport.RegisterRequest{Name: "A", Email: "a@b.c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUserService_Register_HashesAndRejectsDuplicate(t *testing.T) {
	pub := &fakePublisher{}
	svc := &UserService{Repo: newTestRepo(t), Events: pub}
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{Name: "Budi", Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "rahasia", user.PasswordHash)

	_, err = svc.Register(ctx, transport.RegisterRequest{Name: "Budi 2", Email: "budi@example.com", Password: "lain"})
	assert.ErrorIs(t, err, ErrConflict)

	require.Len(t, pub.sent, 1)
	assert.Equal(t, events.TopicUser, pub.sent[0].Topic)
	assert.Equal(t, "user_registered", pub.sent[0].Event.Type)
}

func TestUserService_Register_PublishFailureIsIgnored(t *testing.T) {
	svc := &UserService{Repo: newTestRepo(t), Events: &fakePublisher{err: errBroker}}

	_, err := svc.Register(context.Background(), transport.RegisterRequest{Name: "A", Email: "a@example.com", Password: "p"})
	assert.NoError(t, err)
}

func TestUserService_Login_SameErrorForUnknownAndWrong(t *testing.T) {
	svc := &UserService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Name: "Budi", Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)

	_, wrongPw := svc.Login(ctx, transport.LoginRequest{Email: "budi@example.com", Password: "salah"})
	_, unknown := svc.Login(ctx, transport.LoginRequest{Email: "siapa@example.com", Password: "rahasia"})

	assert.True(t, errors.Is(wrongPw, ErrInvalidCredentials))
	assert.True(t, errors.Is(unknown, ErrInvalidCredentials))
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestUserService_Login_IssuesTokenWhenSecretSet(t *testing.T) {
	secret := []byte("test-jwt-secret")
	svc := &UserService{Repo: newTestRepo(t), JWTSecret: secret}
	ctx := context.Background()

	user, err := svc.Register(ctx, transport.RegisterRequest{Name: "Budi", Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, res.User.ID)
	require.NotEmpty(t, res.AccessToken)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, secret)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestUserService_Login_NoTokenWithoutSecret(t *testing.T) {
	svc := &UserService{Repo: newTestRepo(t)}
	ctx := context.Background()

	_, err := svc.Register(ctx, transport.RegisterRequest{Name: "Budi", Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, transport.LoginRequest{Email: "budi@example.com", Password: "rahasia"})
	require.NoError(t, err)
	assert.Empty(t, res.AccessToken)
}

func TestUserService_ProfileUpdates(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	ctx := context.Background()
	u := seedUser(t, r, "a@example.com")

	require.NoError(t, svc.UpdateProfilePicture(ctx, u.ID, "foto.png"))
	require.NoError(t, svc.UpdateAddress(ctx, u.ID, "Jl. Sudirman"))

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "foto.png", *got.ProfilePicture)
	assert.Equal(t, "Jl. Sudirman", *got.Address)

	assert.ErrorIs(t, svc.UpdateProfilePicture(ctx, 404, "foto.png"), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateAddress(ctx, u.ID, " "), ErrValidation)

	_, err = svc.GetUser(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
