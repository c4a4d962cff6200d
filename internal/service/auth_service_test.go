package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tripzy/internal/api"
)

func TestAuth_RegisterLoginCurrentUser(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()

	token := env.signUp(t, "traveler@example.com")
	if token == "" {
		t.Fatal("expected a token")
	}

	login, err := env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    "traveler@example.com",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	me, err := env.auth.GetCurrentUser(ctx, authed(login.Msg.Token, &api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.Email != "traveler@example.com" || me.Msg.User.DisplayName != "Tester" {
		t.Errorf("unexpected user %+v", me.Msg.User)
	}
	if me.Msg.User.ID != login.Msg.User.ID {
		t.Errorf("expected user %s, got %s", login.Msg.User.ID, me.Msg.User.ID)
	}

	if _, err := env.auth.Logout(ctx, authed(token, &api.LogoutRequest{})); err != nil {
		t.Errorf("Logout failed: %v", err)
	}
}

func TestAuth_Rejected(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	env.signUp(t, "traveler@example.com")

	_, err := env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email: "traveler@example.com", Password: "password123", DisplayName: "Again",
	}))
	assertCode(t, err, connect.CodeAlreadyExists)

	_, err = env.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{Email: "x@example.com", Password: "password123"}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "traveler@example.com", Password: "wrong-password"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{Email: "nobody@example.com", Password: "password123"}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = env.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}
