package spotify

import (
	"context"
	"net/http"
	"testing"
)

func TestUsersMe(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{
			"id": "user-1",
			"display_name": "Jamie",
			"country": "NL",
			"product": "premium",
			"followers": {"total": 12}
		}`))
	})

	me, err := client.Users().Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if me.ID != "user-1" || me.DisplayName != "Jamie" {
		t.Errorf("unexpected profile %+v", me)
	}
	if me.Product != "premium" {
		t.Errorf("unexpected product %s", me.Product)
	}
}

func TestUsersGet(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/someone" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"id": "someone", "display_name": "Someone"}`))
	})

	user, err := client.Users().Get(context.Background(), "someone")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "someone" {
		t.Errorf("unexpected user %+v", user)
	}
}
