package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// UsersService provides user profile operations.
type UsersService struct {
	client *Client
}

// Me fetches the profile of the user the token belongs to. Country, Email
// and Product are filled only when the matching scopes were granted.
func (s *UsersService) Me(ctx context.Context) (*User, error) {
	body, err := s.client.get(ctx, "/me", nil)
	if err != nil {
		return nil, err
	}

	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse profile response: %w", err)
	}

	user := newUser(p)
	return &user, nil
}

// Get fetches a public user profile. Use it to upgrade a PartialUser taken
// from a playlist.
func (s *UsersService) Get(ctx context.Context, id string) (*User, error) {
	body, err := s.client.get(ctx, "/users/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var p userPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("spotify: failed to parse user response: %w", err)
	}

	user := newUser(p)
	return &user, nil
}
