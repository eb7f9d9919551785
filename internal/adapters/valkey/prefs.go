package valkey

import (
	"context"
	"fmt"

	valkeygo "github.com/valkey-io/valkey-go"
)

// PrefStore implements ports.PreferenceStore on Valkey. Preferences are
// plain keys with no expiry: a user's selected city or cart survives until
// overwritten or deleted. Writes are last-writer-wins, matching the
// read-then-write contract of the port.
type PrefStore struct {
	client valkeygo.Client
}

// NewPrefStore creates a preference store sharing the cache's client.
func NewPrefStore(c *Cache) *PrefStore {
	return &PrefStore{client: c.client}
}

func prefKey(userID, key string) string {
	return fmt.Sprintf("prefs:%s:%s", userID, key)
}

// Get retrieves one preference value.
func (s *PrefStore) Get(ctx context.Context, userID, key string) ([]byte, error) {
	cmd := s.client.Do(ctx, s.client.B().Get().Key(prefKey(userID, key)).Build())
	if cmd.Error() != nil {
		return nil, cmd.Error()
	}
	return cmd.AsBytes()
}

// Set stores one preference value with no expiry.
func (s *PrefStore) Set(ctx context.Context, userID, key string, value []byte) error {
	cmd := s.client.Do(ctx,
		s.client.B().Set().Key(prefKey(userID, key)).Value(string(value)).Build())
	return cmd.Error()
}

// Delete removes one preference.
func (s *PrefStore) Delete(ctx context.Context, userID, key string) error {
	cmd := s.client.Do(ctx, s.client.B().Del().Key(prefKey(userID, key)).Build())
	return cmd.Error()
}
