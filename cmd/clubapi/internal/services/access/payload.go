package access

import (
	"fmt"
	"maps"

	"github.com/mitchellh/mapstructure"

	"github.com/Revanth2074/Aprameya/cmd/clubapi/internal/auth"
)

// serverOwned lists payload keys the server assigns itself; clients cannot set them.
var serverOwned = []string{"id", "creator_id", "user_id", "created_at", "updated_at"}

// stripServerOwned returns a copy of payload without server-assigned keys.
func stripServerOwned(payload map[string]any) map[string]any {
	out := maps.Clone(payload)
	if out == nil {
		out = map[string]any{}
	}
	for _, key := range serverOwned {
		delete(out, key)
	}
	return out
}

// decodePayload copies a validated payload onto out using the JSON field
// names. Keys absent from payload leave out's fields untouched; list fields
// present in payload replace the old list.
func decodePayload(payload map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:    "json",
		ZeroFields: true,
		Result:     out,
	})
	if err != nil {
		return fmt.Errorf("create payload decoder: %w", err)
	}
	if err := dec.Decode(payload); err != nil {
		return fmt.Errorf("%w: %v", auth.ErrInvalidInput, err)
	}
	return nil
}
