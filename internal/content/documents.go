package content

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidSocial is returned for social documents with an unknown network or an empty value.
var ErrInvalidSocial = errors.New("invalid social identity")

// Networks a social identity may belong to.
var Networks = []string{"telegram", "instagram", "discord", "whatsapp"}

// Place is the metadata document of an event place.
type Place struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Geometry    json.RawMessage `json:"geometry,omitempty"`
}

// EventMeta is the metadata document of an event. SocialsCID points at a Social document.
type EventMeta struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Website     string `json:"website"`
	SocialsCID  string `json:"socialsCid,omitempty"`
}

// Social is a user's identity on a chat network.
type Social struct {
	Network string `json:"network"`
	Value   string `json:"value"`
}

// Validate checks the network against Networks and requires a value.
func (s *Social) Validate() error {
	if !slices.Contains(Networks, s.Network) {
		return fmt.Errorf("%w: unknown network %q", ErrInvalidSocial, s.Network)
	}
	if s.Value == "" {
		return fmt.Errorf("%w: empty value for %s", ErrInvalidSocial, s.Network)
	}
	return nil
}
