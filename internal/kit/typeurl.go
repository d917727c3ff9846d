package kit

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/anypb"
)

// TypeURLPrefix is the shared prefix for all event and command type URLs.
const TypeURLPrefix = "type.ecocart/ecocart."

// Named is implemented by every event and command payload.
type Named interface {
	TypeName() string
}

// TypeURL builds the full type URL for a payload name.
// Example: TypeURL("ItemAdded") returns "type.ecocart/ecocart.ItemAdded"
func TypeURL(name string) string {
	return TypeURLPrefix + name
}

// ShortName extracts the trailing type name from a type URL.
func ShortName(typeURL string) string {
	if idx := strings.LastIndexAny(typeURL, "./"); idx >= 0 {
		return typeURL[idx+1:]
	}
	return typeURL
}

// Pack encodes a payload as a JSON-valued Any.
func Pack(msg Named) (*anypb.Any, error) {
	value, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.TypeName(), err)
	}
	return &anypb.Any{TypeUrl: TypeURL(msg.TypeName()), Value: value}, nil
}

// Unpack decodes a JSON-valued Any into dst.
func Unpack(a *anypb.Any, dst any) error {
	if a == nil {
		return fmt.Errorf("unpack: nil payload")
	}
	if err := json.Unmarshal(a.Value, dst); err != nil {
		return fmt.Errorf("decode %s: %w", ShortName(a.TypeUrl), err)
	}
	return nil
}
