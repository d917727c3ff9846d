package flows

import "strings"

func requireText(v string, reason error) error {
	if strings.TrimSpace(v) == "" {
		return reason
	}
	return nil
}
