package kit

import (
	"github.com/google/uuid"
)

// Domain names used for aggregate roots.
const (
	DomainCart  = "cart"
	DomainOrder = "order"
)

// ComputeRoot derives a deterministic UUID v5 from a domain and business key.
//
// The UUID is derived from: hash("ecocart" + domain + business_key)
// using the OID namespace.
func ComputeRoot(domain, businessKey string) uuid.UUID {
	seed := "ecocart" + domain + businessKey
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed))
}

// CartRoot computes a deterministic root UUID for the cart of a session.
func CartRoot(sessionID string) uuid.UUID {
	return ComputeRoot(DomainCart, sessionID)
}

// OrderRoot computes a deterministic root UUID for an order aggregate.
func OrderRoot(orderID string) uuid.UUID {
	return ComputeRoot(DomainOrder, orderID)
}
