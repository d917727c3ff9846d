package cart

// HandleRemoveItem removes a held item. Removing an absent id is a no-op and
// yields no event.
func HandleRemoveItem(state *State, id string) (*ItemRemoved, error) {
	item, ok := state.Items[id]
	if !ok {
		return nil, nil
	}

	return &ItemRemoved{
		ID:          id,
		Quantity:    item.Quantity,
		NewSubtotal: state.Subtotal() - item.LineTotalCents(),
	}, nil
}
