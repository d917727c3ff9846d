package cart

// HandleClearCart empties the ledger and drops the active promotion.
func HandleClearCart(state *State) (*CartCleared, error) {
	return &CartCleared{ItemCount: len(state.Items)}, nil
}
