package checkout

import (
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// View is a point-in-time copy of a session for presentation.
type View struct {
	SessionID     string          `json:"session_id"`
	Step          wizard.Step     `json:"step"`
	Steps         []wizard.Step   `json:"steps"`
	Items         []cart.LineItem `json:"items"`
	Totals        cart.Totals     `json:"totals"`
	AddressID     string          `json:"address_id,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	OrderID       string          `json:"order_id"`
	OrderStatus   string          `json:"order_status,omitempty"`
	Attempts      int             `json:"attempts"`
	Processing    bool            `json:"processing"`
	LastError     string          `json:"last_error,omitempty"`
	Summary       *OrderSummary   `json:"summary,omitempty"`
}

// View captures the session.
func (s *Session) View() (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals, err := s.ledger.Totals()
	if err != nil {
		return View{}, err
	}
	form := s.wizard.Form()
	st := s.order.State()
	v := View{
		SessionID:     s.id,
		Step:          s.wizard.Current(),
		Steps:         s.wizard.Steps(),
		Items:         s.ledger.Items(),
		Totals:        totals,
		AddressID:     form.AddressID,
		PaymentMethod: form.PaymentMethod,
		OrderID:       s.orderID,
		OrderStatus:   string(st.Status),
		Attempts:      st.Attempts,
		Processing:    s.inFlight,
	}
	if s.lastErr != nil {
		v.LastError = s.lastErr.Error()
	}
	if s.summary != nil {
		summary := *s.summary
		v.Summary = &summary
	}
	return v, nil
}
