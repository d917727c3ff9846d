package features

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cucumber/godog"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/checkout"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/payment"
)

// switchableGateway charges through the simulated gateway unless slow, in
// which case it holds every charge until the attempt is cancelled.
type switchableGateway struct {
	simulated *payment.Simulated
	slow      atomic.Bool
}

func (g *switchableGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error) {
	if g.slow.Load() {
		<-ctx.Done()
		return payment.Receipt{}, ctx.Err()
	}
	return g.simulated.Charge(ctx, req)
}

type checkoutTestContext struct {
	gateway   *switchableGateway
	session   *checkout.Session
	completed atomic.Int32
	submitErr error
	secondErr error
}

func (c *checkoutTestContext) reset() {
	c.gateway = &switchableGateway{
		simulated: payment.NewSimulated(
			payment.WithDelay(0),
			payment.WithDeclineMethods("declined-card"),
		),
	}
	c.session = nil
	c.completed.Store(0)
	c.submitErr = nil
	c.secondErr = nil
}

func (c *checkoutTestContext) close() {
	if c.session != nil {
		_ = c.session.Close()
	}
}

func (c *checkoutTestContext) aCheckoutSessionWithACartHolding(qty int, id, price string, points int) error {
	unit, err := cents(price)
	if err != nil {
		return err
	}
	c.session = checkout.New("feature-session", nil, c.gateway,
		checkout.WithTimeout(2*time.Second),
		checkout.WithOnComplete(func(checkout.OrderSummary) { c.completed.Add(1) }),
	)
	return c.session.AddItem(cart.Candidate{ID: id, UnitPriceCents: unit, UnitPoints: int64(points)}, int64(qty))
}

func (c *checkoutTestContext) theSessionHasAddressAndPaymentMethod(address, method string) error {
	if err := c.session.SelectAddress(address); err != nil {
		return err
	}
	return c.session.ChoosePayment(method)
}

func (c *checkoutTestContext) theSessionIsOnTheReviewStep() error {
	for c.session.Current() != "review" {
		if _, err := c.session.Next(context.Background()); err != nil {
			return err
		}
	}
	return nil
}

func (c *checkoutTestContext) theCartHasPromotionCode(code string) error {
	_, err := c.session.ApplyPromotion(code)
	return err
}

func (c *checkoutTestContext) theGatewayIsSlow() error {
	c.gateway.slow.Store(true)
	return nil
}

func (c *checkoutTestContext) thePaymentMethodIs(method string) error {
	return c.session.ChoosePayment(method)
}

func (c *checkoutTestContext) iSubmitTheOrder() error {
	c.submitErr = c.session.Submit(context.Background())
	return nil
}

func (c *checkoutTestContext) iSubmitTheOrderAgain() error {
	c.secondErr = c.session.Submit(context.Background())
	return nil
}

func (c *checkoutTestContext) iGoBack() error {
	_, err := c.session.Back()
	return err
}

func (c *checkoutTestContext) thePaymentSettles() error {
	if c.submitErr != nil {
		return fmt.Errorf("submit failed: %v", c.submitErr)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.session.Wait(ctx); err != nil && ctx.Err() != nil {
		return fmt.Errorf("payment did not settle: %w", err)
	}
	return nil
}

func (c *checkoutTestContext) theCheckoutIsOn(step string) error {
	if got := c.session.Current(); string(got) != step {
		return fmt.Errorf("expected step %q, got %q", step, got)
	}
	return nil
}

func (c *checkoutTestContext) summary() (checkout.OrderSummary, error) {
	s, ok := c.session.Summary()
	if !ok {
		return s, fmt.Errorf("checkout has not completed (last error: %v)", c.session.LastError())
	}
	return s, nil
}

func (c *checkoutTestContext) theOrderSummaryTotals(amount string) error {
	s, err := c.summary()
	if err != nil {
		return err
	}
	want, err := cents(amount)
	if err != nil {
		return err
	}
	if s.TotalCents != want {
		return fmt.Errorf("expected total %d cents, got %d", want, s.TotalCents)
	}
	return nil
}

func (c *checkoutTestContext) theOrderSummaryEarnsPoints(points int) error {
	s, err := c.summary()
	if err != nil {
		return err
	}
	if s.TotalPoints != int64(points) {
		return fmt.Errorf("expected %d points, got %d", points, s.TotalPoints)
	}
	return nil
}

func (c *checkoutTestContext) theSummaryPromotionIs(code string) error {
	s, err := c.summary()
	if err != nil {
		return err
	}
	if s.PromotionCode != code {
		return fmt.Errorf("expected promotion %q, got %q", code, s.PromotionCode)
	}
	return nil
}

func (c *checkoutTestContext) theCompletionCallbackFiredOnce() error {
	if n := c.completed.Load(); n != 1 {
		return fmt.Errorf("expected one completion, got %d", n)
	}
	return nil
}

func (c *checkoutTestContext) theCompletionCallbackNeverFired() error {
	if n := c.completed.Load(); n != 0 {
		return fmt.Errorf("expected no completion, got %d", n)
	}
	return nil
}

func (c *checkoutTestContext) theSecondSubmitIsRefusedAsInProgress() error {
	if c.submitErr != nil {
		return fmt.Errorf("first submit failed: %v", c.submitErr)
	}
	if !errors.Is(c.secondErr, checkout.ErrSubmitInProgress) {
		return fmt.Errorf("expected %v, got %v", checkout.ErrSubmitInProgress, c.secondErr)
	}
	return nil
}

func (c *checkoutTestContext) theLastPaymentFailedAsDeclined() error {
	if err := c.session.LastError(); !errors.Is(err, payment.ErrDeclined) {
		return fmt.Errorf("expected a declined payment, got %v", err)
	}
	return nil
}

func (c *checkoutTestContext) theSubmitFailsWithStatus(statusName string) error {
	return expectStatus(c.submitErr, statusName)
}

// InitializeCheckoutScenario registers the checkout finalizer steps.
func InitializeCheckoutScenario(ctx *godog.ScenarioContext) {
	tc := &checkoutTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		tc.close()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a checkout session with a cart holding (\d+) of item "([^"]*)" priced ([0-9.]+) with (\d+) points$`, tc.aCheckoutSessionWithACartHolding)
	ctx.Step(`^the session has address "([^"]*)" and payment method "([^"]*)"$`, tc.theSessionHasAddressAndPaymentMethod)
	ctx.Step(`^the session is on the review step$`, tc.theSessionIsOnTheReviewStep)
	ctx.Step(`^the cart has promotion code "([^"]*)"$`, tc.theCartHasPromotionCode)
	ctx.Step(`^the gateway is slow$`, tc.theGatewayIsSlow)
	ctx.Step(`^the payment method is "([^"]*)"$`, tc.thePaymentMethodIs)

	// When steps
	ctx.Step(`^I submit the order$`, tc.iSubmitTheOrder)
	ctx.Step(`^I submit the order again$`, tc.iSubmitTheOrderAgain)
	ctx.Step(`^I go back$`, tc.iGoBack)
	ctx.Step(`^the payment settles$`, tc.thePaymentSettles)

	// Then steps
	ctx.Step(`^the checkout is on "([^"]*)"$`, tc.theCheckoutIsOn)
	ctx.Step(`^the order summary totals ([0-9.]+)$`, tc.theOrderSummaryTotals)
	ctx.Step(`^the order summary earns (\d+) points$`, tc.theOrderSummaryEarnsPoints)
	ctx.Step(`^the summary promotion is "([^"]*)"$`, tc.theSummaryPromotionIs)
	ctx.Step(`^the completion callback fired once$`, tc.theCompletionCallbackFiredOnce)
	ctx.Step(`^the completion callback never fired$`, tc.theCompletionCallbackNeverFired)
	ctx.Step(`^the second submit is refused as in progress$`, tc.theSecondSubmitIsRefusedAsInProgress)
	ctx.Step(`^the last payment failed as declined$`, tc.theLastPaymentFailedAsDeclined)
	ctx.Step(`^the submit fails with status "([^"]*)"$`, tc.theSubmitFailsWithStatus)
}
