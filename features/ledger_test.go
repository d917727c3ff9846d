package features

import (
	"context"
	"errors"
	"fmt"

	"github.com/cucumber/godog"
	"github.com/shopspring/decimal"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// cents parses a currency amount such as "2.50" into cents.
func cents(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return d.Shift(2).IntPart(), nil
}

func expectStatus(err error, statusName string) error {
	if err == nil {
		return errors.New("expected command to fail but it succeeded")
	}
	var cmdErr *kit.CommandError
	if !errors.As(err, &cmdErr) {
		return fmt.Errorf("expected CommandError, got %T", err)
	}
	if cmdErr.Code.String() != statusName {
		return fmt.Errorf("expected status %s, got %s", statusName, cmdErr.Code.String())
	}
	return nil
}

type ledgerTestContext struct {
	ledger *cart.Ledger
	err    error
}

func (c *ledgerTestContext) reset() {
	c.ledger = nil
	c.err = nil
}

func (c *ledgerTestContext) anEmptyCart() error {
	c.ledger = cart.New("feature-session")
	return nil
}

func (c *ledgerTestContext) candidate(id, price string, points int) (cart.Candidate, error) {
	unit, err := cents(price)
	if err != nil {
		return cart.Candidate{}, err
	}
	return cart.Candidate{ID: id, UnitPriceCents: unit, UnitPoints: int64(points)}, nil
}

func (c *ledgerTestContext) theCartHoldsOfItemPricedWithPoints(qty int, id, price string, points int) error {
	item, err := c.candidate(id, price, points)
	if err != nil {
		return err
	}
	return c.ledger.AddItem(item, int64(qty))
}

func (c *ledgerTestContext) iAddOfItemPricedWithPoints(qty int, id, price string, points int) error {
	item, err := c.candidate(id, price, points)
	if err != nil {
		return err
	}
	c.err = c.ledger.AddItem(item, int64(qty))
	return nil
}

func (c *ledgerTestContext) iAddOfItemWeighingSavingCO2(qty int, id string, weight, co2 int) error {
	c.err = c.ledger.AddItem(cart.Candidate{
		ID:              id,
		UnitWeightGrams: int64(weight),
		UnitCO2Grams:    int64(co2),
	}, int64(qty))
	return nil
}

func (c *ledgerTestContext) iSetTheQuantityOfItemTo(id string, qty int) error {
	c.err = c.ledger.SetQuantity(id, int64(qty))
	return nil
}

func (c *ledgerTestContext) iRemoveItem(id string) error {
	c.err = c.ledger.RemoveItem(id)
	return nil
}

func (c *ledgerTestContext) iApplyPromotionCode(code string) error {
	_, c.err = c.ledger.ApplyCode(code)
	return nil
}

func (c *ledgerTestContext) iClearThePromotion() error {
	c.err = c.ledger.ClearPromotion()
	return nil
}

func (c *ledgerTestContext) totals() (cart.Totals, error) {
	return c.ledger.Totals()
}

func (c *ledgerTestContext) expectAmount(field string, got int64, want string) error {
	wantCents, err := cents(want)
	if err != nil {
		return err
	}
	if got != wantCents {
		return fmt.Errorf("expected %s %s, got %s", field, want, decimal.New(got, -2).StringFixed(2))
	}
	return nil
}

func (c *ledgerTestContext) theSubtotalIs(amount string) error {
	t, err := c.totals()
	if err != nil {
		return err
	}
	return c.expectAmount("subtotal", t.SubtotalCents, amount)
}

func (c *ledgerTestContext) theDiscountIs(amount string) error {
	t, err := c.totals()
	if err != nil {
		return err
	}
	return c.expectAmount("discount", t.DiscountCents, amount)
}

func (c *ledgerTestContext) theTotalIs(amount string) error {
	t, err := c.totals()
	if err != nil {
		return err
	}
	return c.expectAmount("total", t.TotalCents, amount)
}

func (c *ledgerTestContext) theTotalPointsAre(points int) error {
	t, err := c.totals()
	if err != nil {
		return err
	}
	if t.Points != int64(points) {
		return fmt.Errorf("expected %d points, got %d", points, t.Points)
	}
	return nil
}

func (c *ledgerTestContext) theCartWeighsGrams(grams int) error {
	t, err := c.totals()
	if err != nil {
		return err
	}
	if t.WeightGrams != int64(grams) {
		return fmt.Errorf("expected weight %dg, got %dg", grams, t.WeightGrams)
	}
	return nil
}

func (c *ledgerTestContext) theCartSavesGramsOfCO2(grams int) error {
	t, err := c.totals()
	if err != nil {
		return err
	}
	if t.CO2Grams != int64(grams) {
		return fmt.Errorf("expected CO2 %dg, got %dg", grams, t.CO2Grams)
	}
	return nil
}

func (c *ledgerTestContext) theCartHoldsItems(n int) error {
	if c.ledger.Len() != n {
		return fmt.Errorf("expected %d items, got %d", n, c.ledger.Len())
	}
	return nil
}

func (c *ledgerTestContext) itemHasQuantity(id string, qty int) error {
	item, ok := c.ledger.Item(id)
	if !ok {
		return fmt.Errorf("item %q is not in the cart", id)
	}
	if item.Quantity != int64(qty) {
		return fmt.Errorf("expected quantity %d, got %d", qty, item.Quantity)
	}
	return nil
}

func (c *ledgerTestContext) theCommandFailsWithStatus(statusName string) error {
	return expectStatus(c.err, statusName)
}

func (c *ledgerTestContext) theCommandSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *ledgerTestContext) theActivePromotionIs(code string) error {
	p, ok := c.ledger.Promotion()
	if !ok {
		return errors.New("no promotion is active")
	}
	if p.Code != code {
		return fmt.Errorf("expected promotion %q, got %q", code, p.Code)
	}
	return nil
}

func (c *ledgerTestContext) noPromotionIsActive() error {
	if p, ok := c.ledger.Promotion(); ok {
		return fmt.Errorf("expected no promotion, got %q", p.Code)
	}
	return nil
}

// InitializeLedgerScenario registers the cart ledger and promotion steps.
func InitializeLedgerScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)
	ctx.Step(`^the cart holds (\d+) of item "([^"]*)" priced ([0-9.]+) with (\d+) points$`, tc.theCartHoldsOfItemPricedWithPoints)

	// When steps
	ctx.Step(`^I add (\d+) of item "([^"]*)" priced ([0-9.]+) with (\d+) points$`, tc.iAddOfItemPricedWithPoints)
	ctx.Step(`^I add (\d+) of item "([^"]*)" weighing (\d+) grams saving (\d+) grams of CO2$`, tc.iAddOfItemWeighingSavingCO2)
	ctx.Step(`^I set the quantity of item "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfItemTo)
	ctx.Step(`^I remove item "([^"]*)"$`, tc.iRemoveItem)
	ctx.Step(`^I apply promotion code "([^"]*)"$`, tc.iApplyPromotionCode)
	ctx.Step(`^I clear the promotion$`, tc.iClearThePromotion)

	// Then steps
	ctx.Step(`^the subtotal is ([0-9.]+)$`, tc.theSubtotalIs)
	ctx.Step(`^the discount is ([0-9.]+)$`, tc.theDiscountIs)
	ctx.Step(`^the total is ([0-9.]+)$`, tc.theTotalIs)
	ctx.Step(`^the total points are (\d+)$`, tc.theTotalPointsAre)
	ctx.Step(`^the cart weighs (\d+) grams$`, tc.theCartWeighsGrams)
	ctx.Step(`^the cart saves (\d+) grams of CO2$`, tc.theCartSavesGramsOfCO2)
	ctx.Step(`^the cart holds (\d+) items$`, tc.theCartHoldsItems)
	ctx.Step(`^item "([^"]*)" has quantity (\d+)$`, tc.itemHasQuantity)
	ctx.Step(`^the command fails with status "([^"]*)"$`, tc.theCommandFailsWithStatus)
	ctx.Step(`^the command succeeds$`, tc.theCommandSucceeds)
	ctx.Step(`^the active promotion is "([^"]*)"$`, tc.theActivePromotionIs)
	ctx.Step(`^no promotion is active$`, tc.noPromotionIsActive)
}
