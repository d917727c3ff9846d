package features

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

type wizardForm struct {
	address string
	method  string
}

type wizardTestContext struct {
	steps  []wizard.Step
	guards map[wizard.Step]wizard.Guard[wizardForm]
	wizard *wizard.Wizard[wizardForm]
	exited bool
	err    error
}

func (c *wizardTestContext) reset() {
	c.steps = nil
	c.guards = make(map[wizard.Step]wizard.Guard[wizardForm])
	c.wizard = nil
	c.exited = false
	c.err = nil
}

// flow builds the wizard on first use so guards can be declared first.
func (c *wizardTestContext) flow() (*wizard.Wizard[wizardForm], error) {
	if c.wizard != nil {
		return c.wizard, nil
	}
	w, err := wizard.New(wizard.Definition[wizardForm]{
		Name:   "feature",
		Steps:  c.steps,
		Guards: c.guards,
	}, nil, wizard.WithOnBack(func() { c.exited = true }))
	if err != nil {
		return nil, err
	}
	c.wizard = w
	return w, nil
}

func (c *wizardTestContext) aWizardWithSteps(list string) error {
	for _, s := range strings.Split(list, ",") {
		c.steps = append(c.steps, wizard.Step(strings.TrimSpace(s)))
	}
	return nil
}

func (c *wizardTestContext) theStepRequiresAnAddress(step string) error {
	c.guards[wizard.Step(step)] = func(f *wizardForm) error {
		if f.address == "" {
			return errors.New("select an address")
		}
		return nil
	}
	return nil
}

func (c *wizardTestContext) theStepRequiresAPaymentMethod(step string) error {
	c.guards[wizard.Step(step)] = func(f *wizardForm) error {
		if f.method == "" {
			return errors.New("choose a payment method")
		}
		return nil
	}
	return nil
}

func (c *wizardTestContext) iPressNext() error {
	w, err := c.flow()
	if err != nil {
		return err
	}
	_, c.err = w.Next()
	return nil
}

func (c *wizardTestContext) iPressBack() error {
	w, err := c.flow()
	if err != nil {
		return err
	}
	_, c.err = w.Back()
	return nil
}

func (c *wizardTestContext) iSelectAddress(address string) error {
	w, err := c.flow()
	if err != nil {
		return err
	}
	w.Form().address = address
	return nil
}

func (c *wizardTestContext) iChoosePaymentMethod(method string) error {
	w, err := c.flow()
	if err != nil {
		return err
	}
	w.Form().method = method
	return nil
}

func (c *wizardTestContext) theWizardIsOn(step string) error {
	w, err := c.flow()
	if err != nil {
		return err
	}
	if w.Current() != wizard.Step(step) {
		return fmt.Errorf("expected step %q, got %q", step, w.Current())
	}
	return nil
}

func (c *wizardTestContext) theStepIsBlocked() error {
	if !kit.IsCode(c.err, kit.StatusFailedPrecondition) {
		return fmt.Errorf("expected a blocked step, got %v", c.err)
	}
	return nil
}

func (c *wizardTestContext) theFlowHasExited() error {
	if !errors.Is(c.err, wizard.ErrExited) {
		return fmt.Errorf("expected the flow to exit, got %v", c.err)
	}
	if !c.exited {
		return errors.New("exit callback did not run")
	}
	return nil
}

// InitializeWizardScenario registers the step wizard steps.
func InitializeWizardScenario(ctx *godog.ScenarioContext) {
	tc := &wizardTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^a wizard with steps "([^"]*)"$`, tc.aWizardWithSteps)
	ctx.Step(`^the "([^"]*)" step requires an address$`, tc.theStepRequiresAnAddress)
	ctx.Step(`^the "([^"]*)" step requires a payment method$`, tc.theStepRequiresAPaymentMethod)

	// When steps
	ctx.Step(`^I press next$`, tc.iPressNext)
	ctx.Step(`^I press back$`, tc.iPressBack)
	ctx.Step(`^I select address "([^"]*)"$`, tc.iSelectAddress)
	ctx.Step(`^I choose payment method "([^"]*)"$`, tc.iChoosePaymentMethod)

	// Then steps
	ctx.Step(`^the wizard is on "([^"]*)"$`, tc.theWizardIsOn)
	ctx.Step(`^the step is blocked$`, tc.theStepIsBlocked)
	ctx.Step(`^the flow has exited$`, tc.theFlowHasExited)
}
