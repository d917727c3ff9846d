package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/checkout"
)

var (
	demoPromo   string
	demoMethod  string
	demoAddress string
)

// demoItems are the fixture cards offered to the demo cart.
var demoItems = []struct {
	candidate cart.Candidate
	quantity  int64
}{
	{cart.Candidate{ID: "jar", Name: "Refurbished glass jar", UnitPriceCents: 1000, UnitPoints: 5, UnitWeightGrams: 400, UnitCO2Grams: 250}, 2},
	{cart.Candidate{ID: "tote", Name: "Upcycled tote bag", UnitPriceCents: 400, UnitPoints: 1, UnitWeightGrams: 120, UnitCO2Grams: 90}, 1},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted checkout and print the receipt",
	RunE:  runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoPromo, "promo", "ECO10", "Promotion code to apply (empty for none)")
	demoCmd.Flags().StringVar(&demoMethod, "method", "card", "Payment method")
	demoCmd.Flags().StringVar(&demoAddress, "address", "home", "Delivery address id")
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Payment.Timeout+5*time.Second)
	defer cancel()

	promotions, err := cfg.PromotionTable()
	if err != nil {
		return err
	}
	ledger := cart.New("demo", cart.WithPromotions(promotions), cart.WithLogger(logger))
	sess := checkout.New("demo", ledger, cfg.Gateway(logger),
		checkout.WithLogger(logger),
		checkout.WithTimeout(cfg.Payment.Timeout),
	)
	defer sess.Close()

	for _, item := range demoItems {
		if err := sess.AddItem(item.candidate, item.quantity); err != nil {
			return err
		}
	}
	if demoPromo != "" {
		if _, err := sess.ApplyPromotion(demoPromo); err != nil {
			return err
		}
	}
	if err := sess.SelectAddress(demoAddress); err != nil {
		return err
	}
	if _, err := sess.Next(ctx); err != nil {
		return err
	}
	if err := sess.ChoosePayment(demoMethod); err != nil {
		return err
	}
	if _, err := sess.Next(ctx); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Processing payment...")
	if _, err := sess.Next(ctx); err != nil {
		return err
	}
	if err := sess.Wait(ctx); err != nil {
		return fmt.Errorf("checkout failed: %w", err)
	}

	summary, ok := sess.Summary()
	if !ok {
		return fmt.Errorf("checkout did not complete")
	}
	fmt.Fprintln(cmd.OutOrStdout(), checkout.FormatReceipt(summary))
	return nil
}
