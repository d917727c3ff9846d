package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecocart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
payment:
  delay: 0s
  timeout: 2s
logging:
  level: error
`), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", path))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		demoPromo, demoMethod, demoAddress = "ECO10", "card", "home"
	})

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDemo_printsReceipt(t *testing.T) {
	out := execute(t, "demo")

	assert.Contains(t, out, "2 x Refurbished glass jar @ $10.00 = $20.00")
	assert.Contains(t, out, "Subtotal:              $24.00")
	assert.Contains(t, out, "Discount (ECO10):  -$2.40")
	assert.Contains(t, out, "TOTAL:                 $21.60")
	assert.Contains(t, out, "Eco Points Earned: 11")
}

func TestDemo_withoutPromotion(t *testing.T) {
	out := execute(t, "demo", "--promo", "")

	assert.Contains(t, out, "TOTAL:                 $24.00")
	assert.NotContains(t, out, "Discount")
}

func TestPromos_listsTable(t *testing.T) {
	out := execute(t, "promos")

	assert.Contains(t, out, "ECO10")
	assert.Contains(t, out, "10%")
	assert.Contains(t, out, "RECYCLE20")
}
