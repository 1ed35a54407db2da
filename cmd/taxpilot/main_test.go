package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps user settings out of the run and returns a fresh db path.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TAXPILOT_CONFIG", "")
	return filepath.Join(home, "draft.db")
}

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := execute(context.Background(), &buf, append([]string{"--db", db, "--log-level", "error"}, args...))
	return buf.String(), err
}

func writeDraft(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sampleDraft = `
firstName: Jordan
lastName: Blake
filingStatus: single
income:
  w2: true
incomeDetails:
  w2Wages: "52,000"
  w2FederalWithheld: 4000
state: NY
`

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{})

	assert.Equal(t, "taxpilot", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"calculate", "preview", "validate", "states", "draft", "status", "pay", "sign", "compare", "serve", "version"} {
		found, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, found.Name())
	}
}

func TestRootCommand_Help(t *testing.T) {
	db := isolate(t)
	out, err := run(t, db, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "compare")
}

func TestCalculate_FromFile(t *testing.T) {
	db := isolate(t)
	path := writeDraft(t, sampleDraft)

	out, err := run(t, db, "calculate", path, "--format", "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "{"), "json output: %s", out)

	_, err = run(t, db, "calculate", path, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestStates(t *testing.T) {
	db := isolate(t)

	out, err := run(t, db, "states")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "Texas")

	out, err = run(t, db, "states", "texas")
	require.NoError(t, err)
	assert.Contains(t, out, "TX Texas (no state income tax)")

	_, err = run(t, db, "states", "atlantis")
	require.Error(t, err)
}

func TestDraft_SetShowReset(t *testing.T) {
	db := isolate(t)

	out, err := run(t, db, "draft", "set", "firstName=Ada", "incomeDetails.w2Wages=52000")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 2 field(s)")

	out, err = run(t, db, "draft", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"firstName": "Ada"`)

	_, err = run(t, db, "draft", "set", "noSuchField=1")
	require.Error(t, err)

	_, err = run(t, db, "draft", "reset")
	require.NoError(t, err)
	out, err = run(t, db, "draft", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "Ada")
}

func TestDraft_ImportExport(t *testing.T) {
	db := isolate(t)
	path := writeDraft(t, sampleDraft)

	_, err := run(t, db, "draft", "import", path)
	require.NoError(t, err)

	exported := filepath.Join(t.TempDir(), "out.json")
	_, err = run(t, db, "draft", "export", exported)
	require.NoError(t, err)

	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Jordan")
}

func TestValidate_ReportsOpenIssues(t *testing.T) {
	db := isolate(t)

	out, err := run(t, db, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open issue")
	assert.Contains(t, out, "About you")
}

func TestFilingFlow(t *testing.T) {
	db := isolate(t)
	path := writeDraft(t, sampleDraft)
	_, err := run(t, db, "draft", "import", path)
	require.NoError(t, err)

	out, err := run(t, db, "status", "advance")
	require.NoError(t, err)
	assert.Contains(t, out, "Return status: review")

	// A balance is due, so signing must wait for payment.
	_, err = run(t, db, "sign", "--first", "Jordan", "--last", "Blake", "--pin", "12345",
		"--authorize", "--confirm-accounts", "--privacy-read")
	require.Error(t, err)

	_, err = run(t, db, "pay", "--method", "card", "--name", "Jordan Blake", "--card", "4242")
	require.Error(t, err, "short card number is rejected")

	out, err = run(t, db, "pay", "--method", "card", "--name", "Jordan Blake",
		"--card", "4242 4242 4242 4242", "--exp", "12/29", "--cvc", "123", "--zip", "10001")
	require.NoError(t, err)
	assert.Contains(t, out, "Return status: paid")
	assert.Contains(t, out, "Payment confirmation: PAY-")

	// Filing always needs the e-signature, even once the balance is paid.
	_, err = run(t, db, "status", "advance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature required")
	out, err = run(t, db, "status", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Return status: paid")
	assert.NotContains(t, out, "Filing confirmation:")

	out, err = run(t, db, "sign", "--first", "Jordan", "--last", "Blake", "--pin", "12345",
		"--authorize", "--confirm-accounts", "--privacy-read")
	require.NoError(t, err)
	assert.Contains(t, out, "Return status: submitted")
	assert.Contains(t, out, "Filing confirmation:")
}

func TestCompare(t *testing.T) {
	db := isolate(t)
	path := writeDraft(t, sampleDraft)

	out, err := run(t, db, "compare", path, "--with", "move_tx", "--alt", "set_ira:amount=3000")
	require.NoError(t, err)
	assert.Contains(t, out, "WHAT-IF COMPARISON")
	assert.Contains(t, out, "RECOMMENDATIONS")

	out, err = run(t, db, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "max_ira")

	_, err = run(t, db, "compare", path)
	require.Error(t, err)

	_, err = run(t, db, "compare", path, "--with", "nope")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	db := isolate(t)
	out, err := run(t, db, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "taxpilot dev")
}

func TestStatusAdvance_RefundStopsAtReview(t *testing.T) {
	db := isolate(t)
	path := writeDraft(t, `
firstName: Sam
lastName: Lee
filingStatus: single
incomeDetails:
  w2Wages: "30,000"
  w2FederalWithheld: 5000
state: TX
`)
	_, err := run(t, db, "draft", "import", path)
	require.NoError(t, err)

	_, err = run(t, db, "status", "advance")
	require.NoError(t, err)

	_, err = run(t, db, "status", "advance")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature required")

	_, err = run(t, db, "pay", "--method", "card", "--name", "Sam Lee",
		"--card", "4242 4242 4242 4242", "--exp", "12/29", "--cvc", "123", "--zip", "73301")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing is owed")

	out, err := run(t, db, "sign", "--first", "Sam", "--last", "Lee", "--pin", "54321",
		"--authorize", "--confirm-accounts", "--privacy-read")
	require.NoError(t, err)
	assert.Contains(t, out, "Return status: submitted")
}
