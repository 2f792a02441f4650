package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stellar/go-stellar-sdk/keypair"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goPreauthLedger/internal/core/ledger/entry"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/allowtrust"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/changetrust"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/preauth"
	"github.com/LeJamon/goPreauthLedger/internal/core/tx/sle"
)

type fixture struct {
	dir    string
	conf   string
	issuer sle.AccountID
	holder sle.AccountID
}

// newFixture writes a config with a bbolt store, an sqlite journal and two
// genesis accounts: an AUTH_REQUIRED issuer and a holder.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	issuer := keypair.MustRandom()
	holder := keypair.MustRandom()

	conf := filepath.Join(dir, "preauthd.toml")
	content := fmt.Sprintf(`
[storage]
backend = "bbolt"
path = %q

[journal]
driver = "sqlite"
dsn = %q

[log]
level = "warn"

[[genesis.accounts]]
address = %q
balance = 1000000000
flags = %d

[[genesis.accounts]]
address = %q
balance = 1000000000
`, filepath.Join(dir, "ledger"), filepath.Join(dir, "journal.db"),
		issuer.Address(), entry.AccountAuthRequired|entry.AccountAuthRevocable,
		holder.Address())
	require.NoError(t, os.WriteFile(conf, []byte(content), 0o600))

	return &fixture{
		dir:    dir,
		conf:   conf,
		issuer: sle.MustDecodeAccountID(issuer.Address()),
		holder: sle.MustDecodeAccountID(holder.Address()),
	}
}

// writeOps stores envelopes as an operations file and returns its path.
func (f *fixture) writeOps(t *testing.T, name string, envelopes ...tx.Envelope) string {
	t.Helper()
	data, err := json.Marshal(envelopes)
	require.NoError(t, err)
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	configFile, debug, quiet = "", false, false
	applyJSON, journalLimit, keygenCount = false, 20, 1
	cfg = nil

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionAndKeygenNeedNoConfig(t *testing.T) {
	out, err := execute(t, "version", "--conf", "/does/not/exist.toml")
	require.NoError(t, err)
	assert.Contains(t, out, "preauthd version 0.1.0-dev")

	out, err = execute(t, "keygen", "-n", "3")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		kp, err := keypair.ParseFull(fields[1])
		require.NoError(t, err)
		assert.Equal(t, fields[0], kp.Address())
	}

	_, err = execute(t, "keygen", "-n", "0")
	assert.Error(t, err)
}

func TestMissingConfigFails(t *testing.T) {
	_, err := execute(t, "audit", "--conf", filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestPreauthorizationLifecycle(t *testing.T) {
	f := newFixture(t)

	out, err := execute(t, "init", "--conf", f.conf)
	require.NoError(t, err)
	assert.Contains(t, out, "created 2 of 2 genesis accounts")

	// Rerunning init leaves the seeded accounts alone.
	out, err = execute(t, "init", "--conf", f.conf)
	require.NoError(t, err)
	assert.Contains(t, out, "created 0 of 2 genesis accounts")

	ops := f.writeOps(t, "ops.json",
		tx.Envelope{Source: f.issuer, Operation: preauth.NewCreatePreauthorization(f.holder, "USD")},
		tx.Envelope{Source: f.issuer, Operation: allowtrust.NewAllowTrust(f.holder, "USD", entry.Authorized)},
		tx.Envelope{Source: f.holder, Operation: &changetrust.ChangeTrust{AssetCode: "USD", Issuer: f.issuer, Limit: 5000000000}},
		tx.Envelope{Source: f.issuer, Operation: preauth.NewCreatePreauthorization(f.holder, "USD")},
	)
	out, err = execute(t, "apply", "--conf", f.conf, ops)
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE_PREAUTHORIZATION_SUCCESS")
	assert.Contains(t, out, "CREATE_PREAUTHORIZATION_ALREADY_EXISTS")
	assert.Contains(t, out, "applied 3 of 4 operations")
	assert.Contains(t, out, f.issuer.String())

	out, err = execute(t, "entries", "--conf", f.conf, f.holder.String())
	require.NoError(t, err)
	assert.Contains(t, out, "subentries 1")
	lines := strings.Split(out, "\n")
	var trustLine, preauthorization string
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "TrustLine"):
			trustLine = line
		case strings.HasPrefix(line, "Preauthorization"):
			preauthorization = line
		}
	}
	assert.Contains(t, trustLine, "AUTHORIZED", "trust line inherits the preauthorization")
	assert.NotContains(t, trustLine, "UNAUTHORIZED")
	assert.Contains(t, preauthorization, "AUTHORIZED")
	assert.NotContains(t, preauthorization, "UNAUTHORIZED")

	out, err = execute(t, "audit", "--conf", f.conf)
	require.NoError(t, err)
	assert.Contains(t, out, "PASSED")
	assert.Contains(t, out, "1 trust lines, 1 preauthorizations")

	out, err = execute(t, "journal", "--conf", f.conf, f.holder.String())
	require.NoError(t, err)
	assert.Contains(t, out, "CHANGE_TRUST_SUCCESS")
	assert.NotContains(t, out, "CREATE_PREAUTHORIZATION")

	out, err = execute(t, "journal", "--conf", f.conf, "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATE_PREAUTHORIZATION_ALREADY_EXISTS")
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 2)
}

func TestApplyJSONOutput(t *testing.T) {
	f := newFixture(t)
	_, err := execute(t, "init", "--conf", f.conf)
	require.NoError(t, err)

	ops := f.writeOps(t, "ops.json",
		tx.Envelope{Source: f.issuer, Operation: preauth.NewCreatePreauthorization(f.holder, "EUR")},
		tx.Envelope{Source: f.issuer, Operation: preauth.NewRemovePreauthorization(f.holder, "GBP")},
	)
	out, err := execute(t, "apply", "--conf", f.conf, "--json", ops)
	require.NoError(t, err)

	// The balance table follows the JSON document.
	doc := out[:strings.LastIndex(out, "]")+1]
	var results []applyOutput
	require.NoError(t, json.Unmarshal([]byte(doc), &results))
	require.Len(t, results, 2)

	assert.True(t, results[0].Applied)
	assert.Equal(t, "CREATE_PREAUTHORIZATION", results[0].Type)
	assert.Len(t, results[0].Metadata.AffectedNodes, 2)

	assert.False(t, results[1].Applied)
	assert.Equal(t, "REMOVE_PREAUTHORIZATION_DOES_NOT_EXIST", results[1].Result)
	assert.Empty(t, results[1].Metadata.AffectedNodes)
}

func TestApplyRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	bad := filepath.Join(f.dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"source":"nope","type":"CHANGE_TRUST","body":{}}]`), 0o600))
	_, err := execute(t, "apply", "--conf", f.conf, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "envelope 0")

	_, err = execute(t, "apply", "--conf", f.conf, filepath.Join(f.dir, "missing.json"))
	assert.Error(t, err)
}

func TestApplyFromStdin(t *testing.T) {
	f := newFixture(t)
	_, err := execute(t, "init", "--conf", f.conf)
	require.NoError(t, err)

	data, err := json.Marshal([]tx.Envelope{
		{Source: f.issuer, Operation: preauth.NewCreatePreauthorization(f.holder, "USD")},
	})
	require.NoError(t, err)
	rootCmd.SetIn(bytes.NewReader(data))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, err := execute(t, "apply", "--conf", f.conf, "-")
	require.NoError(t, err)
	assert.Contains(t, out, "applied 1 of 1 operations")
}

func TestEntriesUnknownAccount(t *testing.T) {
	f := newFixture(t)

	_, err := execute(t, "entries", "--conf", f.conf, f.holder.String())
	assert.ErrorIs(t, err, ErrUnknownAccount)

	_, err = execute(t, "entries", "--conf", f.conf, "not-an-address")
	assert.Error(t, err)
}

func TestJournalDisabled(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "preauthd.toml")
	require.NoError(t, os.WriteFile(conf, []byte("[storage]\nbackend = \"memory\"\n"), 0o600))

	_, err := execute(t, "journal", "--conf", conf)
	assert.ErrorIs(t, err, ErrJournalDisabled)
}

func TestFlagNames(t *testing.T) {
	tests := []struct {
		flags uint32
		want  string
	}{
		{0, "UNAUTHORIZED"},
		{entry.Authorized, "AUTHORIZED"},
		{entry.AuthorizedToMaintainLiabilities, "MAINTAIN_LIABILITIES"},
		{entry.AuthorizationMask, "0x3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, flagNames(tt.flags))
	}
}
