package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenBundle = `
env: k1: "key"
families: Token: {
	arity: 1
	ctors: [{name: "held", indices: ["k1"]}]
}
deciders: ["key"]
obligations: [
	{name: "token_uniq", icount: 1, type: "Token k1", lhs: "e", rhs: "held"},
]
`

// tokenOpenBundle declares no decider for "key", so the branch stays open.
const tokenOpenBundle = `
env: k1: "key"
families: Token: {
	arity: 1
	ctors: [{name: "held", indices: ["k1"]}]
}
obligations: [
	{name: "token_uniq", icount: 1, type: "Token k1", lhs: "e", rhs: "held"},
]
`

// writeTestBundle writes bundle source to a temp file.
func writeTestBundle(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.cue")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

// execute runs the CLI with args and returns stdout, stderr, and the error.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "hedberg", cmd.Use)
	assert.Contains(t, cmd.Long, "uniqueness")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"validate", "prove", "log"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormatRejected(t *testing.T) {
	path := writeTestBundle(t, tokenBundle)
	_, _, err := execute(t, "--format", "xml", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestProveCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	proveCmd, _, err := cmd.Find([]string{"prove"})
	require.NoError(t, err)

	require.NotNil(t, proveCmd.Flags().Lookup("obligation"))
	logFlag := proveCmd.Flags().Lookup("log")
	require.NotNil(t, logFlag)
	assert.Equal(t, "", logFlag.DefValue)
}

func TestLogCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	logCmd, _, err := cmd.Find([]string{"log"})
	require.NoError(t, err)

	require.NotNil(t, logCmd.Flags().Lookup("obligation-id"))
	require.NotNil(t, logCmd.Flags().Lookup("run"))
}
