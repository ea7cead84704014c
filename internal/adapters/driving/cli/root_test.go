package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	assert.Equal(t, "booktalk", rootCmd.Use)

	sub := make([]string, 0, 4)
	for _, c := range rootCmd.Commands() {
		sub = append(sub, c.Name())
	}
	assert.Contains(t, sub, "chat")
	assert.Contains(t, sub, "version")
}

func TestRootCmd_Help(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Chat with a plain-text book")
}

func TestChatCmd_TooManyArgs(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"chat", "one.txt", "two.txt"})

	assert.Error(t, rootCmd.Execute())
}

func TestChatCmd_Flags(t *testing.T) {
	assert.NotNil(t, chatCmd.Flags().Lookup("watch"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
}
