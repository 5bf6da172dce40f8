package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCommandReportsErrorsOnce(t *testing.T) {
	// main prints returned errors itself, so cobra must stay quiet
	require.True(t, rootCmd.SilenceErrors)
	require.True(t, rootCmd.SilenceUsage)
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"gen": false, "run": false, "fit": false, "fit-one": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		require.True(t, found, "missing subcommand %s", name)
	}
}
