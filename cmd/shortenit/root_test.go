package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vadimbarashkov/shortenit/internal/entity"
)

func TestRootCmd(t *testing.T) {
	t.Run("commands registered", func(t *testing.T) {
		cmd := newRootCmd()

		for _, path := range [][]string{
			{"serve"},
			{"migrate", "up"},
			{"migrate", "down"},
			{"migrate", "version"},
			{"account", "create"},
			{"account", "set-limit"},
			{"account", "delete"},
		} {
			found, _, err := cmd.Find(path)

			assert.NoError(t, err)
			assert.Equal(t, path[len(path)-1], found.Name())
		}
	})

	t.Run("missing config file", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"serve", "--config", "does/not/exist.yml"})

		assert.Error(t, cmd.Execute())
	})

	t.Run("required flag", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"account", "create", "--config", "does/not/exist.yml"})

		err := cmd.Execute()

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("negative limit", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"account", "create", "--name", "acme", "--limit=-5", "--config", "does/not/exist.yml"})

		err := cmd.Execute()

		assert.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrInvalidAccount)
	})
}
