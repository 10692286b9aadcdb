package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	original := readPassword
	t.Cleanup(func() {
		readPassword = original
	})

	readPassword = func() ([]byte, error) {
		next := answers[0]
		answers = answers[1:]
		return []byte(next), nil
	}
}

func noEnv(string) string { return "" }

func TestCollectInput_Flags(t *testing.T) {
	stubPasswords(t, "supersecret", "supersecret")
	var out bytes.Buffer

	input, err := collectInput(
		[]string{"-email", "root@x.com", "-nombre", "Ana"},
		bufio.NewReader(strings.NewReader("")),
		&out,
		noEnv,
	)
	require.NoError(t, err)

	assert.Equal(t, "root@x.com", input.Email)
	assert.Equal(t, "root@x.com", input.Username)
	assert.Equal(t, "supersecret", input.Password)
	require.NotNil(t, input.Profile)
	assert.Equal(t, "Ana", input.Profile.FirstName)
}

func TestCollectInput_PromptsForEmail(t *testing.T) {
	var out bytes.Buffer

	input, err := collectInput(
		[]string{"-username", "root"},
		bufio.NewReader(strings.NewReader("  root@x.com \n")),
		&out,
		func(key string) string {
			if key == passwordEnv {
				return "from-env-secret"
			}
			return ""
		},
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Email: ")
	assert.Equal(t, "root@x.com", input.Email)
	assert.Equal(t, "root", input.Username)
	assert.Equal(t, "from-env-secret", input.Password)
	assert.Nil(t, input.Profile)
}

func TestCollectInput_PasswordMismatch(t *testing.T) {
	stubPasswords(t, "supersecret", "different")
	var out bytes.Buffer

	_, err := collectInput(
		[]string{"-email", "root@x.com"},
		bufio.NewReader(strings.NewReader("")),
		&out,
		noEnv,
	)
	assert.ErrorIs(t, err, errPasswordMismatch)
}
