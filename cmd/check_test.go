package cmd

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"id-check/core/args"
	"id-check/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoot(t *testing.T, argv ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetArgs(argv)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})
	err := RootCmd.Execute()
	return out.String(), err
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,1,2\n1001"), 0o644))

	out, err := runRoot(t, "check", "-path="+path, "2", "5", "1001")
	require.NoError(t, err)
	assert.Equal(t, "2\ttrue\n5\tfalse\n1001\ttrue\n", out)
}

func TestCheck_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("1"), 0o644))

	_, err := runRoot(t, "check", "-path="+path)
	assert.EqualError(t, err, "no identifiers given")

	_, err = runRoot(t, "check", "-path="+path, "-3")
	var argErr *args.StartupArgError
	assert.ErrorAs(t, err, &argErr)

	_, err = runRoot(t, "check", "-path="+path, "abc")
	assert.EqualError(t, err, `"abc" is not an unsigned integer`)

	_, err = runRoot(t, "check", "-path="+filepath.Join(t.TempDir(), "missing.txt"), "1")
	assert.Error(t, err)
}

func TestForward_NoUpstream(t *testing.T) {
	app := fiber.New()
	app.All("/*", forward(server.Config{}))

	resp, err := app.Test(httptest.NewRequest("GET", "/anything", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
