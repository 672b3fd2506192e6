package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type call struct {
	dir  string
	name string
	args []string
}

type fakeRunner struct {
	calls []call
	out   []byte
	err   error
}

func (f *fakeRunner) CombinedOutput(_ context.Context, dir string, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{dir: dir, name: name, args: args})
	return f.out, f.err
}

func TestAvailable(t *testing.T) {
	r := &fakeRunner{out: []byte("4f0c2b7a1d9e\n")}
	d := New(WithRunner(r))
	require.True(t, d.Available(context.Background()))
	require.Equal(t, []string{"ps", "-q"}, r.calls[0].args)

	r = &fakeRunner{err: errors.New("cannot connect to the Docker daemon")}
	d = New(WithRunner(r))
	require.False(t, d.Available(context.Background()))
}

func TestPS(t *testing.T) {
	r := &fakeRunner{out: []byte("CONTAINER ID   IMAGE\n")}
	d := New(WithRunner(r))
	out, err := d.PS(context.Background())
	require.NoError(t, err)
	require.Contains(t, out, "CONTAINER ID")
	require.Equal(t, []string{"ps", "-a"}, r.calls[0].args)
}

func TestPSError(t *testing.T) {
	r := &fakeRunner{out: []byte("daemon not running"), err: errors.New("exit status 1")}
	d := New(WithRunner(r))
	_, err := d.PS(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "daemon not running")
}

func TestComposeUp(t *testing.T) {
	r := &fakeRunner{}
	d := New(WithRunner(r))
	require.NoError(t, d.ComposeUp(context.Background(), "/srv/milvus", "docker-compose.yml"))

	require.Len(t, r.calls, 1)
	require.Equal(t, "/srv/milvus", r.calls[0].dir)
	require.Equal(t, "docker", r.calls[0].name)
	require.Equal(t, []string{"compose", "-f", "docker-compose.yml", "up", "-d"}, r.calls[0].args)
}

func TestComposeStop(t *testing.T) {
	r := &fakeRunner{}
	d := New(WithRunner(r))
	require.NoError(t, d.ComposeStop(context.Background(), "/srv/milvus", "docker-compose.yml"))
	require.Equal(t, []string{"compose", "-f", "docker-compose.yml", "stop"}, r.calls[0].args)
}

func TestComposeUpErrorIncludesOutput(t *testing.T) {
	r := &fakeRunner{out: []byte("no such service"), err: errors.New("exit status 17")}
	d := New(WithRunner(r))
	err := d.ComposeUp(context.Background(), "/srv", "compose.yml")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "no such service"))
}

func TestWithBinary(t *testing.T) {
	r := &fakeRunner{}
	d := New(WithRunner(r), WithBinary("podman"))
	_ = d.Available(context.Background())
	require.Equal(t, "podman", r.calls[0].name)
}
