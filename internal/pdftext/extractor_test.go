package pdftext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRunner struct {
	out   string
	errb  string
	err   error
	block bool
	args  []string
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.args = append([]string{name}, args...)
	if f.block {
		<-ctx.Done()
		return nil, nil, ctx.Err()
	}
	return []byte(f.out), []byte(f.errb), f.err
}

func TestExtract_SplitsPagesAndSkipsEmpty(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{out: "page one\r\nDT: 123\f   \n\f\tpage   three\f"}
	e := NewExtractor(Config{Layout: true}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "/tmp/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, []string{"page one\nDT: 123", "page three"}, res.Pages)
	assert.Equal(t, []string{"pdftotext", "-layout", "-enc", "UTF-8", "-eol", "unix", "/tmp/a.pdf", "-"}, r.args)
}

func TestExtract_RunnerFailure(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{errb: "Syntax Error: Couldn't find trailer dictionary", err: errors.New("exit status 1")}
	e := NewExtractor(Config{}, nil).WithRunner(r)

	res, err := e.Extract(context.Background(), "/tmp/broken.pdf")
	require.Error(t, err)
	assert.Empty(t, res.Pages)
	assert.Contains(t, res.Warnings[0], "trailer dictionary")
}

func TestExtract_Timeout(t *testing.T) {
	t.Parallel()

	r := &fakeRunner{block: true}
	e := NewExtractor(Config{Timeout: 20 * time.Millisecond}, nil).WithRunner(r)

	_, err := e.Extract(context.Background(), "/tmp/stuck.pdf")
	require.ErrorIs(t, err, ErrTimeout)
}

func TestExtract_NoTextLayer(t *testing.T) {
	t.Parallel()

	e := NewExtractor(Config{MaxPages: 3}, nil).WithRunner(&fakeRunner{out: "\f\f"})
	res, err := e.Extract(context.Background(), "/tmp/scan.pdf")
	require.NoError(t, err)
	assert.Empty(t, res.Pages)
	assert.Equal(t, []string{"no text layer found"}, res.Warnings)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Placa RNTRC\nABC1D23 123", Normalize("  Placa     RNTRC  \r\n\tABC1D23   123   "))
	assert.Equal(t, "", Normalize(""))
}
