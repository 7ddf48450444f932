package add

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/logbook/pkg/store"
)

type testConfig string

func (c testConfig) BasePath() string { return string(c) }

func TestDecode(t *testing.T) {
	in := `{"id":1,"date":"2021-03-05T10:00:00Z","user":"ann","content":"hi"}

{"id":2,"date":"2021-03-06T10:00:00Z"}
`
	msgs, err := Decode(strings.NewReader(in), "test")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, int64(1), msgs[0].ID)
	assert.Equal(t, "ann", msgs[0].User)
	assert.Equal(t, time.March, msgs[1].Date.Month())
}

func TestDecodeReportsLine(t *testing.T) {
	_, err := Decode(strings.NewReader("{\"id\":1,\"date\":\"2021-03-05T10:00:00Z\"}\nnot json\n"), "in.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "in.jsonl:2")

	_, err = Decode(strings.NewReader(`{"id":1}`), "in.jsonl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no date")
}

func TestAddStoresMessages(t *testing.T) {
	color.NoColor = true
	p, err := store.Load(testConfig(t.TempDir()))
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "a.jsonl")
	require.NoError(t, os.WriteFile(file, []byte(`{"id":1,"date":"2021-03-05T10:00:00Z"}`+"\n"), 0o644))

	var out bytes.Buffer
	a := Add{
		Inputs:      []string{file, "-"},
		Stdin:       strings.NewReader(`{"id":2,"date":"2021-04-01T10:00:00Z"}` + "\n"),
		Out:         &out,
		Persistence: p,
	}
	require.NoError(t, a.Do(context.Background()))

	all := p.ListAll(context.Background())
	require.Len(t, all, 2)
	assert.Contains(t, out.String(), "Imported - 2 messages")
	assert.Contains(t, out.String(), "April 2021")
}

func TestAddRequiresInput(t *testing.T) {
	p, err := store.Load(testConfig(t.TempDir()))
	require.NoError(t, err)
	assert.Error(t, (&Add{Persistence: p}).Do(context.Background()))
	assert.Error(t, (&Add{Inputs: []string{"x"}}).Do(context.Background()))
}
