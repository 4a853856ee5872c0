package dispatch_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notifykit/notifier/pkg/dispatch"
)

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := dispatch.NewDevSender(dir)

	err := sender.Send(context.Background(), dispatch.SendParams{
		To:      "a@b.com",
		Subject: "Order Created",
		Body:    "Your order ORD-1 is confirmed.",
		Metadata: map[string]string{
			"event_type": "order.created",
		},
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var bodyFile, metaFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".txt":
			bodyFile = filepath.Join(dir, e.Name())
		case ".json":
			metaFile = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, bodyFile)
	require.NotEmpty(t, metaFile)

	body, err := os.ReadFile(bodyFile)
	require.NoError(t, err)
	assert.Equal(t, "Your order ORD-1 is confirmed.", string(body))

	raw, err := os.ReadFile(metaFile)
	require.NoError(t, err)
	var meta map[string]any
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "a@b.com", meta["to"])
	assert.Equal(t, "Order Created", meta["subject"])

	// Filenames are derived from the sanitized subject.
	assert.True(t, strings.Contains(filepath.Base(bodyFile), "order_created"))
}

func TestDevSender_InvalidParams(t *testing.T) {
	t.Parallel()

	sender := dispatch.NewDevSender(t.TempDir())
	err := sender.Send(context.Background(), dispatch.SendParams{Subject: "no recipient"})
	assert.ErrorIs(t, err, dispatch.ErrInvalidParams)
}
