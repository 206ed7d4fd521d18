package buffer

import (
	"bytes"
	"testing"

	"github.com/amqp091-core/amqp091/internal/frame"
	"github.com/amqp091-core/amqp091/internal/wire"
	"github.com/stretchr/testify/require"
)

func TestPushMethodNeverSplits(t *testing.T) {
	b := New()
	require.NoError(t, b.PushMethod(1, &wire.ChannelOpen{}))
	drained := b.DrainIntoNewBuf()

	fr, err := frame.Read(bytes.NewReader(drained), 0)
	require.NoError(t, err)
	require.Equal(t, frame.TypeMethod, fr.Type)
	require.Zero(t, b.Len())
}

func TestPushContentBodySplitsOnFrameMax(t *testing.T) {
	b := New()
	body := bytes.Repeat([]byte{'x'}, 25)
	b.PushContentBody(1, body, 18) // maxChunk = 18-8 = 10
	drained := b.DrainIntoNewBuf()

	r := bytes.NewReader(drained)
	var chunks [][]byte
	for r.Len() > 0 {
		fr, err := frame.Read(r, 0)
		require.NoError(t, err)
		require.Equal(t, frame.TypeBody, fr.Type)
		chunks = append(chunks, fr.BodyChunk)
	}
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], 10)
	require.Len(t, chunks[1], 10)
	require.Len(t, chunks[2], 5)

	var reassembled []byte
	for _, c := range chunks {
		reassembled = append(reassembled, c...)
	}
	require.Equal(t, body, reassembled)
}

func TestPushContentBodyEmptyPushesNoFrame(t *testing.T) {
	b := New()
	b.PushContentBody(1, nil, 4096)
	require.Zero(t, b.Len())
}

func TestDrainIsAtomicAndResets(t *testing.T) {
	b := New()
	require.NoError(t, b.PushMethod(1, &wire.ChannelOpen{}))
	first := b.DrainIntoNewBuf()
	require.NotEmpty(t, first)
	require.Zero(t, b.Len())

	require.NoError(t, b.PushMethod(1, &wire.ChannelCloseOk{}))
	second := b.DrainIntoNewBuf()
	require.NotEqual(t, first, second)
}
