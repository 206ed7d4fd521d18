package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMethodFrameRoundTrip(t *testing.T) {
	raw := WriteMethod(1, []byte{0, 60, 0, 40})
	fr, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	require.Equal(t, TypeMethod, fr.Type)
	require.EqualValues(t, 1, fr.Channel)
	require.Equal(t, []byte{0, 60, 0, 40}, fr.MethodPayload)
}

func TestHeaderFrameRoundTrip(t *testing.T) {
	raw := WriteHeader(1, 60, 5, []byte{0, 0})
	fr, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	require.Equal(t, TypeHeader, fr.Type)
	require.EqualValues(t, 60, fr.HeaderClassID)
	require.EqualValues(t, 5, fr.HeaderBodySize)
	require.Equal(t, []byte{0, 0}, fr.HeaderProps)
}

func TestBodyFrameRoundTrip(t *testing.T) {
	raw := WriteBody(1, []byte("hello"))
	fr, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	require.Equal(t, TypeBody, fr.Type)
	require.Equal(t, []byte("hello"), fr.BodyChunk)
}

func TestHeartbeatFrameRoundTrip(t *testing.T) {
	raw := WriteHeartbeat()
	fr, err := Read(bytes.NewReader(raw), 0)
	require.NoError(t, err)
	require.Equal(t, TypeHeartbeat, fr.Type)
	require.EqualValues(t, ConnectionChannel, fr.Channel)
}

func TestBadEndMarkerIsProtocolError(t *testing.T) {
	raw := WriteMethod(1, []byte{1, 2, 3})
	raw[len(raw)-1] = 0x00
	_, err := Read(bytes.NewReader(raw), 0)
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}

func TestFrameTooLarge(t *testing.T) {
	raw := WriteMethod(1, make([]byte, 100))
	_, err := Read(bytes.NewReader(raw), 16)
	require.Error(t, err)
	var tooLarge *FrameTooLarge
	require.ErrorAs(t, err, &tooLarge)
}

func TestUnknownFrameType(t *testing.T) {
	raw := encodeFrame(99, 1, nil)
	_, err := Read(bytes.NewReader(raw), 0)
	require.Error(t, err)
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
}
