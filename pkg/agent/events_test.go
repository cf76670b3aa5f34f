package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_SSEFrames(t *testing.T) {
	frame, err := nodeEvent(Chatbot).SSE()
	require.NoError(t, err)
	assert.Equal(t, "event: node\ndata: chatbot\n\n", string(frame))

	frame, err = Event{Type: EventMessage, Data: TextPayload{Text: "hi"}}.SSE()
	require.NoError(t, err)
	assert.Equal(t, "event: message\ndata: {\"text\":\"hi\"}\n\n", string(frame))

	frame, err = doneEvent().SSE()
	require.NoError(t, err)
	assert.Equal(t, "event: done\ndata: end\n\n", string(frame))
}

func TestEvent_MultilineErrorStaysInOneFrame(t *testing.T) {
	frame, err := errorEvent(errors.New("line one\nline two")).SSE()
	require.NoError(t, err)
	assert.Equal(t, "event: error\ndata: line one\ndata: line two\n\n", string(frame))
}
