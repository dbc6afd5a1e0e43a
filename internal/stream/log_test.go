package stream

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/braillebridge/teacher-console/pkg/backendapi"
)

func TestFormatEventKnownStatuses(t *testing.T) {
	cases := []struct {
		event backendapi.ProgressEvent
		want  string
	}{
		{backendapi.ProgressEvent{Status: "starting", Total: 3}, "Starting lesson pack generation (3 diagrams)"},
		{backendapi.ProgressEvent{Status: "processing", Idx: 1, Total: 3}, "Processing diagram 1 of 3"},
		{backendapi.ProgressEvent{Status: "diagram_ready", Idx: 1, Total: 3}, "Diagram 1 of 3 analysed"},
		{backendapi.ProgressEvent{Status: "scripts_ready", Idx: 2, Total: 3}, "Scripts for diagram 2 of 3 ready"},
		{backendapi.ProgressEvent{Status: "braille_ready", Idx: 2, Total: 3}, "Braille for diagram 2 of 3 ready"},
		{backendapi.ProgressEvent{Status: "audio_ready", Idx: 3, Total: 3}, "Audio for diagram 3 of 3 ready"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, FormatEvent(tc.event), "status %s", tc.event.Status)
	}
}

func TestFormatEventPassthroughAndFinished(t *testing.T) {
	require.Equal(t, "warming_up", FormatEvent(backendapi.ProgressEvent{Status: "warming_up"}))
	require.Equal(t, "", FormatEvent(backendapi.ProgressEvent{Status: StatusFinished}))
}

func TestLogIgnoresFinishedAndKeepsOrder(t *testing.T) {
	log := &Log{}

	_, appended := log.Append(backendapi.ProgressEvent{Status: "starting", Total: 1})
	require.True(t, appended)
	_, appended = log.Append(backendapi.ProgressEvent{Status: StatusFinished})
	require.False(t, appended)
	_, appended = log.Append(backendapi.ProgressEvent{Status: "audio_ready", Idx: 1, Total: 1})
	require.True(t, appended)

	require.Equal(t, []string{
		"Starting lesson pack generation (1 diagrams)",
		"Audio for diagram 1 of 1 ready",
	}, log.Lines())
}

func TestHubBroadcastsToSubscribers(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	ch, cancel := hub.Subscribe()
	defer cancel()

	hub.Publish(backendapi.ProgressEvent{Status: "processing", Idx: 1, Total: 2})
	require.Equal(t, "Processing diagram 1 of 2", <-ch)

	hub.Publish(backendapi.ProgressEvent{Status: StatusFinished})
	select {
	case line := <-ch:
		t.Fatalf("unexpected line for finished event: %q", line)
	default:
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub(zerolog.Nop())

	ch, cancel := hub.Subscribe()
	cancel()

	_, open := <-ch
	require.False(t, open)

	// Publishing after unsubscribe must not panic.
	hub.Publish(backendapi.ProgressEvent{Status: "starting", Total: 1})
}
