package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	resolveErr  error
	downloadErr error
	data        []byte
	mimeType    string
}

func (s *stubProvider) ResolveMedia(_ context.Context, mediaID string) (string, string, error) {
	if s.resolveErr != nil {
		return "", "", s.resolveErr
	}
	return "https://cdn.example/" + mediaID, s.mimeType, nil
}

func (s *stubProvider) DownloadMedia(_ context.Context, _ string) ([]byte, error) {
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	return s.data, nil
}

type stubSafety struct {
	label string
	err   error
}

func (s *stubSafety) Classify(_ context.Context, _ []byte, _ string) (string, error) {
	return s.label, s.err
}

type stubProbe struct {
	seconds float64
	err     error
}

func (s *stubProbe) Duration(_ context.Context, _ []byte, _ string) (float64, error) {
	return s.seconds, s.err
}

type stubTranscriber struct {
	text string
	err  error
}

func (s *stubTranscriber) Transcribe(_ context.Context, _ []byte, _ string) (string, error) {
	return s.text, s.err
}

type stubStore struct {
	saved    [][]byte
	lastKind string
	err      error
}

func (s *stubStore) Save(_ context.Context, kind string, data []byte, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = append(s.saved, data)
	s.lastKind = kind
	return "/uploads/" + kind + "/obj.bin", nil
}

func newPipeline(provider *stubProvider, safety *stubSafety, probe *stubProbe, tr *stubTranscriber, store *stubStore) *Pipeline {
	return &Pipeline{
		Provider:    provider,
		Safety:      safety,
		Probe:       probe,
		Transcriber: tr,
		Store:       store,
		MaxSeconds:  60,
	}
}

func TestIntakeImageHappyPath(t *testing.T) {
	store := &stubStore{}
	p := newPipeline(
		&stubProvider{data: []byte("jpegdata"), mimeType: "image/jpeg"},
		&stubSafety{label: "street"}, &stubProbe{}, &stubTranscriber{}, store,
	)

	result, err := p.Intake(context.Background(), "m1", KindImage)

	require.NoError(t, err)
	assert.Equal(t, "/uploads/image/obj.bin", result.Path)
	assert.Empty(t, result.Transcript)
	assert.Equal(t, "image", store.lastKind)
}

func TestIntakeRejectsUnsafeImage(t *testing.T) {
	store := &stubStore{}
	p := newPipeline(
		&stubProvider{data: []byte("jpegdata"), mimeType: "image/jpeg"},
		&stubSafety{label: "Nudity"}, &stubProbe{}, &stubTranscriber{}, store,
	)

	_, err := p.Intake(context.Background(), "m1", KindImage)

	assert.ErrorIs(t, err, ErrUnsafeImage)
	assert.Empty(t, store.saved, "rejected media must not be persisted")
}

func TestIntakeRejectsOverlongVideo(t *testing.T) {
	store := &stubStore{}
	p := newPipeline(
		&stubProvider{data: []byte("mp4data"), mimeType: "video/mp4"},
		&stubSafety{}, &stubProbe{seconds: 75}, &stubTranscriber{}, store,
	)

	_, err := p.Intake(context.Background(), "m1", KindVideo)

	assert.ErrorIs(t, err, ErrTooLong)
	assert.Empty(t, store.saved)
}

func TestIntakeVideoAtLimitAccepted(t *testing.T) {
	store := &stubStore{}
	p := newPipeline(
		&stubProvider{data: []byte("mp4data"), mimeType: "video/mp4"},
		&stubSafety{}, &stubProbe{seconds: 60}, &stubTranscriber{}, store,
	)

	_, err := p.Intake(context.Background(), "m1", KindVideo)

	assert.NoError(t, err)
	assert.Len(t, store.saved, 1)
}

func TestIntakeChecksFailOpen(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		safety *stubSafety
		probe  *stubProbe
	}{
		{"safety service down", KindImage, &stubSafety{err: errors.New("timeout")}, &stubProbe{}},
		{"probe service down", KindVideo, &stubSafety{}, &stubProbe{err: errors.New("timeout")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			p := newPipeline(
				&stubProvider{data: []byte("data"), mimeType: "image/jpeg"},
				tt.safety, tt.probe, &stubTranscriber{}, store,
			)

			_, err := p.Intake(context.Background(), "m1", tt.kind)

			assert.NoError(t, err, "an unavailable check must not block intake")
			assert.Len(t, store.saved, 1)
		})
	}
}

func TestIntakeAudioTranscribes(t *testing.T) {
	store := &stubStore{}
	p := newPipeline(
		&stubProvider{data: []byte("oggdata"), mimeType: "audio/ogg"},
		&stubSafety{}, &stubProbe{seconds: 12},
		&stubTranscriber{text: "  the gutter is blocked  "}, store,
	)

	result, err := p.Intake(context.Background(), "m1", KindAudio)

	require.NoError(t, err)
	assert.Equal(t, "the gutter is blocked", result.Transcript)
}

func TestIntakeAudioTranscriptionFailureUsesPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		tr   *stubTranscriber
	}{
		{"service error", &stubTranscriber{err: errors.New("asr down")}},
		{"empty transcript", &stubTranscriber{text: "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			p := newPipeline(
				&stubProvider{data: []byte("oggdata"), mimeType: "audio/ogg"},
				&stubSafety{}, &stubProbe{seconds: 12}, tt.tr, store,
			)

			result, err := p.Intake(context.Background(), "m1", KindAudio)

			require.NoError(t, err)
			assert.Equal(t, TranscriptPlaceholder, result.Transcript)
			assert.Len(t, store.saved, 1, "audio is persisted even when transcription fails")
		})
	}
}

func TestIntakeDownloadFailurePropagates(t *testing.T) {
	store := &stubStore{}
	p := newPipeline(
		&stubProvider{downloadErr: errors.New("410 gone"), mimeType: "image/jpeg"},
		&stubSafety{}, &stubProbe{}, &stubTranscriber{}, store,
	)

	_, err := p.Intake(context.Background(), "m1", KindImage)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsafeImage)
	assert.NotErrorIs(t, err, ErrTooLong)
	assert.Empty(t, store.saved)
}
