package media

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/salonewatch/bot-go/storage"
)

// Kind is the media class being taken in.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindAudio Kind = "audio"
)

// Rejection sentinels. These are the fail-closed outcomes: the binary
// is discarded and nothing is persisted.
var (
	ErrUnsafeImage = errors.New("media: image failed safety check")
	ErrTooLong     = errors.New("media: clip exceeds duration limit")
)

// TranscriptPlaceholder stands in when the transcription service is
// unavailable; issue creation never blocks on it.
const TranscriptPlaceholder = "[voice note - transcription unavailable]"

// unsafeLabel is the one classifier label treated as a hard rejection.
const unsafeLabel = "nudity"

type downloader interface {
	ResolveMedia(ctx context.Context, mediaID string) (url, mimeType string, err error)
	DownloadMedia(ctx context.Context, url string) ([]byte, error)
}

type safetyChecker interface {
	Classify(ctx context.Context, data []byte, mimeType string) (string, error)
}

type durationProber interface {
	Duration(ctx context.Context, data []byte, mimeType string) (float64, error)
}

type transcriber interface {
	Transcribe(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Result is a completed intake: where the binary landed and, for audio,
// what it said.
type Result struct {
	Path       string
	Transcript string
}

// Pipeline downloads an attachment, applies the safety and duration
// checks, persists the binary, and transcribes audio.
type Pipeline struct {
	Provider    downloader
	Safety      safetyChecker
	Probe       durationProber
	Transcriber transcriber
	Store       storage.Store
	MaxSeconds  int
}

// Intake runs the full pipeline for one media reference. Check
// failures degrade fail-open; only a detected violation (unsafe label,
// over-duration) rejects.
func (p *Pipeline) Intake(ctx context.Context, mediaID string, kind Kind) (Result, error) {
	url, mimeType, err := p.Provider.ResolveMedia(ctx, mediaID)
	if err != nil {
		return Result{}, fmt.Errorf("intake %s: %w", mediaID, err)
	}
	data, err := p.Provider.DownloadMedia(ctx, url)
	if err != nil {
		return Result{}, fmt.Errorf("intake %s: %w", mediaID, err)
	}

	if kind == KindImage {
		label, err := p.Safety.Classify(ctx, data, mimeType)
		if err != nil {
			log.Printf("media: safety check unavailable for %s, proceeding: %v", mediaID, err)
		} else if strings.EqualFold(strings.TrimSpace(label), unsafeLabel) {
			return Result{}, ErrUnsafeImage
		}
	}

	if kind == KindVideo || kind == KindAudio {
		seconds, err := p.Probe.Duration(ctx, data, mimeType)
		if err != nil {
			log.Printf("media: duration probe unavailable for %s, proceeding: %v", mediaID, err)
		} else if seconds > float64(p.MaxSeconds) {
			return Result{}, ErrTooLong
		}
	}

	path, err := p.Store.Save(ctx, string(kind), data, mimeType)
	if err != nil {
		return Result{}, fmt.Errorf("intake %s: %w", mediaID, err)
	}

	result := Result{Path: path}
	if kind == KindAudio {
		text, err := p.Transcriber.Transcribe(ctx, data, mimeType)
		if err != nil || strings.TrimSpace(text) == "" {
			if err != nil {
				log.Printf("media: transcription failed for %s, using placeholder: %v", mediaID, err)
			}
			result.Transcript = TranscriptPlaceholder
		} else {
			result.Transcript = strings.TrimSpace(text)
		}
	}
	return result, nil
}
