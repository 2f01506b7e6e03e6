// Package qr reads payment codes scanned from the camera.
package qr

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Stream yields decoded text from camera frames.
type Stream interface {
	io.Closer
	// Next returns the text of the next frame, or ErrNoCode.
	Next(ctx context.Context) (string, error)
}

type Camera interface {
	Open(ctx context.Context) (Stream, error)
}

// Scanner runs one scan session per call. The stream is released exactly
// once whichever way the session ends.
type Scanner struct {
	camera Camera
	parser *Parser
	logger *zap.Logger
}

func NewScanner(camera Camera, parser *Parser, logger *zap.Logger) *Scanner {
	return &Scanner{camera: camera, parser: parser, logger: logger}
}

// Scan reads frames until one holds a valid payload, the stream ends, or
// ctx is done.
func (s *Scanner) Scan(ctx context.Context) (*Payload, error) {
	stream, err := s.camera.Open(ctx)
	if err != nil {
		return nil, err
	}
	release := s.releaser(stream)
	defer release()

	for {
		if ctx.Err() != nil {
			return nil, ErrClosed
		}
		text, err := stream.Next(ctx)
		switch {
		case errors.Is(err, ErrNoCode):
			continue
		case errors.Is(err, io.EOF):
			return nil, ErrInvalidPayload
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, ErrClosed
		case err != nil:
			return nil, err
		}

		payload, err := s.parser.Parse(text)
		if err != nil {
			s.logger.Debug("ignoring unreadable code", zap.String("text", text))
			continue
		}
		return payload, nil
	}
}

func (s *Scanner) releaser(stream Stream) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			if err := stream.Close(); err != nil {
				s.logger.Warn("release camera stream", zap.Error(err))
			}
		})
	}
}

// Frames is a stream over text the browser already decoded.
type Frames struct {
	mu     sync.Mutex
	texts  []string
	closed bool
}

func NewFrames(texts ...string) *Frames {
	return &Frames{texts: texts}
}

func (f *Frames) Next(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.closed || len(f.texts) == 0 {
		return "", io.EOF
	}
	text := f.texts[0]
	f.texts = f.texts[1:]
	if text == "" {
		return "", ErrNoCode
	}
	return text, nil
}

func (f *Frames) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// Open lets a Frames value serve as its own camera.
func (f *Frames) Open(context.Context) (Stream, error) {
	return f, nil
}
