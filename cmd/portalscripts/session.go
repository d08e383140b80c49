package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atlanticdynamic/portalscripts/internal/scripting"
	"github.com/gofrs/uuid/v5"
)

// request is one portal interaction read from the serve input stream.
type request struct {
	ID     string `json:"id,omitempty"`
	Script string `json:"script"`
	Player string `json:"player,omitempty"`
	GM     bool   `json:"gm,omitempty"`
	Map    int    `json:"map,omitempty"`
	Portal string `json:"portal,omitempty"`
}

// result is written back for every request line.
type result struct {
	ID       string   `json:"id"`
	Script   string   `json:"script"`
	Handled  bool     `json:"handled"`
	Messages []string `json:"messages,omitempty"`
	Actions  []string `json:"actions,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// maxLineSize bounds a single request line.
const maxLineSize = 1 << 20

// session serves newline-delimited JSON requests until the input ends or
// ctx is canceled.
type session struct {
	cache  *scripting.Cache
	in     io.Reader
	out    io.Writer
	logger *slog.Logger
}

func (s *session) serve(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	enc := json.NewEncoder(s.out)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		res := s.handle(ctx, line)
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to read requests: %w", err)
	}
	return nil
}

func (s *session) handle(ctx context.Context, line string) result {
	var req request
	if err := json.Unmarshal([]byte(line), &req); err != nil {
		s.logger.Warn("Invalid request", "error", err)
		return result{ID: newID(), Error: "invalid request: " + err.Error()}
	}
	if req.ID == "" {
		req.ID = newID()
	}

	res := runRequest(ctx, s.cache, req)
	s.logger.Debug("Request served", "id", res.ID, "script", res.Script, "handled", res.Handled)
	return res
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Must(uuid.NewV4()).String()
	}
	return id.String()
}
