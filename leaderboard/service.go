package leaderboard

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/parameter"
)

// Remote is the scoring endpoint the service mirrors to
type Remote interface {
	Submit(ctx context.Context, e Entry) error
	Fetch(ctx context.Context) ([]Entry, error)
}

// Service records final scores locally and, when a remote is set, on the server
type Service struct {
	local  *Board
	remote Remote
	log    zerolog.Logger
}

// NewService wires a local board with an optional remote (nil for offline play)
func NewService(local *Board, remote Remote, logger zerolog.Logger) *Service {
	return &Service{
		local:  local,
		remote: remote,
		log:    logger.With().Str("component", "leaderboard").Logger(),
	}
}

// Online reports whether a remote endpoint is configured
func (s *Service) Online() bool {
	return s.remote != nil
}

// Record stores e and returns the ranking to display
// On remote failure the local ranking is returned together with the error
func (s *Service) Record(ctx context.Context, e Entry) ([]Entry, error) {
	s.local.Add(e)
	if s.remote == nil {
		return s.local.Top(parameter.LeaderboardSize), nil
	}

	if err := s.remote.Submit(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("name", e.Name).Int("score", e.Score).Msg("Score submission failed")
		return s.local.Top(parameter.LeaderboardSize), err
	}

	entries, err := s.remote.Fetch(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Score fetch failed")
		return s.local.Top(parameter.LeaderboardSize), err
	}

	s.log.Debug().Int("entries", len(entries)).Msg("Fetched scores")
	if len(entries) > parameter.LeaderboardSize {
		entries = entries[:parameter.LeaderboardSize]
	}
	return entries, nil
}

// Standings returns the current ranking without recording anything
func (s *Service) Standings(ctx context.Context) ([]Entry, error) {
	if s.remote == nil {
		return s.local.Top(parameter.LeaderboardSize), nil
	}
	entries, err := s.remote.Fetch(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("Score fetch failed")
		return s.local.Top(parameter.LeaderboardSize), err
	}
	if len(entries) > parameter.LeaderboardSize {
		entries = entries[:parameter.LeaderboardSize]
	}
	return entries, nil
}
