package arena

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/KirkDiggler/codearena/internal/challenges"
	"github.com/KirkDiggler/codearena/internal/common/clock"
	"github.com/KirkDiggler/codearena/internal/common/uuid"
	"github.com/KirkDiggler/codearena/internal/metrics"
	"github.com/KirkDiggler/codearena/internal/models"
	"github.com/KirkDiggler/codearena/internal/regions"
	roomRepo "github.com/KirkDiggler/codearena/internal/repositories/room"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	statsService "github.com/KirkDiggler/codearena/internal/services/stats"
)

type service struct {
	roomRepo     roomRepo.Repository
	snapshotRepo snapshotRepo.Repository
	stats        statsService.Service
	clock        clock.Clock
	uuid         uuid.UUID
	logger       *zap.Logger
}

// NewService creates a new arena service
func NewService(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}
	if cfg.SnapshotRepo == nil {
		return nil, ErrNilSnapshotRepo
	}
	if cfg.StatsService == nil {
		return nil, ErrNilStatsService
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}
	gen := cfg.UUID
	if gen == nil {
		gen = &uuid.DefaultUUID{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		roomRepo:     cfg.RoomRepo,
		snapshotRepo: cfg.SnapshotRepo,
		stats:        cfg.StatsService,
		clock:        clk,
		uuid:         gen,
		logger:       logger,
	}, nil
}

// CreateRoom creates a room with its creator as the first participant
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.Creator.ID == "" {
		return nil, ErrInvalidInput
	}

	now := s.clock.Now()
	room := &models.Room{
		ID:        s.uuid.NewUUID(),
		Name:      input.Name,
		CreatorID: input.Creator.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.roomRepo.SaveRoom(ctx, &roomRepo.SaveRoomInput{Room: room}); err != nil {
		return nil, err
	}

	if err := s.roomRepo.AddParticipant(ctx, &roomRepo.AddParticipantInput{
		RoomID:      room.ID,
		Participant: input.Creator,
	}); err != nil {
		return nil, err
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.ID),
		zap.String("creator_id", input.Creator.ID))

	return &CreateRoomOutput{Room: room}, nil
}

func (s *service) getRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func present(participants []models.Participant, id string) bool {
	for _, p := range participants {
		if p.ID == id {
			return true
		}
	}
	return false
}

// JoinRoom adds a participant to a room that has not started. Participants
// already on the roster may rejoin a locked room.
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.RoomID == "" || input.Participant.ID == "" {
		return nil, ErrInvalidInput
	}

	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	participants, err := s.roomRepo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	if !present(participants, input.Participant.ID) {
		if room.Locked {
			return nil, ErrRoomLocked
		}
		if err := s.roomRepo.AddParticipant(ctx, &roomRepo.AddParticipantInput{
			RoomID:      input.RoomID,
			Participant: input.Participant,
		}); err != nil {
			return nil, err
		}
		participants = append(participants, input.Participant)
	}

	return &JoinRoomOutput{
		Room:         room,
		IsOwner:      room.IsOwner(input.Participant.ID),
		Participants: participants,
	}, nil
}

// LeaveRoom removes a participant and releases their region so the next
// newcomer can claim it
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	if input == nil || input.RoomID == "" || input.ParticipantID == "" {
		return nil, ErrInvalidInput
	}

	if err := s.roomRepo.RemoveParticipant(ctx, &roomRepo.RemoveParticipantInput{
		RoomID:        input.RoomID,
		ParticipantID: input.ParticipantID,
	}); err != nil {
		return nil, err
	}

	out, err := s.roomRepo.UpdateRegions(ctx, &roomRepo.UpdateRegionsInput{
		RoomID: input.RoomID,
		Update: func(regs []models.Region) bool {
			return regions.ReleaseRegions(regs, input.ParticipantID)
		},
	})
	if err != nil {
		return nil, err
	}

	return &LeaveRoomOutput{ReleasedRegion: out.Changed}, nil
}

// SelectChallenge starts a challenge. The region set starts fresh, the buffer
// is reset to the starter code and the room stops accepting newcomers.
func (s *service) SelectChallenge(ctx context.Context, input *SelectChallengeInput) (*SelectChallengeOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	challenge, err := challenges.Get(input.ChallengeID)
	if err != nil {
		return nil, err
	}

	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsOwner(input.ParticipantID) {
		return nil, ErrNotOwner
	}

	now := s.clock.Now()
	room.Challenge = challenge.ID
	room.Locked = true
	room.CorrectStreak = 0
	room.TimerStartedAt = now
	room.UpdatedAt = now
	if room.StartedAt.IsZero() {
		room.StartedAt = now
	}

	fresh := regions.FromDefs(challenge.Regions)
	if err := s.roomRepo.SaveRegions(ctx, &roomRepo.SaveRegionsInput{
		RoomID:  room.ID,
		Regions: fresh,
	}); err != nil {
		return nil, err
	}

	err = s.snapshotRepo.SaveSnapshot(ctx, &snapshotRepo.SaveSnapshotInput{
		Snapshot: &models.Snapshot{
			RoomID:    room.ID,
			Text:      challenge.StarterCode,
			UpdatedBy: input.ParticipantID,
			UpdatedAt: now,
		},
	})
	if err != nil && !errors.Is(err, snapshotRepo.ErrSavedLocally) {
		return nil, err
	}

	if err := s.roomRepo.SaveRoom(ctx, &roomRepo.SaveRoomInput{Room: room}); err != nil {
		return nil, err
	}

	participants, err := s.roomRepo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{RoomID: room.ID})
	if err != nil {
		return nil, err
	}
	if _, err := s.stats.UpdateRoomStats(ctx, &statsService.UpdateRoomStatsInput{
		RoomID:       room.ID,
		RoomName:     room.Name,
		Challenge:    challenge.ID,
		Participants: participants,
	}); err != nil {
		s.logger.Warn("Failed to update room stats", zap.String("room_id", room.ID), zap.Error(err))
	}

	s.logger.Info("Challenge selected",
		zap.String("room_id", room.ID),
		zap.String("challenge", string(challenge.ID)))

	return &SelectChallengeOutput{
		Room:      room,
		Challenge: challenge,
		Regions:   fresh,
	}, nil
}

// ClaimRegion gives a participant the next free region for the current team
// size. A participant who already holds one gets it back.
func (s *service) ClaimRegion(ctx context.Context, input *ClaimRegionInput) (*ClaimRegionOutput, error) {
	if input == nil || input.RoomID == "" || input.Participant.ID == "" {
		return nil, ErrInvalidInput
	}

	participants, err := s.roomRepo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}
	if !present(participants, input.Participant.ID) {
		return nil, ErrNotInRoom
	}

	var regionID string
	var assigned bool
	out, err := s.roomRepo.UpdateRegions(ctx, &roomRepo.UpdateRegionsInput{
		RoomID: input.RoomID,
		Update: func(regs []models.Region) bool {
			regionID, assigned = regions.AssignNextRegion(regs, input.Participant, len(participants))
			return assigned
		},
	})
	if err != nil {
		return nil, err
	}

	if assigned {
		s.logger.Info("Region assigned",
			zap.String("room_id", input.RoomID),
			zap.String("participant_id", input.Participant.ID),
			zap.String("region_id", regionID))
	}

	return &ClaimRegionOutput{
		RegionID: regionID,
		Assigned: assigned,
		Regions:  out.Regions,
	}, nil
}

// GetRegions returns the room's region assignments
func (s *service) GetRegions(ctx context.Context, input *GetRegionsInput) (*GetRegionsOutput, error) {
	if input == nil || input.RoomID == "" {
		return nil, ErrInvalidInput
	}

	regs, err := s.roomRepo.GetRegions(ctx, &roomRepo.GetRegionsInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	return &GetRegionsOutput{Regions: regs}, nil
}

// RecordContribution raises the participant's contribution flag and feeds
// the user and room aggregates
func (s *service) RecordContribution(ctx context.Context, input *RecordContributionInput) (*RecordContributionOutput, error) {
	if input == nil || input.RoomID == "" || input.Participant.ID == "" {
		return nil, ErrInvalidInput
	}

	flags := &roomRepo.SetContributionInput{
		RoomID:        input.RoomID,
		ParticipantID: input.Participant.ID,
	}
	roomDelta := &statsService.UpdateRoomStatsInput{RoomID: input.RoomID}

	var recorded *statsService.RecordOutput
	var err error
	switch input.Kind {
	case ContributionEdit:
		count := max(input.Count, 1)
		flags.Edited = true
		roomDelta.Edits = count
		recorded, err = s.stats.RecordEdits(ctx, &statsService.RecordEditsInput{
			UserID:   input.Participant.ID,
			UserName: input.Participant.Name,
			Count:    count,
		})
	case ContributionChat:
		flags.Chatted = true
		roomDelta.Messages = 1
		recorded, err = s.stats.RecordChat(ctx, &statsService.RecordChatInput{
			UserID:   input.Participant.ID,
			UserName: input.Participant.Name,
		})
	default:
		return nil, ErrUnknownKind
	}
	if err != nil {
		// Scores may undercount; the contribution flag still matters
		s.logger.Warn("Failed to record contribution stats",
			zap.String("participant_id", input.Participant.ID),
			zap.Error(err))
	}

	if err := s.roomRepo.SetContribution(ctx, flags); err != nil {
		return nil, err
	}

	if _, err := s.stats.UpdateRoomStats(ctx, roomDelta); err != nil {
		s.logger.Warn("Failed to update room stats", zap.String("room_id", input.RoomID), zap.Error(err))
	}

	out := &RecordContributionOutput{}
	if recorded != nil {
		out.Stats = recorded.Stats
	}
	return out, nil
}

// RecordActiveTime adds active minutes to the participant and the room. It
// does not make the participant eligible to submit.
func (s *service) RecordActiveTime(ctx context.Context, input *RecordActiveTimeInput) (*RecordActiveTimeOutput, error) {
	if input == nil || input.RoomID == "" || input.Participant.ID == "" || input.Minutes <= 0 {
		return nil, ErrInvalidInput
	}

	out := &RecordActiveTimeOutput{}
	recorded, err := s.stats.RecordActiveTime(ctx, &statsService.RecordActiveTimeInput{
		UserID:   input.Participant.ID,
		UserName: input.Participant.Name,
		Minutes:  input.Minutes,
	})
	if err != nil {
		s.logger.Warn("Failed to record active time",
			zap.String("participant_id", input.Participant.ID),
			zap.Error(err))
	} else if recorded != nil {
		out.Stats = recorded.Stats
	}

	if _, err := s.stats.UpdateRoomStats(ctx, &statsService.UpdateRoomStatsInput{
		RoomID:        input.RoomID,
		ActiveMinutes: input.Minutes,
	}); err != nil {
		s.logger.Warn("Failed to update room stats", zap.String("room_id", input.RoomID), zap.Error(err))
	}

	return out, nil
}

// SubmitSolution grades the buffer. Only a participant who has edited or
// chatted may submit; every participant present is scored.
func (s *service) SubmitSolution(ctx context.Context, input *SubmitSolutionInput) (*SubmitSolutionOutput, error) {
	if input == nil || input.RoomID == "" || input.ParticipantID == "" {
		return nil, ErrInvalidInput
	}

	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if room.Challenge == "" {
		return nil, ErrNoChallenge
	}

	challenge, err := challenges.Get(room.Challenge)
	if err != nil {
		return nil, err
	}

	contributions, err := s.roomRepo.GetContributions(ctx, &roomRepo.GetContributionsInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}
	contribution, ok := contributions[input.ParticipantID]
	if !ok || !contribution.Contributed() {
		return nil, ErrNotContributed
	}

	participants, err := s.roomRepo.GetParticipants(ctx, &roomRepo.GetParticipantsInput{RoomID: input.RoomID})
	if err != nil {
		return nil, err
	}

	correct := challenges.Grade(challenge, input.Code)
	metrics.ObserveSubmission(correct)

	xp := 0
	if correct {
		room.CorrectStreak++
		xp = challenge.XPReward
	} else {
		room.CorrectStreak = 0
	}
	room.UpdatedAt = s.clock.Now()
	if err := s.roomRepo.SaveRoom(ctx, &roomRepo.SaveRoomInput{Room: room}); err != nil {
		return nil, fmt.Errorf("failed to save room streak: %w", err)
	}

	output := &SubmitSolutionOutput{
		Correct:   correct,
		XPAwarded: xp,
		Streak:    room.CorrectStreak,
	}
	for _, p := range participants {
		_, err := s.stats.RecordAnswer(ctx, &statsService.RecordAnswerInput{
			UserID:        p.ID,
			UserName:      p.Name,
			IsCorrect:     correct,
			CurrentStreak: room.CorrectStreak,
			XP:            xp,
		})
		if err != nil {
			s.logger.Warn("Failed to record answer",
				zap.String("participant_id", p.ID),
				zap.Error(err))
			continue
		}
		output.Scored = append(output.Scored, p.ID)
	}

	if _, err := s.stats.UpdateRoomStats(ctx, &statsService.UpdateRoomStatsInput{
		RoomID:       room.ID,
		RoomName:     room.Name,
		Participants: participants,
	}); err != nil {
		s.logger.Warn("Failed to update room stats", zap.String("room_id", room.ID), zap.Error(err))
	}

	s.logger.Info("Solution submitted",
		zap.String("room_id", room.ID),
		zap.String("participant_id", input.ParticipantID),
		zap.Bool("correct", correct))

	return output, nil
}
