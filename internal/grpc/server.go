package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Billy-Davies-2/ff-draft-assistant/internal/draft"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/logger"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/models"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/pubsub"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/rankings"
	"github.com/Billy-Davies-2/ff-draft-assistant/internal/store"
)

// RankingsService is the part of the ranking provider exposed over gRPC.
type RankingsService interface {
	PlayerRankings(ctx context.Context) rankings.Result
	ClearCache()
}

// Server implements DraftServiceServer on top of the draft store.
type Server struct {
	store    *store.Store
	rankings RankingsService
	bus      pubsub.Bus
}

// NewServer creates a new gRPC server
func NewServer(s *store.Store, r RankingsService, bus pubsub.Bus) *Server {
	return &Server{store: s, rankings: r, bus: bus}
}

// Register adds the draft service to gs.
func (s *Server) Register(gs *grpc.Server) {
	gs.RegisterService(&ServiceDesc, s)
}

// GetState returns {"version": n, "state": {...}}.
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	logger.Debug("gRPC: Getting draft state")
	state, version := s.store.Snapshot()
	return stateStruct(state, version)
}

// Dispatch applies an action envelope {"type": ..., "payload": ...}.
func (s *Server) Dispatch(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	data, err := json.Marshal(in.AsMap())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	action, err := draft.Decode(data)
	if err != nil {
		return nil, statusError(err)
	}

	logger.Info("gRPC: Dispatching action", "type", action.Type())
	state, version, err := s.store.Dispatch(ctx, action)
	if err != nil {
		logger.Warn("gRPC: Action rejected", "type", action.Type(), "error", err)
		return nil, statusError(err)
	}
	return stateStruct(state, version)
}

// DraftNext drafts {"playerId": ..., "price"?: n} to the team on the clock.
func (s *Server) DraftNext(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	playerID := in.GetFields()["playerId"].GetStringValue()
	if playerID == "" {
		return nil, status.Error(codes.InvalidArgument, "playerId is required")
	}

	var price *int
	if v, ok := in.GetFields()["price"]; ok {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, status.Error(codes.InvalidArgument, "price must be a number")
		}
		p := int(n.NumberValue)
		price = &p
	}

	state, version, err := s.store.DraftNext(ctx, playerID, price)
	if err != nil {
		logger.Warn("gRPC: Failed to draft player", "error", err, "playerId", playerID)
		return nil, statusError(err)
	}
	return stateStruct(state, version)
}

// GetRankings returns the current ranking board, live or fallback.
func (s *Server) GetRankings(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	res := s.rankings.PlayerRankings(ctx)
	out, err := toStruct(res)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	if res.Err != nil {
		out.Fields["error"] = structpb.NewStringValue(res.Err.Error())
	}
	return out, nil
}

func (s *Server) ClearCache(ctx context.Context, _ *emptypb.Empty) (*emptypb.Empty, error) {
	logger.Info("gRPC: Clearing rankings cache")
	s.rankings.ClearCache()
	return &emptypb.Empty{}, nil
}

// StreamEvents streams events to clients
func (s *Server) StreamEvents(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	logger.Debug("gRPC: New client connected to event stream")
	eventChan := s.bus.Subscribe()
	defer s.bus.Unsubscribe(eventChan)

	for {
		select {
		case event, ok := <-eventChan:
			if !ok {
				return nil
			}
			msg, err := toStruct(event)
			if err != nil {
				logger.Error("gRPC: Failed to encode event", "error", err, "type", event.Type)
				continue
			}
			if err := stream.Send(msg); err != nil {
				logger.Error("gRPC: Failed to send event to stream", "error", err)
				return err
			}
		case <-stream.Context().Done():
			logger.Debug("gRPC: Client disconnected from event stream")
			return nil
		}
	}
}

func statusError(err error) error {
	switch {
	case errors.Is(err, draft.ErrPlayerNotFound), errors.Is(err, draft.ErrTeamNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, draft.ErrPlayerAlreadyDrafted),
		errors.Is(err, draft.ErrNothingToUndo),
		errors.Is(err, store.ErrNoTeamOnClock):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, draft.ErrUnknownAction), errors.Is(err, draft.ErrInvalidPayload):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func stateStruct(state models.DraftState, version uint64) (*structpb.Struct, error) {
	out, err := toStruct(struct {
		Version uint64            `json:"version"`
		State   models.DraftState `json:"state"`
	}{version, state})
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}

// toStruct converts v through its JSON form, so Struct field names match
// the HTTP API.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("convert to struct: %w", err)
	}
	return out, nil
}
