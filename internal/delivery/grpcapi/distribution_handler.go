package grpcapi

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/distribution"
	distributiondto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/distribution"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/lead"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type DistributionHandler struct {
	distributionUsecase distribution.DistributionUsecase
	leadUsecase         lead.LeadUsecase
}

func NewDistributionHandler(distributionUsecase distribution.DistributionUsecase, leadUsecase lead.LeadUsecase) *DistributionHandler {
	return &DistributionHandler{distributionUsecase: distributionUsecase, leadUsecase: leadUsecase}
}

// Register mounts the distribution and health services on s.
func Register(s *grpc.Server, h *DistributionHandler) *health.Server {
	RegisterDistributionServiceServer(s, h)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(distributionServiceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, healthServer)
	return healthServer
}

func (h *DistributionHandler) GetSnapshot(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	rules, err := h.distributionUsecase.GetSnapshot(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	totals := distribution.Totals(rules)

	items := make([]interface{}, len(rules))
	for i, rule := range rules {
		items[i] = map[string]interface{}{
			"salesPageId":    rule.SalesPageID,
			"googleWeight":   rule.GoogleWeight,
			"otherWeight":    rule.OtherWeight,
			"isActive":       rule.IsActive,
			"priority":       rule.Priority,
			"dailyLimit":     optionalInt(rule.DailyLimit),
			"totalLimit":     optionalInt(rule.TotalLimit),
			"autoDistribute": rule.AutoDistribute,
		}
	}
	return newStruct(map[string]interface{}{
		"rules": items,
		"totals": map[string]interface{}{
			"google":      totals.Google,
			"other":       totals.Other,
			"googleValid": totals.GoogleExact,
			"otherValid":  totals.OtherExact,
		},
	})
}

// PreviewAllocation expects {"channel": "google"|"other", "total": n}.
func (h *DistributionHandler) PreviewAllocation(ctx context.Context, r *structpb.Struct) (*structpb.Struct, error) {
	fields := r.GetFields()

	channel := domain.ChannelOther
	if raw := fields["channel"].GetStringValue(); raw != "" {
		parsed, ok := domain.ParseChannel(raw)
		if !ok {
			return nil, status.Errorf(codes.InvalidArgument, "unknown channel %q", raw)
		}
		channel = parsed
	}
	total := fields["total"].GetNumberValue()
	if total != math.Trunc(total) {
		return nil, status.Error(codes.InvalidArgument, "total must be an integer")
	}
	if total > domain.MaxAllocationTotal {
		return nil, toStatus(fmt.Errorf("%w (got %.0f)", domain.ErrTotalTooLarge, total))
	}
	if total < 1 {
		return nil, toStatus(fmt.Errorf("%w (got %.0f)", domain.ErrNonPositiveTotal, total))
	}

	results, err := h.distributionUsecase.PreviewAllocation(ctx, &distributiondto.PreviewAllocationInput{
		Channel: channel,
		Total:   int(total),
	})
	if err != nil {
		return nil, toStatus(err)
	}

	allocations := make([]interface{}, len(results))
	for i, res := range results {
		allocations[i] = map[string]interface{}{
			"salesPageId": res.ID,
			"weight":      res.Weight,
			"exactShare":  res.ExactShare,
			"floorCount":  res.FloorCount,
			"remainder":   res.Remainder,
			"count":       res.Count,
			"percentage":  res.Percentage,
		}
	}
	return newStruct(map[string]interface{}{
		"channel":     string(channel),
		"total":       int(total),
		"allocations": allocations,
	})
}

func (h *DistributionHandler) ExpireDueLeads(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.leadUsecase.ExpireDue(ctx)
	if err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]interface{}{
		"checked": out.Checked,
		"expired": out.Expired,
	})
}

func newStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidAllocationInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrNoActivePages):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}
