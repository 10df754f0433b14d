package grpcapi

import (
	"context"
	"net"
	"testing"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/distribution"
	distributiondto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/distribution"
	leaddto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/lead"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/lead"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

type fakeDistributionUsecase struct {
	distribution.DistributionUsecase
	rules []*domain.DistributionRule
}

func (f *fakeDistributionUsecase) GetSnapshot(ctx context.Context) ([]*domain.DistributionRule, error) {
	return f.rules, nil
}

func (f *fakeDistributionUsecase) PreviewAllocation(ctx context.Context, input *distributiondto.PreviewAllocationInput) ([]distribution.AllocationResult, error) {
	items := make([]distribution.AllocationItem, 0, len(f.rules))
	for _, r := range distribution.EligibleRules(input.Channel, f.rules, nil) {
		items = append(items, distribution.AllocationItem{ID: r.SalesPageID, Weight: r.Weight(input.Channel)})
	}
	return distribution.Allocate(items, input.Total)
}

type fakeLeadUsecase struct {
	lead.LeadUsecase
}

func (f *fakeLeadUsecase) ExpireDue(ctx context.Context) (*leaddto.SweepOutput, error) {
	return &leaddto.SweepOutput{Checked: 3, Expired: 2}, nil
}

func newTestConn(t *testing.T, rules []*domain.DistributionRule) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	Register(s, NewDistributionHandler(&fakeDistributionUsecase{rules: rules}, &fakeLeadUsecase{}))
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func testRules() []*domain.DistributionRule {
	limit := 50
	return []*domain.DistributionRule{
		{SalesPageID: "sales1", GoogleWeight: 60, OtherWeight: 50, IsActive: true, Priority: 2, DailyLimit: &limit},
		{SalesPageID: "sales2", GoogleWeight: 40, OtherWeight: 50, IsActive: true, Priority: 1},
	}
}

func TestGetSnapshot(t *testing.T) {
	client := NewDistributionServiceClient(newTestConn(t, testRules()))

	out, err := client.GetSnapshot(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	rules := out.GetFields()["rules"].GetListValue().GetValues()
	require.Len(t, rules, 2)
	first := rules[0].GetStructValue().GetFields()
	require.Equal(t, "sales1", first["salesPageId"].GetStringValue())
	require.Equal(t, 50.0, first["dailyLimit"].GetNumberValue())
	_, isNull := rules[1].GetStructValue().GetFields()["dailyLimit"].GetKind().(*structpb.Value_NullValue)
	require.True(t, isNull)

	totals := out.GetFields()["totals"].GetStructValue().GetFields()
	require.True(t, totals["googleValid"].GetBoolValue())
	require.Equal(t, 100.0, totals["other"].GetNumberValue())
}

func TestPreviewAllocation(t *testing.T) {
	client := NewDistributionServiceClient(newTestConn(t, testRules()))

	req, err := structpb.NewStruct(map[string]interface{}{"channel": "google", "total": 5})
	require.NoError(t, err)
	out, err := client.PreviewAllocation(context.Background(), req)
	require.NoError(t, err)

	allocations := out.GetFields()["allocations"].GetListValue().GetValues()
	require.Len(t, allocations, 2)
	require.Equal(t, 3.0, allocations[0].GetStructValue().GetFields()["count"].GetNumberValue())
	require.Equal(t, 2.0, allocations[1].GetStructValue().GetFields()["count"].GetNumberValue())
}

func TestPreviewAllocation_Errors(t *testing.T) {
	client := NewDistributionServiceClient(newTestConn(t, testRules()))

	tests := []struct {
		name string
		req  map[string]interface{}
	}{
		{"zero total", map[string]interface{}{"total": 0}},
		{"fractional total", map[string]interface{}{"total": 1.5}},
		{"unknown channel", map[string]interface{}{"channel": "tv", "total": 10}},
		{"total above bound", map[string]interface{}{"total": float64(domain.MaxAllocationTotal) + 1}},
		{"huge total", map[string]interface{}{"total": 1e20}},
		{"huge negative total", map[string]interface{}{"total": -1e20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := structpb.NewStruct(tt.req)
			require.NoError(t, err)
			_, err = client.PreviewAllocation(context.Background(), req)
			require.Equal(t, codes.InvalidArgument, status.Code(err))
		})
	}
}

func TestPreviewAllocation_NoPages(t *testing.T) {
	client := NewDistributionServiceClient(newTestConn(t, nil))

	req, err := structpb.NewStruct(map[string]interface{}{"total": 10})
	require.NoError(t, err)
	_, err = client.PreviewAllocation(context.Background(), req)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestExpireDueLeads(t *testing.T) {
	client := NewDistributionServiceClient(newTestConn(t, nil))

	out, err := client.ExpireDueLeads(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	require.Equal(t, 2.0, out.GetFields()["expired"].GetNumberValue())
	require.Equal(t, 3.0, out.GetFields()["checked"].GetNumberValue())
}

func TestHealth(t *testing.T) {
	conn := newTestConn(t, nil)
	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: distributionServiceName})
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestToStatus(t *testing.T) {
	require.Equal(t, codes.FailedPrecondition, status.Code(toStatus(domain.ErrNoActivePages)))
	require.Equal(t, codes.InvalidArgument, status.Code(toStatus(domain.ErrZeroTotalWeight)))
	require.Equal(t, codes.Internal, status.Code(toStatus(domain.ErrRuleNotFound)))
}
