package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	distributionRequest "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/dto/distribution/request"
	distributionResponse "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/dto/distribution/response"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/export"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/distribution"
	distributiondto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/distribution"
	"github.com/gin-gonic/gin"
)

const (
	defaultAllocationTotal = 100
	xlsxContentType        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type DistributionHandlerConfig struct {
	BucketCookie string
	BucketTTL    time.Duration
	FallbackPath string
}

type DistributionHandler struct {
	uc  distribution.DistributionUsecase
	log *logger.Logger
	cfg DistributionHandlerConfig
}

func NewDistributionHandler(uc distribution.DistributionUsecase, log *logger.Logger, cfg DistributionHandlerConfig) *DistributionHandler {
	if cfg.BucketCookie == "" {
		cfg.BucketCookie = "td_bucket"
	}
	if cfg.FallbackPath == "" {
		cfg.FallbackPath = "/"
	}
	return &DistributionHandler{uc: uc, log: log.With("handler", "DistributionHandler"), cfg: cfg}
}

// RouteVisitor sends the visitor to a sales page. Repeat visitors keep their
// page through the bucket cookie. ?format=json returns the decision instead
// of redirecting.
func (h *DistributionHandler) RouteVisitor(c *gin.Context) {
	query := c.Request.URL.Query()
	asJSON := query.Get("format") == "json"
	channel := ClassifyChannel(query, c.Request.Referer())

	bucket, _ := c.Cookie(h.cfg.BucketCookie)
	decision, err := h.uc.RouteVisitor(c.Request.Context(), &distributiondto.RouteVisitorInput{
		Bucket:      bucket,
		Channel:     channel,
		Referrer:    c.Request.Referer(),
		UTMSource:   query.Get("utm_source"),
		UTMMedium:   query.Get("utm_medium"),
		UTMCampaign: query.Get("utm_campaign"),
		GCLID:       query.Get("gclid"),
		UserAgent:   c.Request.UserAgent(),
		IPAddress:   c.ClientIP(),
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNoActivePages) {
			h.log.Error("failed to route visitor", "error", err)
		}
		if asJSON {
			status, code := classifyError(err)
			if status == http.StatusInternalServerError {
				status, code = http.StatusServiceUnavailable, "no_active_pages"
			}
			RespondError(c, status, code, err)
			return
		}
		c.Redirect(http.StatusFound, h.cfg.FallbackPath)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.BucketCookie, decision.Bucket.String(), int(h.cfg.BucketTTL.Seconds()), "/", "", false, true)

	target := salesPageURL(decision.PageID, query)
	if asJSON {
		c.JSON(http.StatusOK, distributionResponse.RouteResponse{
			SalesPageID: decision.PageID,
			RedirectURL: target,
			Bucket:      decision.Bucket.String(),
			Sticky:      decision.Sticky,
			Channel:     string(channel),
		})
		return
	}
	c.Redirect(http.StatusFound, target)
}

// salesPageURL keeps the campaign parameters for the landing page.
func salesPageURL(pageID string, query url.Values) string {
	forward := url.Values{}
	for key, values := range query {
		if key == "format" || key == "channel" {
			continue
		}
		forward[key] = values
	}
	target := "/" + url.PathEscape(pageID)
	if encoded := forward.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

func (h *DistributionHandler) GetPublicRules(c *gin.Context) {
	rules, err := h.uc.GetSnapshot(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	public := make([]distributionResponse.PublicRule, 0, len(rules))
	for _, rule := range rules {
		if !rule.IsActive {
			continue
		}
		public = append(public, distributionResponse.PublicRule{
			SalesPageID:  rule.SalesPageID,
			GoogleWeight: rule.GoogleWeight,
			OtherWeight:  rule.OtherWeight,
			Priority:     rule.Priority,
		})
	}
	c.JSON(http.StatusOK, distributionResponse.PublicRulesResponse{Success: true, Rules: public})
}

func (h *DistributionHandler) ListRules(c *gin.Context) {
	rules, err := h.uc.GetSnapshot(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondRules(c, rules)
}

func (h *DistributionHandler) SaveRules(c *gin.Context) {
	var req distributionRequest.SaveRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	updates := make([]*domain.RuleUpdate, len(req.Rules))
	for i := range req.Rules {
		updates[i] = req.Rules[i].ToDomain()
	}
	rules, err := h.uc.SaveRules(c.Request.Context(), updates)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondRules(c, rules)
}

func (h *DistributionHandler) UpdateRule(c *gin.Context) {
	var req distributionRequest.RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	rule, created, err := h.uc.UpdateRule(c.Request.Context(), req.ToDomain())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, distributionResponse.RuleUpdatedResponse{Success: true, Created: created, Rule: toRuleResponse(rule)})
}

func (h *DistributionHandler) GetRule(c *gin.Context) {
	rule, err := h.uc.GetRule(c.Request.Context(), c.Param("salesPageId"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRuleResponse(rule))
}

func (h *DistributionHandler) ResetRules(c *gin.Context) {
	rules, err := h.uc.ResetRules(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.respondRules(c, rules)
}

func (h *DistributionHandler) respondRules(c *gin.Context, rules []*domain.DistributionRule) {
	c.JSON(http.StatusOK, distributionResponse.RulesResponse{
		Success: true,
		Rules:   toRuleResponses(rules),
		Totals:  toTotalsResponse(distribution.Totals(rules)),
	})
}

func (h *DistributionHandler) GetStats(c *gin.Context) {
	stats, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pages := make([]distributionResponse.PageStatsResponse, len(stats.Pages))
	for i, p := range stats.Pages {
		pages[i] = distributionResponse.PageStatsResponse{
			SalesPageID:  p.SalesPageID,
			GoogleWeight: p.GoogleWeight,
			OtherWeight:  p.OtherWeight,
			IsActive:     p.IsActive,
			DailyLimit:   p.DailyLimit,
			TotalLimit:   p.TotalLimit,
			TodayVisits:  p.TodayVisits,
			TotalVisits:  p.TotalVisits,
			LimitReached: p.LimitReached,
		}
	}
	c.JSON(http.StatusOK, distributionResponse.StatsResponse{
		Success: true,
		Pages:   pages,
		Totals: toTotalsResponse(domain.RuleTotals{
			Google:      stats.GoogleTotal,
			Other:       stats.OtherTotal,
			GoogleExact: stats.GoogleExact,
			OtherExact:  stats.OtherExact,
		}),
	})
}

func (h *DistributionHandler) GetAllocation(c *gin.Context) {
	input, err := allocationInput(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_allocation_input", err)
		return
	}
	results, err := h.uc.PreviewAllocation(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, distributionResponse.AllocationResponse{
		Success:     true,
		Channel:     string(input.Channel),
		Total:       input.Total,
		Allocations: toAllocationEntries(results),
	})
}

func (h *DistributionHandler) ExportAllocation(c *gin.Context) {
	input, err := allocationInput(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_allocation_input", err)
		return
	}
	results, err := h.uc.PreviewAllocation(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	report := &export.AllocationReport{
		Channel:     string(input.Channel),
		Total:       input.Total,
		GeneratedAt: time.Now().UTC(),
		Rows:        make([]export.AllocationRow, len(results)),
	}
	for i, r := range results {
		report.Rows[i] = export.AllocationRow{
			SalesPageID: r.ID,
			Weight:      r.Weight,
			ExactShare:  r.ExactShare,
			FloorCount:  r.FloorCount,
			Remainder:   r.Remainder,
			Count:       r.Count,
			Percentage:  r.Percentage,
		}
	}

	var buf bytes.Buffer
	if err := export.WriteAllocationExcel(&buf, report); err != nil {
		RespondDomainError(c, err)
		return
	}
	filename := fmt.Sprintf("allocation-%s-%d.xlsx", input.Channel, input.Total)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func allocationInput(c *gin.Context) (*distributiondto.PreviewAllocationInput, error) {
	channel := domain.ChannelOther
	if raw := c.Query("channel"); raw != "" {
		parsed, ok := domain.ParseChannel(raw)
		if !ok {
			return nil, fmt.Errorf("unknown channel %q", raw)
		}
		channel = parsed
	}
	total := defaultAllocationTotal
	if raw := c.Query("total"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("total must be an integer: %w", err)
		}
		total = n
	}
	return &distributiondto.PreviewAllocationInput{Channel: channel, Total: total}, nil
}
