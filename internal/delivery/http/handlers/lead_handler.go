package handlers

import (
	"errors"
	"net/http"
	"strconv"

	leadRequest "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/dto/lead/request"
	leadResponse "github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/dto/lead/response"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/logger"
	leaddto "github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/dto/lead"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/usecase/lead"
	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	uc  lead.LeadUsecase
	log *logger.Logger
}

func NewLeadHandler(uc lead.LeadUsecase, log *logger.Logger) *LeadHandler {
	return &LeadHandler{uc: uc, log: log.With("handler", "LeadHandler")}
}

func leadFields(c *gin.Context, req *leadRequest.SaveLeadRequest) leaddto.LeadFields {
	return leaddto.LeadFields{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		SalesPageID: req.SalesPageID,
		Source:      req.Source,
		Country:     req.Country,
		City:        req.City,
		Notes:       req.Notes,
		IPAddress:   c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	}
}

// SaveLead is the public popup capture. A repeated submission answers with
// the lead already on file.
func (h *LeadHandler) SaveLead(c *gin.Context) {
	var req leadRequest.SaveLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	fields := leadFields(c, &req)
	saved, err := h.uc.CaptureLead(c.Request.Context(), &fields)
	h.respondSaved(c, saved, err)
}

func (h *LeadHandler) AddManualLead(c *gin.Context) {
	var req leadRequest.ManualLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	operator, _ := middleware.OperatorFrom(c)
	saved, err := h.uc.AddManualLead(c.Request.Context(), &leaddto.ManualLeadInput{
		LeadFields: leadFields(c, &req.SaveLeadRequest),
		AddTimer:   req.AddTimer,
	}, operator)
	h.respondSaved(c, saved, err)
}

func (h *LeadHandler) respondSaved(c *gin.Context, saved *domain.PhoneLead, err error) {
	switch {
	case errors.Is(err, domain.ErrDuplicateLead) && saved != nil:
		c.JSON(http.StatusOK, leadResponse.SaveLeadResponse{Success: true, Duplicate: true, Lead: toLeadResponse(saved)})
	case err != nil:
		RespondDomainError(c, err)
	default:
		c.JSON(http.StatusCreated, leadResponse.SaveLeadResponse{Success: true, Lead: toLeadResponse(saved)})
	}
}

func (h *LeadHandler) CheckExpired(c *gin.Context) {
	out, err := h.uc.ExpireDue(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, leadResponse.SweepResponse{Success: true, Checked: out.Checked, Expired: out.Expired})
}

func (h *LeadHandler) ListLeads(c *gin.Context) {
	input := &leaddto.GetLeadsInput{
		SalesPageID:     c.Query("salesPageId"),
		OnlyExpired:     queryBool(c, "onlyExpired"),
		OnlyTransferred: queryBool(c, "onlyTransferred"),
		Archived:        queryBool(c, "archived"),
		Page:            queryInt(c, "page"),
		Limit:           queryInt(c, "limit"),
	}
	if raw, ok := c.GetQuery("contacted"); ok {
		contacted, err := strconv.ParseBool(raw)
		if err != nil {
			respondBadRequest(c, errors.New("contacted must be a boolean"))
			return
		}
		input.Contacted = &contacted
	}

	out, err := h.uc.GetLeads(c.Request.Context(), input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	leads := make([]leadResponse.LeadResponse, len(out.Leads))
	for i, l := range out.Leads {
		leads[i] = toLeadResponse(l)
	}
	c.JSON(http.StatusOK, leadResponse.LeadsResponse{
		Success: true,
		Leads:   leads,
		Pagination: leadResponse.Pagination{
			CurrentPage:  out.Pagination.CurrentPage,
			TotalPages:   out.Pagination.TotalPages,
			TotalItems:   out.Pagination.TotalItems,
			ItemsPerPage: out.Pagination.ItemsPerPage,
		},
	})
}

func (h *LeadHandler) GetLead(c *gin.Context) {
	found, err := h.uc.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, leadResponse.LeadDetailResponse{Success: true, Lead: toLeadResponse(found)})
}

func (h *LeadHandler) UpdateLead(c *gin.Context) {
	var req leadRequest.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if req.IsContacted == nil && req.IsArchived == nil {
		respondBadRequest(c, errors.New("nothing to update"))
		return
	}
	if req.IsContacted != nil && !*req.IsContacted {
		respondBadRequest(c, errors.New("contacted state cannot be cleared"))
		return
	}

	id := c.Param("id")
	var (
		updated *domain.PhoneLead
		err     error
	)
	if req.IsContacted != nil {
		if updated, err = h.uc.MarkContacted(c.Request.Context(), id); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.IsArchived != nil {
		if updated, err = h.uc.SetArchived(c.Request.Context(), id, *req.IsArchived); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, leadResponse.LeadDetailResponse{Success: true, Lead: toLeadResponse(updated)})
}

func (h *LeadHandler) Withdraw(c *gin.Context) {
	var req leadRequest.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	operator, _ := middleware.OperatorFrom(c)
	withdrawn, err := h.uc.Withdraw(c.Request.Context(), req.ID, operator)
	switch {
	case errors.Is(err, domain.ErrNoOwnerAssigned) && withdrawn != nil:
		c.JSON(http.StatusOK, leadResponse.WithdrawResponse{
			Success: true,
			Code:    "no_owner_assigned",
			Message: "lead withdrawn, the sales page has no owner to receive it",
			Lead:    toLeadResponse(withdrawn),
		})
	case err != nil:
		RespondDomainError(c, err)
	default:
		message := "lead withdrawn"
		if withdrawn.IsTransferred {
			message = "lead withdrawn and transferred to the page owner"
		}
		c.JSON(http.StatusOK, leadResponse.WithdrawResponse{
			Success:     true,
			Transferred: withdrawn.IsTransferred,
			Message:     message,
			Lead:        toLeadResponse(withdrawn),
		})
	}
}

func (h *LeadHandler) AssignOwner(c *gin.Context) {
	var req leadRequest.AssignOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	operator, _ := middleware.OperatorFrom(c)
	owner, err := h.uc.AssignOwner(c.Request.Context(), c.Param("pageId"), req.UserID, operator)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, leadResponse.OwnerResponse{
		Success:     true,
		SalesPageID: owner.SalesPageID,
		UserID:      owner.UserID,
		AssignedBy:  owner.AssignedBy,
		AssignedAt:  owner.AssignedAt,
	})
}

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}

func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(c.Query(key))
	return v
}
