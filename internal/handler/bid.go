package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tenderdesk/tenderdesk/internal/middleware"
	"github.com/tenderdesk/tenderdesk/internal/model"
	"github.com/tenderdesk/tenderdesk/internal/repository"
	"github.com/tenderdesk/tenderdesk/internal/service"
)

type BidHandler struct {
	service *service.BidService
}

func NewBidHandler(service *service.BidService) *BidHandler {
	return &BidHandler{service: service}
}

func (h *BidHandler) List(w http.ResponseWriter, r *http.Request) {
	tenderID, err := uuidQuery(r, "tender_id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	clientID, err := uuidQuery(r, "client_company_id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}

	bids, total, err := h.service.List(r.Context(), middleware.TenantFromContext(r.Context()), repository.BidFilter{
		TenderID:        tenderID,
		ClientCompanyID: clientID,
		Page:            pageFromQuery(r),
	})
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondList(w, bids, total)
}

func (h *BidHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBidInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	bid, err := h.service.Create(r.Context(), middleware.TenantFromContext(r.Context()), input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusCreated, bid)
}

func (h *BidHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	bid, err := h.service.Get(r.Context(), middleware.TenantFromContext(r.Context()), id)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, bid)
}

func (h *BidHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), middleware.TenantFromContext(r.Context()), id); err != nil {
		respondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BidHandler) AssignUsers(w http.ResponseWriter, r *http.Request) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	var input service.AssignUsersInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	bid, err := h.service.AssignUsers(r.Context(), middleware.TenantFromContext(r.Context()), id, input)
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, bid)
}

// stageAction runs one stage operation for /bids/{id}/stages/{stage}/...
func (h *BidHandler) stageAction(w http.ResponseWriter, r *http.Request, action func(*model.TenantContext, uuid.UUID, model.StageName) (*model.Bid, error)) {
	id, err := uuidParam(r, "id")
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	bid, err := action(middleware.TenantFromContext(r.Context()), id, model.StageName(chi.URLParam(r, "stage")))
	if err != nil {
		respondWithError(w, r, err)
		return
	}
	respondOK(w, http.StatusOK, bid)
}

func (h *BidHandler) EditStage(w http.ResponseWriter, r *http.Request) {
	var input service.EditStageInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	h.stageAction(w, r, func(tc *model.TenantContext, id uuid.UUID, stage model.StageName) (*model.Bid, error) {
		return h.service.EditStage(r.Context(), tc, id, stage, input)
	})
}

func (h *BidHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.stageAction(w, r, func(tc *model.TenantContext, id uuid.UUID, stage model.StageName) (*model.Bid, error) {
		return h.service.Submit(r.Context(), tc, id, stage)
	})
}

func (h *BidHandler) AssignReviewer(w http.ResponseWriter, r *http.Request) {
	var input service.AssignReviewerInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	h.stageAction(w, r, func(tc *model.TenantContext, id uuid.UUID, stage model.StageName) (*model.Bid, error) {
		return h.service.AssignReviewer(r.Context(), tc, id, stage, input)
	})
}

func (h *BidHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.stageAction(w, r, func(tc *model.TenantContext, id uuid.UUID, stage model.StageName) (*model.Bid, error) {
		return h.service.Approve(r.Context(), tc, id, stage)
	})
}

func (h *BidHandler) Reject(w http.ResponseWriter, r *http.Request) {
	var input service.RejectInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err)
		return
	}
	h.stageAction(w, r, func(tc *model.TenantContext, id uuid.UUID, stage model.StageName) (*model.Bid, error) {
		return h.service.Reject(r.Context(), tc, id, stage, input)
	})
}

// Draft asks the AI provider for a first version of the stage content.
func (h *BidHandler) Draft(w http.ResponseWriter, r *http.Request) {
	h.stageAction(w, r, func(tc *model.TenantContext, id uuid.UUID, stage model.StageName) (*model.Bid, error) {
		return h.service.DraftWithAI(r.Context(), tc, id, stage)
	})
}
