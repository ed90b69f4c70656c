// Package handler exposes the normalized assembly data over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aohus/political-metrics/internal/assembly/models"
	"github.com/aohus/political-metrics/internal/assembly/store"
	"github.com/aohus/political-metrics/internal/document"
	"github.com/aohus/political-metrics/internal/stats"
	"github.com/aohus/political-metrics/pkg/domainerrors"
	"github.com/aohus/political-metrics/pkg/platform/httputil"
)

// Stats is the statistics surface the handler needs.
type Stats interface {
	TopProposers(ctx context.Context, limit int) ([]stats.MemberBillCount, error)
}

// Handler wires the read endpoints to the stores and the stats service.
type Handler struct {
	members store.MemberStore
	bills   store.BillStore
	docs    document.Store
	stats   Stats
	logger  *slog.Logger
}

// New constructs the API handler. docs and statsService may be nil when the
// deployment does not carry those features; their routes then return 404.
func New(members store.MemberStore, bills store.BillStore, docs document.Store, statsService Stats, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		members: members,
		bills:   bills,
		docs:    docs,
		stats:   statsService,
		logger:  logger,
	}
}

// Register mounts all read endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/bills", h.handleListBills)
	r.Get("/bills/{billID}", h.handleGetBill)
	r.Get("/bills/{billID}/proposers", h.handleBillProposers)
	r.Get("/members/{memberID}", h.handleGetMember)
	r.Get("/members/{memberID}/eras", h.handleMemberEras)
	if h.docs != nil {
		r.Get("/documents/{billNo}", h.handleGetDocument)
	}
	if h.stats != nil {
		r.Get("/stats/members/top", h.handleTopProposers)
	}
}

func (h *Handler) handleListBills(w http.ResponseWriter, r *http.Request) {
	filter := store.BillFilter{
		Status:    models.BillStatus(r.URL.Query().Get("status")),
		Committee: r.URL.Query().Get("committee"),
	}
	bills, err := h.bills.ListBills(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "listing bills failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	if bills == nil {
		bills = []models.Bill{}
	}
	httputil.WriteJSON(w, http.StatusOK, bills)
}

func (h *Handler) handleGetBill(w http.ResponseWriter, r *http.Request) {
	bill, err := h.bills.FindBill(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, bill)
}

func (h *Handler) handleBillProposers(w http.ResponseWriter, r *http.Request) {
	relations, err := h.bills.ProposersByBill(r.Context(), chi.URLParam(r, "billID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, relations)
}

func (h *Handler) handleGetMember(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.FindMember(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, member)
}

func (h *Handler) handleMemberEras(w http.ResponseWriter, r *http.Request) {
	eras, err := h.members.ErasByMember(r.Context(), chi.URLParam(r, "memberID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, eras)
}

func (h *Handler) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	info, err := h.docs.FindByBillNo(r.Context(), chi.URLParam(r, "billNo"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, info)
}

func (h *Handler) handleTopProposers(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, domainerrors.New(domainerrors.CodeValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	counts, err := h.stats.TopProposers(r.Context(), limit)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "computing member stats failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	if counts == nil {
		counts = []stats.MemberBillCount{}
	}
	httputil.WriteJSON(w, http.StatusOK, counts)
}
