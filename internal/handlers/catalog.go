package handlers

import (
	"errors"
	"net/http"
	"strings"

	"oli3d-catalog/internal/catalog"
	"oli3d-catalog/internal/category"
	"oli3d-catalog/internal/contact"
	"oli3d-catalog/internal/logger"
	"oli3d-catalog/internal/metrics"
	"oli3d-catalog/internal/query"
	"oli3d-catalog/internal/session"
	"oli3d-catalog/internal/utils"
	"oli3d-catalog/internal/view"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	latestOnHome   = 8
	defaultPerPage = 12
	maxPerPage     = 100
)

// CatalogHandlers serves the read-only catalog API.
type CatalogHandlers struct {
	recipient string
	perPage   int
	stats     func() metrics.Snapshot
}

type CatalogOption func(*CatalogHandlers)

func WithPerPage(n int) CatalogOption {
	return func(h *CatalogHandlers) {
		if n > 0 {
			h.perPage = n
		}
	}
}

func WithStats(fn func() metrics.Snapshot) CatalogOption {
	return func(h *CatalogHandlers) {
		if fn != nil {
			h.stats = fn
		}
	}
}

// NewCatalogHandlers sends contact links to recipient.
func NewCatalogHandlers(recipient string, opts ...CatalogOption) *CatalogHandlers {
	h := &CatalogHandlers{
		recipient: recipient,
		perPage:   defaultPerPage,
		stats:     func() metrics.Snapshot { return metrics.Snapshot{} },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type categoriesResponse struct {
	Categories []category.Category `json:"categories"`
}

type homeResponse struct {
	Highlighted       []view.Card         `json:"highlighted"`
	Latest            []view.Card         `json:"latest"`
	PopularCategories []category.Category `json:"popularCategories"`
	SeasonalCategory  *category.Category  `json:"seasonalCategory"`
	ShowPrices        bool                `json:"showPrices"`
}

type productListResponse struct {
	Items       []view.Card `json:"items"`
	CurrentPage int         `json:"currentPage"`
	TotalPages  int         `json:"totalPages"`
	TotalItems  int         `json:"totalItems"`
	HasNext     bool        `json:"hasNext"`
	HasPrev     bool        `json:"hasPrev"`
	Category    string      `json:"category"`
	Query       string      `json:"q"`
	Sort        string      `json:"sort"`
}

type contactResponse struct {
	Href string `json:"href"`
}

func (h *CatalogHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (h *CatalogHandlers) Stats(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.stats(), http.StatusOK)
}

func (h *CatalogHandlers) Settings(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, svc.Settings(r.Context()), http.StatusOK)
}

func (h *CatalogHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, categoriesResponse{Categories: svc.Categories(r.Context())}, http.StatusOK)
}

func (h *CatalogHandlers) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "handler"),
		zap.String("method", "Home"),
	)

	if err := svc.Preload(ctx); err != nil {
		log.Error("failed to preload catalog", zap.Error(err))
	}
	showPrices := svc.ShouldShowPrices(ctx)

	highlighted, err := view.BuildCards(ctx, svc.Highlighted(ctx), showPrices)
	if err != nil {
		h.internalError(w, log, err)
		return
	}
	latest, err := view.BuildCards(ctx, svc.Latest(ctx, latestOnHome), showPrices)
	if err != nil {
		h.internalError(w, log, err)
		return
	}

	resp := homeResponse{
		Highlighted:       highlighted,
		Latest:            latest,
		PopularCategories: svc.PopularCategories(ctx),
		ShowPrices:        showPrices,
	}
	if seasonal, ok := svc.SeasonalCategory(ctx); ok {
		resp.SeasonalCategory = &seasonal
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

// ListProducts serves the shop page: ?category=a,b&q=&sort=&page=&perPage=.
// The category selection is echoed back so the client can deep-link it.
func (h *CatalogHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "handler"),
		zap.String("method", "ListProducts"),
	)

	q := r.URL.Query()
	params := query.Params{
		Categories: utils.SplitCSV(q.Get("category")),
		Search:     q.Get("q"),
		Sort:       query.SortKey(q.Get("sort")),
		Page:       utils.ParseIntOrDefault(q.Get("page"), 1),
		PerPage:    utils.ParseIntOrDefault(q.Get("perPage"), h.perPage),
	}
	if params.Sort == "" {
		params.Sort = query.DefaultSort
	}
	if params.PerPage > maxPerPage {
		params.PerPage = maxPerPage
	}

	page := query.List(svc.Products(ctx), params)
	cards, err := view.BuildCards(ctx, page.Items, svc.ShouldShowPrices(ctx))
	if err != nil {
		h.internalError(w, log, err)
		return
	}

	selected := strings.Join(params.Categories, ",")
	if selected == "" {
		selected = category.AllID
	}

	utils.WriteJSON(w, productListResponse{
		Items:       cards,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalItems:  page.TotalItems,
		HasNext:     page.HasNext,
		HasPrev:     page.HasPrev,
		Category:    selected,
		Query:       params.Search,
		Sort:        string(params.Sort),
	}, http.StatusOK)
}

func (h *CatalogHandlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.service(w, r)
	if !ok {
		return
	}
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "handler"),
		zap.String("method", "GetProduct"),
	)

	p, err := svc.ProductByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, err)
		return
	}

	detail, err := view.NewDetail(ctx, p, svc.Related(ctx, p), svc.ShouldShowPrices(ctx), h.recipient)
	if err != nil {
		h.internalError(w, log, err)
		return
	}
	utils.WriteJSON(w, detail, http.StatusOK)
}

// Contact builds the mailto link for ?quantity=&message=. Quantity is not
// bounds-checked.
func (h *CatalogHandlers) Contact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, ok := h.service(w, r)
	if !ok {
		return
	}

	p, err := svc.ProductByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, err)
		return
	}

	q := r.URL.Query()
	href := contact.BuildMailto(h.recipient, contact.Inquiry{
		Product:    p,
		Quantity:   utils.ParseIntOrDefault(q.Get("quantity"), 1),
		Message:    q.Get("message"),
		ShowPrices: svc.ShouldShowPrices(ctx),
	})
	utils.WriteJSON(w, contactResponse{Href: href}, http.StatusOK)
}

func (h *CatalogHandlers) service(w http.ResponseWriter, r *http.Request) (catalog.Service, bool) {
	svc, ok := session.ServiceFrom(r.Context())
	if !ok {
		utils.WriteJSONError(w, "session unavailable", http.StatusInternalServerError)
		return nil, false
	}
	return svc, true
}

func (h *CatalogHandlers) lookupError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrEmptyProductID):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, catalog.ErrProductNotFound):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	default:
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *CatalogHandlers) internalError(w http.ResponseWriter, log *zap.Logger, err error) {
	log.Error("request failed", zap.Error(err))
	utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
}
