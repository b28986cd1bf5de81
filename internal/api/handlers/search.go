package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pawnest/pawsearch/internal/api"
	"github.com/pawnest/pawsearch/internal/api/middleware"
	"github.com/pawnest/pawsearch/internal/domain"
	"github.com/pawnest/pawsearch/internal/service"
)

// SearchService is the handler's view of the search core.
type SearchService interface {
	Search(ctx context.Context, query service.SearchQuery) (*service.SearchResponse, error)
	Suggest(ctx context.Context, query, lang string) []string
	VoiceSearch(ctx context.Context, audio []byte, lang string) (*service.SearchResponse, error)
	VisualSearch(ctx context.Context, image []byte) (*service.SearchResponse, error)
}

type SearchHandler struct {
	svc SearchService
}

func NewSearchHandler(svc SearchService) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Query       string `json:"query"`
	Type        string `json:"type,omitempty"`
	Language    string `json:"language,omitempty"`
	Sort        string `json:"sort,omitempty"`
	Page        int    `json:"page,omitempty"`
	Limit       int    `json:"limit,omitempty"`
	Category    string `json:"category,omitempty"`
	PartnerType string `json:"partner_type,omitempty"`
	Location    string `json:"location,omitempty"`
	Urgent      *bool  `json:"urgent,omitempty"`
	Emergency   *bool  `json:"emergency,omitempty"`
	Online      *bool  `json:"online,omitempty"`
}

// Search handles GET /search (query params) and POST /search (JSON body).
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if r.Method == http.MethodPost {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.Error(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		req = searchRequestFromParams(r.URL.Query())
	}

	if req.Query == "" {
		api.HandleError(w, domain.ErrEmptyQuery)
		return
	}

	query := service.SearchQuery{
		Query:    req.Query,
		Type:     service.SearchType(req.Type),
		Language: req.Language,
		Sort:     service.SortKey(req.Sort),
		Page:     req.Page,
		Limit:    req.Limit,
		UserID:   middleware.GetUserID(r.Context()),
		Filters: service.SearchFilters{
			Category:    req.Category,
			PartnerType: req.PartnerType,
			Location:    req.Location,
			Urgent:      req.Urgent,
			Emergency:   req.Emergency,
			Online:      req.Online,
		},
	}

	response, err := h.svc.Search(r.Context(), query)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, response)
}

// SuggestionsResponse is the GET /search/suggestions payload.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggestions handles GET /search/suggestions.
func (h *SearchHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	suggestions := h.svc.Suggest(r.Context(), params.Get("q"), params.Get("language"))
	if suggestions == nil {
		suggestions = []string{}
	}
	api.Success(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// VoiceSearch handles POST /search/voice. The modality is declared but not
// implemented; the call always fails with 501.
func (h *SearchHandler) VoiceSearch(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(r.Body)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	response, err := h.svc.VoiceSearch(r.Context(), audio, r.URL.Query().Get("language"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, response)
}

// VisualSearch handles POST /search/visual. Like voice, always 501.
func (h *SearchHandler) VisualSearch(w http.ResponseWriter, r *http.Request) {
	image, err := io.ReadAll(r.Body)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	response, err := h.svc.VisualSearch(r.Context(), image)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, response)
}

func searchRequestFromParams(params url.Values) SearchRequest {
	page, _ := strconv.Atoi(params.Get("page"))
	limit, _ := strconv.Atoi(params.Get("limit"))
	return SearchRequest{
		Query:       params.Get("q"),
		Type:        params.Get("type"),
		Language:    params.Get("language"),
		Sort:        params.Get("sort"),
		Page:        page,
		Limit:       limit,
		Category:    params.Get("category"),
		PartnerType: params.Get("partner_type"),
		Location:    params.Get("location"),
		Urgent:      boolParam(params, "urgent"),
		Emergency:   boolParam(params, "emergency"),
		Online:      boolParam(params, "online"),
	}
}

func boolParam(params url.Values, name string) *bool {
	raw := params.Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &value
}
