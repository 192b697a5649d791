package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/packs"
)

func (a *api) listPresets(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	out := make([]packs.Pack, 0, len(packs.Presets))
	for _, p := range packs.Presets {
		if category != "" && category != "all" && p.Category != category {
			continue
		}
		out = append(out, p)
	}

	respondJSON(w, http.StatusOK, struct {
		Packs      []packs.Pack      `json:"packs"`
		Categories map[string]string `json:"categories"`
	}{Packs: out, Categories: packs.CategoryNames})
}

func (a *api) presetItems(w http.ResponseWriter, r *http.Request) {
	p, ok := packs.ByID(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "pack not found", http.StatusNotFound)
		return
	}

	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err := strconv.Atoi(raw)
		if err != nil || count < 1 {
			http.Error(w, "invalid count", http.StatusBadRequest)
			return
		}
		respondJSON(w, http.StatusOK, packs.PackItemsSubset(p, count))
		return
	}

	respondJSON(w, http.StatusOK, packs.PackItems(p))
}

func (a *api) requireStore(w http.ResponseWriter) bool {
	if a.store == nil {
		http.Error(w, "community packs unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (a *api) listCommunity(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}

	q := r.URL.Query()
	opts := packs.ListOptions{
		Category: q.Get("category"),
		SortBy:   q.Get("sort"),
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		opts.Limit = limit
	}

	out, err := a.store.List(r.Context(), opts)
	if err != nil {
		a.log.Error("list community packs", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *api) searchCommunity(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "missing query", http.StatusBadRequest)
		return
	}

	out, err := a.store.Search(r.Context(), query, 20)
	if err != nil {
		a.log.Error("search community packs", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, out)
}

func (a *api) createCommunity(w http.ResponseWriter, r *http.Request) {
	if !a.requireStore(w) {
		return
	}

	var in struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Items       []string `json:"items"`
		CreatorName string   `json:"creator_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if in.Name == "" || len(in.Items) < 2 {
		http.Error(w, "name and at least 2 items required", http.StatusBadRequest)
		return
	}

	created, err := a.store.Create(r.Context(), packs.CommunityPack{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Items:       in.Items,
		CreatorName: in.CreatorName,
	})
	if err != nil {
		a.log.Error("create community pack", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (a *api) upvoteCommunity(w http.ResponseWriter, r *http.Request) {
	a.incrementCommunity(w, r, (*packs.Store).Upvote)
}

func (a *api) playCommunity(w http.ResponseWriter, r *http.Request) {
	a.incrementCommunity(w, r, (*packs.Store).IncrementPlays)
}

func (a *api) incrementCommunity(w http.ResponseWriter, r *http.Request, op func(*packs.Store, context.Context, string) error) {
	if !a.requireStore(w) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := op(a.store, r.Context(), id); err != nil {
		if errors.Is(err, packs.ErrPackNotFound) {
			http.Error(w, "pack not found", http.StatusNotFound)
			return
		}
		a.log.Error("increment community pack counter", zap.Error(err))
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
