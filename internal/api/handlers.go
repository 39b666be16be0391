package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/udisondev/craftdex/internal/icon"
	"github.com/udisondev/craftdex/internal/model"
	"github.com/udisondev/craftdex/internal/recipe"
	"github.com/udisondev/craftdex/internal/tree"
)

// GET /api/recipes/{itemID}/dependencies?quantity=N
func (s *Server) handleDependencies(w http.ResponseWriter, r *http.Request) {
	node, ok := s.buildTree(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, node)
}

// GET /api/recipes/{itemID}/tree?quantity=N&size=S
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	size, err := intParam(r, "size", s.iconSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	node, ok := s.buildTree(w, r)
	if !ok {
		return
	}

	view := tree.Render(node, tree.Options{
		Icons:      s.profiles["item"],
		IconSize:   size,
		IconLookup: s.iconLookup(r.Context()),
		MaxDepth:   s.builder.MaxDepth(),
		Logger:     s.log,
	})
	s.writeJSON(w, http.StatusOK, view)
}

// GET /api/icons/{profile}/{identifier}?size=S&legacy=1
// Responds with JSON null when there is no icon.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.profiles[chi.URLParam(r, "profile")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown icon profile")
		return
	}
	size, err := intParam(r, "size", s.iconSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	identifier := chi.URLParam(r, "identifier")
	ref := profile.Resolve(identifier, size)
	if r.URL.Query().Get("legacy") == "1" {
		ref = profile.ResolveLegacy(identifier)
	}
	// nil *iconResponse кодируется как null.
	s.writeJSON(w, http.StatusOK, newIconResponse(ref))
}

// GET /api/npcs/{id}?size=S
func (s *Server) handleNPC(w http.ResponseWriter, r *http.Request) {
	var npc *model.NPC
	if s.entities != nil {
		npc = s.entities.NPC(chi.URLParam(r, "id"))
	}
	if npc == nil {
		s.writeError(w, http.StatusNotFound, "npc not found")
		return
	}
	s.writeEntity(w, r, npc.ID, npc.DisplayName(), npc.ImagePath)
}

// GET /api/compendium/{id}?size=S
func (s *Server) handleCompendium(w http.ResponseWriter, r *http.Request) {
	var entry *model.CompendiumEntry
	if s.entities != nil {
		entry = s.entities.CompendiumEntry(chi.URLParam(r, "id"))
	}
	if entry == nil {
		s.writeError(w, http.StatusNotFound, "compendium entry not found")
		return
	}
	s.writeEntity(w, r, entry.ID, entry.DisplayName(), entry.ImagePath)
}

// writeEntity resolves an NPC or compendium image through the large profile.
func (s *Server) writeEntity(w http.ResponseWriter, r *http.Request, id, name, imagePath string) {
	size, err := intParam(r, "size", s.iconSize)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ref *icon.Reference
	if profile, ok := s.profiles[icon.LargeProfile.Name]; ok {
		ref = profile.Resolve(imagePath, size)
	}
	s.writeJSON(w, http.StatusOK, entityResponse{
		ID:    id,
		Name:  name,
		Image: newIconResponse(ref),
	})
}

type iconResponse struct {
	Base   string `json:"base"`
	Size   int    `json:"size"`
	Format string `json:"format"`
	Path   string `json:"path"`
	URL    string `json:"url"`
}

func newIconResponse(ref *icon.Reference) *iconResponse {
	if ref == nil {
		return nil
	}
	return &iconResponse{
		Base:   ref.Base,
		Size:   ref.Size,
		Format: ref.Format,
		Path:   ref.Path(),
		URL:    ref.URL(),
	}
}

type entityResponse struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Image *iconResponse `json:"image"`
}

// buildTree parses the request, builds the tree and writes an error response on failure.
func (s *Server) buildTree(w http.ResponseWriter, r *http.Request) (*model.DependencyNode, bool) {
	itemID := chi.URLParam(r, "itemID")
	quantity, err := intParam(r, "quantity", 1)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	start := time.Now()
	node, err := s.builder.BuildDependencyTree(r.Context(), itemID, quantity)
	s.metrics.treeBuildDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		status, result := classify(err)
		s.metrics.treeBuildsTotal.WithLabelValues(result).Inc()
		if status == http.StatusInternalServerError {
			s.log.Error("building dependency tree", "itemID", itemID, "error", err)
			s.writeError(w, status, "internal error")
		} else {
			s.log.Info("dependency tree rejected", "itemID", itemID, "result", result, "error", err)
			s.writeError(w, status, err.Error())
		}
		return nil, false
	}

	s.metrics.treeBuildsTotal.WithLabelValues("ok").Inc()
	return node, true
}

// classify maps builder errors to an HTTP status and a metric label.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, recipe.ErrItemNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, recipe.ErrInvalidQuantity):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, recipe.ErrQuantityOverflow):
		return http.StatusBadRequest, "overflow"
	case errors.Is(err, recipe.ErrCycle):
		return http.StatusUnprocessableEntity, "cycle"
	case errors.Is(err, recipe.ErrMaxDepthExceeded):
		return http.StatusUnprocessableEntity, "too_deep"
	case errors.Is(err, recipe.ErrInvalidIngredient):
		return http.StatusUnprocessableEntity, "bad_data"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "canceled"
	default:
		return http.StatusInternalServerError, "error"
	}
}

// iconLookup resolves an item ID to its icon identifier for one request.
func (s *Server) iconLookup(ctx context.Context) tree.IconLookup {
	if s.items == nil {
		return nil
	}
	return func(itemID string) string {
		it, err := s.items.Item(ctx, itemID)
		if err != nil || it == nil {
			return itemID
		}
		return it.IconIdentifier()
	}
}

func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
