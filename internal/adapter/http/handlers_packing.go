package adapthttp

import (
	"net/http"

	"travelpack/internal/domain"
)

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string          `json:"name"`
		Category domain.Category `json:"category"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeServiceError(w, s.logger, err)
		return
	}

	d, err := s.packing.AddItem(r.Context(), userFrom(r.Context()).ID, r.PathValue("destinationId"), req.Name, req.Category)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// handleUpdateItem edits name and category when present. A body without
// "packed" toggles the packed state, matching a bare checkbox click.
func (s *Server) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     *string          `json:"name"`
		Category *domain.Category `json:"category"`
		Packed   *bool            `json:"packed"`
	}
	if err := parseJSON(r, &req); err != nil {
		writeServiceError(w, s.logger, err)
		return
	}

	u := domain.ItemUpdate{Name: req.Name, Category: req.Category, Packed: domain.TogglePacked{}}
	if req.Packed != nil {
		u.Packed = domain.SetPacked(*req.Packed)
	}

	d, err := s.packing.UpdateItem(r.Context(), userFrom(r.Context()).ID, r.PathValue("destinationId"), r.PathValue("itemId"), u)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	d, err := s.packing.DeleteItem(r.Context(), userFrom(r.Context()).ID, r.PathValue("destinationId"), r.PathValue("itemId"))
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleClearItems(w http.ResponseWriter, r *http.Request) {
	d, err := s.packing.ClearItems(r.Context(), userFrom(r.Context()).ID, r.PathValue("destinationId"))
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}
