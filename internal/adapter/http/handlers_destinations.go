package adapthttp

import (
	"net/http"

	"travelpack/internal/app"
)

type destinationRequest struct {
	City              string `json:"city"`
	Country           string `json:"country"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	WeatherPreference string `json:"weatherPreference"`
}

func (req destinationRequest) input() (app.DestinationInput, error) {
	start, err := parseDate("startDate", req.StartDate)
	if err != nil {
		return app.DestinationInput{}, err
	}
	end, err := parseDate("endDate", req.EndDate)
	if err != nil {
		return app.DestinationInput{}, err
	}
	return app.DestinationInput{
		City:              req.City,
		Country:           req.Country,
		StartDate:         start,
		EndDate:           end,
		WeatherPreference: req.WeatherPreference,
	}, nil
}

func decodeDestination(r *http.Request) (app.DestinationInput, error) {
	var req destinationRequest
	if err := parseJSON(r, &req); err != nil {
		return app.DestinationInput{}, err
	}
	return req.input()
}

func (s *Server) handleCreateDestination(w http.ResponseWriter, r *http.Request) {
	in, err := decodeDestination(r)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	d, err := s.dests.Create(r.Context(), userFrom(r.Context()).ID, in)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	list, err := s.dests.List(r.Context(), userFrom(r.Context()).ID)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetDestination(w http.ResponseWriter, r *http.Request) {
	d, err := s.dests.Get(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleUpdateDestination(w http.ResponseWriter, r *http.Request) {
	in, err := decodeDestination(r)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	d, err := s.dests.Update(r.Context(), userFrom(r.Context()).ID, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDestination(w http.ResponseWriter, r *http.Request) {
	if err := s.dests.Delete(r.Context(), userFrom(r.Context()).ID, r.PathValue("id")); err != nil {
		writeServiceError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"msg": "destination removed"})
}
