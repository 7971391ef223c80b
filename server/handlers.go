package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/s0up4200/steam-dilemma/filter"
	"github.com/s0up4200/steam-dilemma/model"
	"github.com/s0up4200/steam-dilemma/steam"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	value := s.state.IncrementCounter()
	writeJSON(w, http.StatusOK, model.CounterResponse{CounterValue: value})
}

func (s *Server) handleGetCustomerLibrary(w http.ResponseWriter, r *http.Request) {
	var steamID string
	if err := json.NewDecoder(r.Body).Decode(&steamID); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, r, http.StatusRequestEntityTooLarge, "body_too_large", "Request body is too large")
			return
		}
		writeError(w, r, http.StatusBadRequest, "invalid_body", "Request body must be a JSON string holding a Steam ID")
		return
	}

	var gameFilter filter.Filter
	if expression := r.URL.Query().Get("filter"); expression != "" {
		compiled, err := s.compiler.Compile(expression)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid_filter", err.Error())
			return
		}
		gameFilter = compiled
	}

	logger := s.logger.With().Str("request_id", RequestIDFrom(r)).Str("steam_id", steamID).Logger()

	library, err := s.fetcher.GetUserLibrary(r.Context(), steamID)
	if err != nil {
		kind := "internal"
		message := err.Error()
		var apiErr *steam.APIError
		if errors.As(err, &apiErr) {
			kind = apiErr.Kind.String()
			message = apiErr.Message
		}
		logger.Warn().Err(err).Str("kind", kind).Msg("Could not fetch library, returning placeholder customer")

		writeJSON(w, http.StatusOK, model.CustomerResponse{
			Customer: s.placeholderCustomer(),
			Error:    &model.ErrorBody{Kind: kind, Message: message},
		})
		return
	}

	games := library.Games
	if gameFilter != nil {
		games, err = filter.Apply(r.Context(), gameFilter, games)
		if err != nil {
			logger.Debug().Err(err).Msg("Filtering cancelled")
			writeError(w, r, http.StatusServiceUnavailable, "cancelled", "Request was cancelled")
			return
		}
	}

	customer := model.Customer{
		SteamName: steamID,
		Games:     (&steam.UserLibrary{GameCount: len(games), Games: games}).ToModel(),
	}
	if id, ok := steam.ParseID(steamID); ok {
		customer.SteamID = &id
	}

	logger.Debug().Int("games", len(customer.Games)).Msg("Returning customer library")
	writeJSON(w, http.StatusOK, model.CustomerResponse{Customer: customer})
}

func (s *Server) placeholderCustomer() model.Customer {
	return model.Customer{
		SteamName: s.cfg.PlaceholderName,
		SteamID:   nil,
		Games:     []model.Game{},
	}
}
