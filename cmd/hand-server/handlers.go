package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hand-forge/internal/app/session"
	"hand-forge/internal/config"
	"hand-forge/internal/engine"
	"hand-forge/internal/history"
	"hand-forge/internal/parse"
	"hand-forge/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// handExtractor is the import endpoint's view of the external parser.
type handExtractor interface {
	Extract(ctx context.Context, text string) (*parse.Extraction, error)
}

type sessionCreateRequest struct {
	TableSize        int    `json:"table_size"`
	SmallBlind       int64  `json:"small_blind"`
	BigBlind         int64  `json:"big_blind"`
	Ante             int64  `json:"ante"`
	Straddle         int64  `json:"straddle"`
	HeroPosition     string `json:"hero_position"`
	EffectiveStack   int64  `json:"effective_stack"`
	StackInBigBlinds bool   `json:"stack_in_big_blinds"`
}

type sessionResponse struct {
	SessionID string          `json:"session_id"`
	Snapshot  engine.Snapshot `json:"snapshot"`
}

func sessionCreateHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionCreateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		cfg := engine.Config{
			TableSize:        req.TableSize,
			SmallBlind:       req.SmallBlind,
			BigBlind:         req.BigBlind,
			Ante:             req.Ante,
			Straddle:         req.Straddle,
			HeroPosition:     engine.CanonicalPosition(req.HeroPosition, req.TableSize),
			EffectiveStack:   req.EffectiveStack,
			StackInBigBlinds: req.StackInBigBlinds,
		}
		sess, err := sessions.Create(cfg)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{SessionID: sess.ID, Snapshot: snapshotOf(sess)})
	}
}

func sessionGetHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, Snapshot: snapshotOf(sess)})
	}
}

type seatUpdateRequest struct {
	Active *bool            `json:"active,omitempty"`
	Stack  *int64           `json:"stack,omitempty"`
	Cards  *parse.FlexCards `json:"cards,omitempty"`
}

func seatUpdateHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var req seatUpdateRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		err = sess.With(func(e *engine.Engine) error {
			pos := engine.CanonicalPosition(chi.URLParam(r, "position"), e.Config().TableSize)
			if req.Active != nil {
				if err := e.SetSeatActive(pos, *req.Active); err != nil {
					return err
				}
			}
			if req.Stack != nil {
				if err := e.SetSeatStack(pos, *req.Stack); err != nil {
					return err
				}
			}
			if req.Cards != nil {
				cards, err := engine.ParseCards(*req.Cards...)
				if err != nil {
					return err
				}
				if err := e.SetSeatCards(pos, cards); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, Snapshot: snapshotOf(sess)})
	}
}

type actionRequest struct {
	Kind   string `json:"kind"`
	Amount int64  `json:"amount"`
}

func actionCommitHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var req actionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		kind := engine.ActionKind(strings.ToLower(strings.TrimSpace(req.Kind)))
		if err := sess.With(func(e *engine.Engine) error {
			return e.Commit(kind, req.Amount)
		}); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, Snapshot: snapshotOf(sess)})
	}
}

func undoHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := sess.With(func(e *engine.Engine) error { return e.Undo() }); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, Snapshot: snapshotOf(sess)})
	}
}

type boardRequest struct {
	Street string          `json:"street"`
	Cards  parse.FlexCards `json:"cards"`
}

func boardHandler(sessions *session.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var req boardRequest
		if err := decodeJSON(r, &req); err != nil {
			writeHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if err := sess.With(func(e *engine.Engine) error {
			cards, err := engine.ParseCards(req.Cards...)
			if err != nil {
				return err
			}
			return e.SetBoard(engine.Street(strings.ToLower(req.Street)), cards)
		}); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse{SessionID: sess.ID, Snapshot: snapshotOf(sess)})
	}
}

type importRequest struct {
	Text string `json:"text"`
}

type importResponse struct {
	SessionID string          `json:"session_id"`
	Warnings  []string        `json:"warnings,omitempty"`
	Snapshot  engine.Snapshot `json:"snapshot"`
}

func importHandler(sessions *session.Service, extractor handExtractor) http.HandlerFunc {
	reconciler := parse.NewReconciler()
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var req importRequest
		if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Text) == "" {
			writeHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		ex, err := extractor.Extract(r.Context(), req.Text)
		if err != nil {
			log.Warn().Err(err).Str("session_id", sess.ID).Msg("hand extraction failed")
			writeHTTPError(w, http.StatusBadGateway, "parser_failed")
			return
		}
		var warnings []string
		if err := sess.With(func(e *engine.Engine) error {
			var applyErr error
			warnings, applyErr = reconciler.Apply(e, ex)
			return applyErr
		}); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, importResponse{SessionID: sess.ID, Warnings: warnings, Snapshot: snapshotOf(sess)})
	}
}

func finalizeHandler(sessions *session.Service, st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := sessions.Get(chi.URLParam(r, "session_id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		var row store.Hand
		if err := sess.With(func(e *engine.Engine) error {
			hand, err := history.Assemble(e)
			if err != nil {
				return err
			}
			hand.ID = store.NewID()
			hand.CreatedAt = time.Now().UTC()
			record, err := json.Marshal(hand)
			if err != nil {
				return err
			}
			row = store.Hand{
				ID:           hand.ID,
				SessionID:    sess.ID,
				TableSize:    hand.TableSize,
				HeroPosition: hand.HeroPosition,
				SmallBlind:   hand.SmallBlind,
				BigBlind:     hand.BigBlind,
				Pot:          hand.Pot,
				HeroNet:      hand.HeroNet,
				Showdown:     hand.Showdown,
				Record:       record,
				CreatedAt:    hand.CreatedAt,
			}
			return nil
		}); err != nil {
			writeDomainError(w, err)
			return
		}
		if err := st.InsertHand(r.Context(), row); err != nil {
			log.Error().Err(err).Str("hand_id", row.ID).Msg("hand insert failed")
			writeHTTPError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		writeJSON(w, http.StatusCreated, row)
	}
}

func handListHandler(st *store.Store, cfg config.ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeHTTPError(w, http.StatusBadRequest, "invalid_limit")
				return
			}
			limit = n
		}
		if cfg.HandListLimitMax > 0 && limit > cfg.HandListLimitMax {
			limit = cfg.HandListLimitMax
		}
		hands, err := st.ListHands(r.Context(), limit)
		if err != nil {
			writeHTTPError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"hands": hands})
	}
}

func handGetHandler(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hand, err := st.GetHand(r.Context(), chi.URLParam(r, "hand_id"))
		if err != nil {
			if err == store.ErrNotFound {
				writeHTTPError(w, http.StatusNotFound, "hand_not_found")
				return
			}
			writeHTTPError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		writeJSON(w, http.StatusOK, hand)
	}
}

func snapshotOf(sess *session.Session) engine.Snapshot {
	var snap engine.Snapshot
	_ = sess.With(func(e *engine.Engine) error {
		snap = e.Snapshot()
		return nil
	})
	return snap
}
