package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/minefield/internal/game"
)

type wsCommand string

const (
	wsGet     wsCommand = "g"
	wsReveal  wsCommand = "r"
	wsForfeit wsCommand = "f"
)

var (
	errUnknownCommand = errors.New("unknown command")
	errBadArguments   = errors.New("bad arguments")
)

func parseRowCol(args []string) (row int, col int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("%w: expected row and col, got %d values", errBadArguments, len(args))
		return
	}
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", errBadArguments)
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: col must be an int", errBadArguments)
		return
	}
	return
}

// wsGame runs text commands against one session for the lifetime of a
// connection.
type wsGame struct {
	h        GameHandler
	id       int64
	playerId *int64
}

func (g wsGame) execute(ctx context.Context, line string) (*game.Session, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, errUnknownCommand
	}
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsGet:
		return g.h.service.Fetch(ctx, g.id)
	case wsReveal:
		row, col, err := parseRowCol(args)
		if err != nil {
			return nil, err
		}
		return g.h.service.Reveal(ctx, g.id, g.playerId, row, col)
	case wsForfeit:
		return g.h.service.Forfeit(ctx, g.id, g.playerId)
	default:
		return nil, fmt.Errorf("%w %q", errUnknownCommand, cmd)
	}
}

// run answers every line of every text frame with the session or an error.
// Errors from the game are reported to the client; only connection errors
// end the loop.
func (g wsGame) run(ctx context.Context, conn *websocket.Conn) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}

		for _, line := range strings.Split(strings.TrimSpace(string(buf)), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}

			var reply any
			session, err := g.execute(ctx, line)
			if err != nil {
				if !isClientError(err) {
					g.h.log.WithError(err).WithField("game_session_id", g.id).
						Error("ws command failed")
				}
				reply = wrapError(err)
			} else {
				reply = NewGameSessionDTO(session)
			}

			if err := conn.WriteJSON(reply); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
		}
	}
}

func isClientError(err error) bool {
	for _, target := range []error{
		errUnknownCommand,
		errBadArguments,
		game.ErrInvalidParams,
		game.ErrOutOfBounds,
		game.ErrNotFound,
		game.ErrForbidden,
		game.ErrGameOver,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (h GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	id, ok := pathId(r)
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if _, err := h.service.Fetch(r.Context(), id); err != nil {
		h.sendGameError(w, err)
		return
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		h.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := h.log.WithField("game_session_id", id)
	log.Debug("established ws connection")

	g := wsGame{h: h, id: id, playerId: playerId(r)}
	err = g.run(r.Context(), conn)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Debug("ws connection closed")
		return
	}
	log.WithError(err).Warn("error in ws loop")
}
