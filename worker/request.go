// Package worker runs endgame solves on a pool of goroutines, each
// request crossing the pool boundary as a compressed gob message.
package worker

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/will-hanabi-bot/endgame"
	"github.com/will-hanabi-bot/endgame/cards"
	"github.com/will-hanabi-bot/endgame/frac"
	"github.com/will-hanabi-bot/endgame/gamestate"
)

// Request asks for the best action in one position.
type Request struct {
	ID    uuid.UUID
	State gamestate.State
	// Us is the player whose unresolved cards are enumerated.
	Us gamestate.Player
	// Turn is the player to act.
	Turn gamestate.Player
	// Possible identities of the unresolved cards of Us, by card order.
	Possible map[int][]cards.Card
	// Strategy names a registered Strategy.
	Strategy string

	Timeout   time.Duration
	MaxUnseen int
	CacheSize int
}

// NewRequest returns a Request with a fresh ID, the default strategy
// and the default solver config.
func NewRequest(state gamestate.State, us, turn gamestate.Player, possible map[int][]cards.Card) *Request {
	config := endgame.DefaultConfig()
	return &Request{
		ID:        uuid.New(),
		State:     state,
		Us:        us,
		Turn:      turn,
		Possible:  possible,
		Strategy:  DefaultStrategyName,
		Timeout:   config.Timeout,
		MaxUnseen: config.MaxUnseen,
		CacheSize: config.CacheSize,
	}
}

// Config returns the solver config the Request asks for.
func (r *Request) Config() endgame.Config {
	return endgame.Config{
		Timeout:   r.Timeout,
		MaxUnseen: r.MaxUnseen,
		CacheSize: r.CacheSize,
	}
}

// Failure is the reason a Response carries no winning action.
type Failure string

const (
	NoFailure Failure = ""
	// Unwinnable means no line reaches the max score.
	Unwinnable Failure = "unwinnable"
	// Unsolved means the solver gave up. The winrate is meaningless.
	Unsolved Failure = "unsolved"
	// Invalid means the request could not be solved as given.
	Invalid Failure = "invalid"
)

// Response is the answer to the Request with the same ID.
type Response struct {
	ID      uuid.UUID
	Action  gamestate.Action
	Winrate frac.Frac
	Failure Failure
	// Message describes the failure, if any.
	Message string
}

func (r Response) String() string {
	if r.Failure != NoFailure {
		return fmt.Sprintf("%v: %s (%s)", r.ID, r.Failure, r.Message)
	}
	return fmt.Sprintf("%v: %v with winrate %v (%s)", r.ID, r.Action, r.Winrate, r.Winrate.Decimal(4))
}

// WriteRequest writes the gzipped, gob-encoded Request to w.
func WriteRequest(w io.Writer, req *Request) error {
	return errors.Wrap(write(w, req), "writing request")
}

// ReadRequest reads a Request written by WriteRequest.
func ReadRequest(r io.Reader) (*Request, error) {
	var req Request
	if err := read(r, &req); err != nil {
		return nil, errors.Wrap(err, "reading request")
	}
	return &req, nil
}

// WriteResponse writes the gzipped, gob-encoded Response to w.
func WriteResponse(w io.Writer, resp Response) error {
	return errors.Wrap(write(w, resp), "writing response")
}

// ReadResponse reads a Response written by WriteResponse.
func ReadResponse(r io.Reader) (Response, error) {
	var resp Response
	err := read(r, &resp)
	return resp, errors.Wrap(err, "reading response")
}

// EncodeRequest returns the Request as it crosses the pool boundary.
func EncodeRequest(req *Request) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeRequest(data []byte) (*Request, error) {
	return ReadRequest(bytes.NewReader(data))
}

func write(w io.Writer, v interface{}) error {
	gzw := gzip.NewWriter(w)
	if err := gob.NewEncoder(gzw).Encode(v); err != nil {
		gzw.Close()
		return err
	}
	return gzw.Close()
}

func read(r io.Reader, v interface{}) error {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return err
	}
	defer gzr.Close()

	return gob.NewDecoder(gzr).Decode(v)
}
