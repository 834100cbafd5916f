package worker

import (
	"context"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/will-hanabi-bot/endgame"
)

var errPoolClosed = errors.New("worker pool is shut down")

type job struct {
	ctx     context.Context
	request []byte
	reply   chan<- Response
}

// Pool solves requests on a fixed number of goroutines.
// Each request is solved with its own Session, so workers share no caches.
type Pool struct {
	jobs chan job
	g    *errgroup.Group
	ctx  context.Context
}

// NewPool starts numWorkers workers. They stop when ctx is done or the
// Pool is closed.
func NewPool(ctx context.Context, numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	p := &Pool{
		jobs: make(chan job),
		g:    g,
		ctx:  ctx,
	}
	for i := 0; i < numWorkers; i++ {
		i := i
		g.Go(func() error {
			glog.V(2).Infof("Worker %d starting", i)
			defer glog.V(2).Infof("Worker %d exiting", i)
			return p.run()
		})
	}
	return p
}

func (p *Pool) run() error {
	for {
		select {
		case <-p.ctx.Done():
			return p.ctx.Err()
		case j, ok := <-p.jobs:
			if !ok {
				return nil
			}
			j.reply <- handle(j.ctx, j.request)
		}
	}
}

// Submit solves the Request on the next free worker and waits for its
// Response. Submit must not be called after Close.
func (p *Pool) Submit(ctx context.Context, req *Request) (Response, error) {
	if p.ctx.Err() != nil {
		return Response{}, errPoolClosed
	}

	data, err := EncodeRequest(req)
	if err != nil {
		return Response{}, err
	}

	reply := make(chan Response, 1)
	select {
	case p.jobs <- job{ctx: ctx, request: data, reply: reply}:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	case <-p.ctx.Done():
		return Response{}, errPoolClosed
	}

	// The worker checks ctx while solving, so the reply always comes.
	return <-reply, nil
}

// SubmitAll solves every Request concurrently and returns the
// Responses in the same order.
func (p *Pool) SubmitAll(ctx context.Context, reqs []*Request) ([]Response, error) {
	result := make([]Response, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			resp, err := p.Submit(ctx, req)
			if err != nil {
				return errors.Wrapf(err, "request %v", req.ID)
			}
			result[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// Close stops accepting requests and waits for the workers to exit.
func (p *Pool) Close() error {
	close(p.jobs)
	err := p.g.Wait()
	if errors.Cause(err) == context.Canceled {
		return nil
	}
	return err
}

// handle decodes and solves one request. Every failure, including a
// malformed request, is reported in the Response.
func handle(ctx context.Context, data []byte) Response {
	req, err := DecodeRequest(data)
	if err != nil {
		return Response{Failure: Invalid, Message: err.Error()}
	}

	return Solve(ctx, req)
}

// Solve answers the Request on the calling goroutine.
func Solve(ctx context.Context, req *Request) Response {
	resp := Response{ID: req.ID}
	strategy, ok := LookupStrategy(req.Strategy)
	if !ok {
		resp.Failure = Invalid
		resp.Message = "unknown strategy: " + req.Strategy
		return resp
	}

	result, err := endgame.Solve(ctx, req.State, req.Us, req.Turn,
		endgame.PossibleMap(req.Possible), strategy, req.Config())
	resp.Action = result.Action
	resp.Winrate = result.Winrate
	if err == nil {
		return resp
	}

	resp.Message = err.Error()
	switch {
	case endgame.IsUnsolved(err):
		resp.Failure = Unsolved
	case errors.Cause(err) == endgame.ErrUnwinnable:
		resp.Failure = Unwinnable
	default:
		resp.Failure = Invalid
	}
	glog.V(1).Infof("Request %v failed: %v", req.ID, err)
	return resp
}
