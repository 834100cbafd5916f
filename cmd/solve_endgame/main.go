// Solve endgame positions saved by write_endgame and log the best action for each.
package main

import (
	"context"
	"flag"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/golang/glog"

	"github.com/will-hanabi-bot/endgame/worker"
)

func main() {
	timeout := flag.Duration("timeout", 0, "Override the time budget of each request")
	maxUnseen := flag.Int("max_unseen", -1, "Override the number of entirely unseen identities allowed")
	cacheSize := flag.Int("cache_size", 0, "Override the size of each memoization cache")
	strategy := flag.String("strategy", "", "Override the strategy of each request")
	numWorkers := flag.Int("workers", runtime.NumCPU(), "Number of requests to solve in parallel")
	output := flag.String("output", "", "Directory to save responses to")
	pprofAddr := flag.String("pprof_addr", "localhost:4123", "Address to serve pprof and expvar on")
	flag.Parse()

	go http.ListenAndServe(*pprofAddr, nil)

	var reqs []*worker.Request
	for _, filename := range flag.Args() {
		req := mustLoadRequest(filename)
		if *timeout > 0 {
			req.Timeout = *timeout
		}
		if *maxUnseen >= 0 {
			req.MaxUnseen = *maxUnseen
		}
		if *cacheSize > 0 {
			req.CacheSize = *cacheSize
		}
		if *strategy != "" {
			req.Strategy = *strategy
		}
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 {
		glog.Fatalf("No request files given. Known strategies: %v", worker.StrategyNames())
	}

	pool := worker.NewPool(context.Background(), *numWorkers)
	start := time.Now()
	resps, err := pool.SubmitAll(context.Background(), reqs)
	if err != nil {
		glog.Fatal(err)
	}
	if err := pool.Close(); err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Solved %d requests in %v", len(resps), time.Since(start))

	for i, resp := range resps {
		glog.Infof("%s: %v", flag.Arg(i), resp)
		if *output != "" {
			mustSaveResponse(resp, filepath.Join(*output, resp.ID.String()+".gz"))
		}
	}
}

func mustLoadRequest(filename string) *worker.Request {
	glog.V(1).Infof("Loading request from: %v", filename)
	f, err := os.Open(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	req, err := worker.ReadRequest(f)
	if err != nil {
		glog.Fatal(err)
	}
	return req
}

func mustSaveResponse(resp worker.Response, filename string) {
	glog.V(1).Infof("Saving response to: %v", filename)
	f, err := os.Create(filename)
	if err != nil {
		glog.Fatal(err)
	}
	defer f.Close()

	if err := worker.WriteResponse(f, resp); err != nil {
		glog.Fatal(err)
	}
}
