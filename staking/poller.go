package staking

import (
	"context"
	"sync"
	"time"

	"github.com/AlexZinkM/staking-dashboard/internal/model"

	"github.com/gagliardetto/solana-go"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PollerOptions configures a Poller
type PollerOptions struct {
	Interval          time.Duration
	DefaultRewardRate decimal.Decimal
	Logger            *zap.Logger
}

// Poller refreshes the snapshot of one wallet on a fixed schedule.
// Overlapping refreshes are allowed and the last one to finish wins;
// results of refreshes started for an earlier wallet or before Stop are dropped.
type Poller struct {
	reader      Fetcher
	interval    time.Duration
	defaultRate decimal.Decimal
	log         *zap.Logger

	mu         sync.Mutex
	schedule   *cron.Cron
	wallet     solana.PublicKey
	active     bool
	generation uint64
	ctx        context.Context
	cancel     context.CancelFunc
	snapshot   model.Snapshot
	inFlight   int
	timers     map[int]*time.Timer
	subs       map[int]func(model.Snapshot)
	nextID     int
}

// NewPoller creates an idle poller holding the default snapshot
func NewPoller(reader Fetcher, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Poller{
		reader:      reader,
		interval:    opts.Interval,
		defaultRate: opts.DefaultRewardRate,
		log:         opts.Logger.Named("poller"),
		snapshot:    model.NewSnapshot(opts.DefaultRewardRate),
		timers:      make(map[int]*time.Timer),
		subs:        make(map[int]func(model.Snapshot)),
	}
}

// Start begins polling wallet: one fetch right away, then one per interval.
// Starting again with the same wallet is a no-op; a different wallet restarts.
func (p *Poller) Start(wallet solana.PublicKey) {
	p.mu.Lock()
	same := p.active && p.wallet.Equals(wallet)
	p.mu.Unlock()
	if same {
		return
	}
	p.Restart(wallet)
}

// Restart tears down the current schedule and polls wallet from a fresh snapshot
func (p *Poller) Restart(wallet solana.PublicKey) {
	p.mu.Lock()
	p.stopLocked()

	p.generation++
	gen := p.generation
	p.wallet = wallet
	p.active = true
	p.ctx, p.cancel = context.WithCancel(context.Background())

	snapshot := model.NewSnapshot(p.defaultRate)
	snapshot.WalletAddress = wallet.String()
	p.snapshot = snapshot

	p.schedule = cron.New()
	p.schedule.Schedule(cron.Every(p.interval), cron.FuncJob(func() { p.refresh(gen) }))
	p.schedule.Start()
	p.mu.Unlock()

	p.log.Info("polling started", zap.String("wallet", wallet.String()), zap.Duration("interval", p.interval))
	go p.refresh(gen)
}

// RefreshNow triggers one asynchronous refresh
func (p *Poller) RefreshNow() {
	p.mu.Lock()
	gen, active := p.generation, p.active
	p.mu.Unlock()

	if active {
		go p.refresh(gen)
	}
}

// RefreshAfter schedules one refresh after d; pending ones are dropped by Stop and Restart
func (p *Poller) RefreshAfter(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return
	}

	gen := p.generation
	id := p.nextID
	p.nextID++
	p.timers[id] = time.AfterFunc(d, func() {
		p.mu.Lock()
		delete(p.timers, id)
		p.mu.Unlock()
		p.refresh(gen)
	})
}

// Snapshot returns a copy of the latest snapshot
func (p *Poller) Snapshot() model.Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot.Clone()
}

// Fetching reports whether a refresh is in flight
func (p *Poller) Fetching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inFlight > 0
}

// Active reports whether the poller has a running schedule
func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Subscribe registers fn for every new snapshot and returns a function removing it
func (p *Poller) Subscribe(fn func(model.Snapshot)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, id)
	}
}

// Stop tears down the schedule and pending timers and abandons in-flight fetches.
// The last snapshot stays readable.
func (p *Poller) Stop() {
	p.mu.Lock()
	wasActive := p.active
	p.stopLocked()
	p.mu.Unlock()

	if wasActive {
		p.log.Info("polling stopped")
	}
}

func (p *Poller) stopLocked() {
	if !p.active {
		return
	}

	p.active = false
	p.generation++
	p.cancel()
	p.schedule.Stop()
	p.schedule = nil
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}

func (p *Poller) refresh(gen uint64) {
	p.mu.Lock()
	if !p.active || gen != p.generation {
		p.mu.Unlock()
		return
	}
	ctx, wallet, prev := p.ctx, p.wallet, p.snapshot.Clone()
	p.inFlight++
	p.mu.Unlock()

	next := p.reader.Fetch(ctx, wallet, prev)

	p.mu.Lock()
	p.inFlight--
	if !p.active || gen != p.generation {
		p.mu.Unlock()
		p.log.Debug("discarding stale refresh result", zap.String("wallet", wallet.String()))
		return
	}
	p.snapshot = next
	subs := make([]func(model.Snapshot), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(next.Clone())
	}
}
