package network

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/automoto/netsync/shared/gamemath"
	"github.com/automoto/netsync/shared/messages"
	"github.com/automoto/netsync/shared/netconfig"
)

type recordSink struct {
	pos map[netconfig.EntityID]gamemath.Vec3
}

func newRecordSink() *recordSink {
	return &recordSink{pos: make(map[netconfig.EntityID]gamemath.Vec3)}
}

func (r *recordSink) SetPosition(id netconfig.EntityID, x, y, z float32) {
	r.pos[id] = gamemath.Vec3{X: x, Y: y, Z: z}
}

type lifecycleRecorder struct {
	events []string
}

func (l *lifecycleRecorder) EntityAppeared(id netconfig.EntityID) {
	l.events = append(l.events, fmt.Sprintf("+%d", id))
}

func (l *lifecycleRecorder) EntityDisappeared(id netconfig.EntityID) {
	l.events = append(l.events, fmt.Sprintf("-%d", id))
}

type fakeSender struct {
	sent []messages.Input
	err  error
}

func (f *fakeSender) SendInput(in messages.Input) error {
	f.sent = append(f.sent, in)
	return f.err
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) set(ms int64) { c.now = time.UnixMilli(ms) }

type fixedResolver struct {
	calls int
	out   gamemath.Vec3
}

func (f *fixedResolver) Resolve(pos, vel gamemath.Vec3, dt float32) gamemath.Vec3 {
	f.calls++
	return f.out
}

func ent(id netconfig.EntityID, x, y, z float32) messages.EntityState {
	return messages.EntityState{ID: id, X: x, Y: y, Z: z}
}

func snap(t int64, ents ...messages.EntityState) messages.Snapshot {
	return messages.Snapshot{T: t, Entities: ents}
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func newTestSync() (*Sync, *fakeSender, *fakeClock) {
	clk := &fakeClock{}
	clk.set(10_000)
	sender := &fakeSender{}
	s := NewSync(SyncConfig{Sender: sender, Now: clk.Now})
	return s, sender, clk
}

func TestSnapshotBufferOrderingAndCapacity(t *testing.T) {
	b := NewSnapshotBuffer(4)
	for i := int64(1); i <= 10; i++ {
		b.Push(snap(i))
		if b.Len() > 4 {
			t.Fatalf("len %d exceeds capacity after push %d", b.Len(), i)
		}
	}
	all := b.All()
	want := []int64{7, 8, 9, 10}
	for i, s := range all {
		if s.T != want[i] {
			t.Fatalf("all[%d].T = %d, want %d", i, s.T, want[i])
		}
	}
	latest, ok := b.Latest()
	if !ok || latest.T != 10 {
		t.Fatalf("latest = %d, %v", latest.T, ok)
	}
}

func TestSnapshotBufferEqualTimeLatestWins(t *testing.T) {
	b := NewSnapshotBuffer(8)
	b.Push(snap(1, ent(1, 0, 0, 0)))
	b.Push(snap(2, ent(1, 1, 0, 0)))
	b.Push(snap(2, ent(1, 5, 0, 0)))
	if b.Len() != 2 {
		t.Fatalf("len = %d, want 2", b.Len())
	}
	if got := b.All()[1].Entities[0].X; got != 5 {
		t.Fatalf("x = %v, want 5", got)
	}
}

func TestSnapshotBufferInsertsOlderInOrder(t *testing.T) {
	b := NewSnapshotBuffer(8)
	b.Push(snap(1))
	b.Push(snap(3))
	b.Push(snap(2))
	var got []int64
	for _, s := range b.All() {
		got = append(got, s.T)
	}
	if !reflect.DeepEqual(got, []int64{1, 2, 3}) {
		t.Fatalf("order = %v", got)
	}
}

func TestSnapshotBufferDefaults(t *testing.T) {
	b := NewSnapshotBuffer(0)
	if b.Cap() != netconfig.DefaultMaxSnapshots {
		t.Fatalf("cap = %d", b.Cap())
	}
	if _, ok := b.Latest(); ok {
		t.Fatalf("empty buffer reported a latest snapshot")
	}
}

func TestClockSync(t *testing.T) {
	var c ClockSync
	if c.Synced() {
		t.Fatalf("fresh clock reports synced")
	}
	c.Update(1000, 1500)
	if c.Diff() != 500 {
		t.Fatalf("diff = %d", c.Diff())
	}
	if got := c.ToLocal(1100); got != 1600 {
		t.Fatalf("ToLocal = %d", got)
	}
	if got := c.ServerNow(1600); got != 1100 {
		t.Fatalf("ServerNow = %d", got)
	}
	c.Update(2000, 2300)
	if c.Diff() != 300 {
		t.Fatalf("last sample should win, diff = %d", c.Diff())
	}
}

func TestApplyInputPredictsAndQueues(t *testing.T) {
	s, sender, _ := newTestSync()
	s.OnSnapshot(snap(500, ent(1, 0, 0, 0)))

	if err := s.ApplyInput(messages.Input{T: 1000, AX: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	self, ok := s.Self()
	if !ok || self.X != 0.5 {
		t.Fatalf("self = %+v, %v; want x=0.5", self, ok)
	}
	if len(s.Pending()) != 1 || len(sender.sent) != 1 {
		t.Fatalf("pending=%d sent=%d", len(s.Pending()), len(sender.sent))
	}
}

func TestApplyInputBeforeSelfKnown(t *testing.T) {
	s, sender, _ := newTestSync()
	if err := s.ApplyInput(messages.Input{T: 1000, AX: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, ok := s.Self(); ok {
		t.Fatalf("self should be unknown")
	}
	if len(s.Pending()) != 1 || len(sender.sent) != 1 {
		t.Fatalf("input must still be queued and sent: pending=%d sent=%d", len(s.Pending()), len(sender.sent))
	}
}

func TestApplyInputRejectsOutOfOrder(t *testing.T) {
	s, sender, _ := newTestSync()
	s.OnSnapshot(snap(500, ent(1, 0, 0, 0)))

	if err := s.ApplyInput(messages.Input{T: 500}); !errors.Is(err, ErrInputOutOfOrder) {
		t.Fatalf("input at ack time: got %v", err)
	}
	if err := s.ApplyInput(messages.Input{T: 600}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := s.ApplyInput(messages.Input{T: 600}); !errors.Is(err, ErrInputOutOfOrder) {
		t.Fatalf("duplicate timestamp: got %v", err)
	}
	if len(s.Pending()) != 1 || len(sender.sent) != 1 {
		t.Fatalf("rejected inputs leaked: pending=%d sent=%d", len(s.Pending()), len(sender.sent))
	}
}

func TestApplyInputClampsAxes(t *testing.T) {
	s, _, _ := newTestSync()
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))

	if err := s.ApplyInput(messages.Input{T: 1000, AX: 5, AY: -3, AZ: 0.5}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	self, _ := s.Self()
	if self.X != 1 || self.Y != -1 || self.Z != 0.5 {
		t.Fatalf("self = %+v", self)
	}
	if in := s.Pending()[0]; in.AX != 1 || in.AY != -1 {
		t.Fatalf("queued input not clamped: %+v", in)
	}
}

func TestApplyInputSendFailureStillPredicts(t *testing.T) {
	s, sender, _ := newTestSync()
	sender.err = errors.New("offline")
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))

	if err := s.ApplyInput(messages.Input{T: 2000, AZ: 1}); err != nil {
		t.Fatalf("send failure must not surface: %v", err)
	}
	if self, _ := s.Self(); self.Z != 2 {
		t.Fatalf("self.Z = %v, want 2", self.Z)
	}
}

func TestApplyInputUsesResolver(t *testing.T) {
	clk := &fakeClock{}
	res := &fixedResolver{out: gamemath.Vec3{X: 7, Y: 1}}
	s := NewSync(SyncConfig{Resolver: res, Now: clk.Now})
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))

	if err := s.ApplyInput(messages.Input{T: 100, AX: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	self, _ := s.Self()
	if res.calls != 1 || self.X != 7 || self.Y != 1 {
		t.Fatalf("resolver not used: calls=%d self=%+v", res.calls, self)
	}
}

func TestOnSnapshotPrunesAcknowledged(t *testing.T) {
	s, _, _ := newTestSync()
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))
	for _, ts := range []int64{100, 200, 300} {
		if err := s.ApplyInput(messages.Input{T: ts, AX: 1}); err != nil {
			t.Fatalf("apply %d: %v", ts, err)
		}
	}

	s.OnSnapshot(snap(200, ent(1, 10, 0, 0)))

	for _, in := range s.Pending() {
		if in.T <= 200 {
			t.Fatalf("acknowledged input t=%d still queued", in.T)
		}
	}
	if len(s.Pending()) != 1 {
		t.Fatalf("pending = %d, want 1", len(s.Pending()))
	}
	self, _ := s.Self()
	if !approx(self.X, 10.1) {
		t.Fatalf("self.X = %v, want 10.1 (server 10 + replayed 0.1)", self.X)
	}
}

func TestOnSnapshotReplacesEntityTable(t *testing.T) {
	life := &lifecycleRecorder{}
	s := NewSync(SyncConfig{Lifecycle: life})
	s.SetSelfID(1)

	s.OnSnapshot(snap(100, ent(1, 0, 0, 0), ent(2, 0, 0, 0), ent(3, 0, 0, 0)))
	if s.EntityCount() != 3 {
		t.Fatalf("count = %d", s.EntityCount())
	}
	s.OnSnapshot(snap(200, ent(1, 0, 0, 0), ent(3, 1, 0, 0), ent(4, 0, 0, 0)))

	if _, ok := s.Entity(2); ok {
		t.Fatalf("stale entity 2 survived a full replace")
	}
	if e, ok := s.Entity(3); !ok || e.X != 1 {
		t.Fatalf("entity 3 = %+v, %v", e, ok)
	}
	want := []string{"+1", "+2", "+3", "-2", "+4"}
	if !reflect.DeepEqual(life.events, want) {
		t.Fatalf("lifecycle = %v, want %v", life.events, want)
	}
}

func TestSelfFromFirstEntityWithoutWelcome(t *testing.T) {
	s, _, _ := newTestSync()
	s.OnSnapshot(snap(100))
	if _, ok := s.SelfID(); ok {
		t.Fatalf("empty snapshot must not assign self")
	}
	s.OnSnapshot(snap(200, ent(3, 1, 0, 0), ent(7, 5, 0, 0)))
	if id, ok := s.SelfID(); !ok || id != 3 {
		t.Fatalf("self id = %d, %v; want 3", id, ok)
	}

	s.SetSelfID(7)
	self, ok := s.Self()
	if !ok || self.ID != 7 || self.X != 5 {
		t.Fatalf("welcome did not override guess: %+v, %v", self, ok)
	}
}

func TestWelcomeBeforeFirstSnapshot(t *testing.T) {
	s, _, _ := newTestSync()
	s.SetSelfID(7)
	if _, ok := s.Self(); ok {
		t.Fatalf("self state should be unknown until a snapshot arrives")
	}
	s.OnSnapshot(snap(100, ent(3, 1, 0, 0), ent(7, 5, 0, 0)))
	if id, _ := s.SelfID(); id != 7 {
		t.Fatalf("self id = %d, want 7", id)
	}
	if self, _ := s.Self(); self.X != 5 {
		t.Fatalf("self = %+v", self)
	}
}

func TestSelfMissingFromSnapshot(t *testing.T) {
	s, _, _ := newTestSync()
	s.SetSelfID(7)
	s.OnSnapshot(snap(100, ent(7, 5, 0, 0)))
	s.OnSnapshot(snap(200, ent(3, 1, 0, 0)))
	if _, ok := s.Self(); ok {
		t.Fatalf("self should be unknown while absent from the snapshot")
	}
	if err := s.ApplyInput(messages.Input{T: 300, AX: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	s.OnSnapshot(snap(250, ent(7, 2, 0, 0)))
	self, ok := s.Self()
	if !ok || !approx(self.X, 2.05) {
		t.Fatalf("self = %+v, %v; want x=2.05 after replay", self, ok)
	}
}

func TestReplayDeterminism(t *testing.T) {
	run := func() messages.EntityState {
		s, _, _ := newTestSync()
		s.OnSnapshot(snap(0, ent(1, 0.3, 1.7, -2.9)))
		inputs := []messages.Input{
			{T: 16, AX: 0.7, AY: -0.2, AZ: 1},
			{T: 49, AX: -1, AY: 0.33, AZ: 0.1},
			{T: 83, AX: 0.25, AY: 0, AZ: -0.75},
			{T: 121, AX: 1, AY: 1, AZ: 1},
		}
		for _, in := range inputs {
			if err := s.ApplyInput(in); err != nil {
				t.Fatalf("apply: %v", err)
			}
		}
		s.OnSnapshot(snap(50, ent(1, 0.31, 1.69, -2.88), ent(2, 4, 4, 4)))
		self, _ := s.Self()
		return self
	}

	a, b := run(), run()
	if a != b {
		t.Fatalf("replay not deterministic: %+v vs %+v", a, b)
	}
}

func TestDuplicateSnapshotIsIdempotent(t *testing.T) {
	life := &lifecycleRecorder{}
	clk := &fakeClock{}
	s := NewSync(SyncConfig{Lifecycle: life, Now: clk.Now})
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0), ent(2, 1, 1, 1)))
	for _, ts := range []int64{40, 80, 120} {
		if err := s.ApplyInput(messages.Input{T: ts, AX: 1, AZ: -0.5}); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	s1 := snap(60, ent(1, 0.05, 0, -0.02), ent(2, 1.5, 1, 1), ent(3, 9, 9, 9))
	s.OnSnapshot(s1)
	self1, _ := s.Self()
	pending1 := append([]messages.Input(nil), s.Pending()...)
	events1 := len(life.events)

	s.OnSnapshot(s1)
	self2, _ := s.Self()

	if self1 != self2 {
		t.Fatalf("self changed on duplicate delivery: %+v -> %+v", self1, self2)
	}
	if !reflect.DeepEqual(pending1, s.Pending()) {
		t.Fatalf("pending changed on duplicate delivery")
	}
	if len(life.events) != events1 {
		t.Fatalf("duplicate delivery produced lifecycle churn: %v", life.events[events1:])
	}
	if s.EntityCount() != 3 || s.Snapshots().Len() != 2 {
		t.Fatalf("table=%d buffer=%d", s.EntityCount(), s.Snapshots().Len())
	}
}

func TestOlderSnapshotDropped(t *testing.T) {
	s, _, _ := newTestSync()
	s.OnSnapshot(snap(200, ent(1, 2, 0, 0)))
	s.OnSnapshot(snap(100, ent(1, 1, 0, 0)))
	if s.LastAck() != 200 {
		t.Fatalf("last ack = %d, want 200", s.LastAck())
	}
	if e, _ := s.Entity(1); e.X != 2 {
		t.Fatalf("older snapshot overwrote table: %+v", e)
	}
}

func TestEndToEndReconcileKeepsPrediction(t *testing.T) {
	s, sender, _ := newTestSync()
	s.OnSnapshot(snap(500, ent(1, 0, 0, 0)))

	if err := s.ApplyInput(messages.Input{T: 1000, AX: 1, AY: 0, AZ: 0}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	predicted, _ := s.Self()
	if predicted.X != 0.5 {
		t.Fatalf("predicted x = %v, want 0.5", predicted.X)
	}

	// The server has not processed the input yet and re-sends the baseline.
	s.OnSnapshot(snap(500, ent(1, 0, 0, 0)))
	got, _ := s.Self()
	if got.X != predicted.X {
		t.Fatalf("reconcile snapped back: x = %v, want %v", got.X, predicted.X)
	}

	// The server catches up and acknowledges the input.
	s.OnSnapshot(snap(1000, ent(1, 0.5, 0, 0)))
	got, _ = s.Self()
	if got.X != 0.5 || len(s.Pending()) != 0 {
		t.Fatalf("after ack: x = %v pending = %d", got.X, len(s.Pending()))
	}
	if len(sender.sent) != 1 || sender.sent[0].T != 1000 {
		t.Fatalf("sent = %+v", sender.sent)
	}
}

func TestStampInput(t *testing.T) {
	s, _, clk := newTestSync()
	clk.set(1000)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))
	clk.set(1100)
	s.OnSnapshot(snap(100, ent(1, 0, 0, 0)))

	clk.set(1150)
	in := s.StampInput(1, 0, 0)
	if in.T != 150 {
		t.Fatalf("stamp = %d, want 150", in.T)
	}
	if err := s.ApplyInput(in); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if next := s.StampInput(0, 0, 0); next.T != 151 {
		t.Fatalf("second stamp = %d, want 151", next.T)
	}
}

func interpFixture(t *testing.T) *Sync {
	t.Helper()
	s, _, _ := newTestSync()
	s.SetSelfID(99)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))
	s.OnSnapshot(snap(100, ent(1, 10, 0, 0)))
	return s
}

func TestInterpolateAt(t *testing.T) {
	cases := []struct {
		name       string
		renderTime int64
		want       float32
	}{
		{"midpoint", 50, 5},
		{"at prev", 0, 0},
		{"at next", 100, 10},
		{"before buffer clamps", -50, 0},
		{"past newest clamps", 150, 10},
		{"stale freezes", 400, 10},
	}
	for _, c := range cases {
		s := interpFixture(t)
		sink := newRecordSink()
		s.InterpolateAt(c.renderTime, sink)
		got, ok := sink.pos[1]
		if !ok {
			t.Fatalf("%s: no position emitted", c.name)
		}
		if got.X != c.want {
			t.Errorf("%s: x = %v, want %v", c.name, got.X, c.want)
		}
	}
}

func TestInterpolateNeedsTwoSnapshots(t *testing.T) {
	s, _, _ := newTestSync()
	s.SetSelfID(99)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))
	sink := newRecordSink()
	s.InterpolateAt(0, sink)
	if len(sink.pos) != 0 {
		t.Fatalf("emitted %v with one snapshot", sink.pos)
	}
}

func TestInterpolateSkipsNewEntities(t *testing.T) {
	s, _, _ := newTestSync()
	s.SetSelfID(99)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))
	s.OnSnapshot(snap(100, ent(1, 10, 0, 0), ent(2, 3, 3, 3)))

	sink := newRecordSink()
	s.InterpolateAt(50, sink)
	if _, ok := sink.pos[2]; ok {
		t.Fatalf("entity 2 exists only in the newer snapshot and must be skipped")
	}
	if got := sink.pos[1]; got.X != 5 {
		t.Fatalf("entity 1 x = %v", got.X)
	}
}

func TestInterpolateBracketsInsideHistory(t *testing.T) {
	s, _, _ := newTestSync()
	s.SetSelfID(99)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0)))
	s.OnSnapshot(snap(100, ent(1, 10, 20, 0)))
	s.OnSnapshot(snap(200, ent(1, 30, 20, -8)))

	sink := newRecordSink()
	s.InterpolateAt(150, sink)
	want := gamemath.Vec3{X: 20, Y: 20, Z: -4}
	if got := sink.pos[1]; got != want {
		t.Fatalf("pos = %+v, want %+v", got, want)
	}
}

func TestInterpolateExcludesSelf(t *testing.T) {
	s, _, _ := newTestSync()
	s.SetSelfID(1)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0), ent(2, 0, 0, 0)))
	s.OnSnapshot(snap(100, ent(1, 10, 0, 0), ent(2, 10, 0, 0)))

	for _, rt := range []int64{50, 1000} {
		sink := newRecordSink()
		s.InterpolateAt(rt, sink)
		if _, ok := sink.pos[1]; ok {
			t.Fatalf("render time %d: local actor must not be interpolated", rt)
		}
		if _, ok := sink.pos[2]; !ok {
			t.Fatalf("render time %d: remote actor missing", rt)
		}
	}
}

func TestRenderEmitsPredictedSelfAndDelayedRemotes(t *testing.T) {
	s, _, clk := newTestSync()
	s.SetSelfID(99)
	clk.set(1000)
	s.OnSnapshot(snap(0, ent(1, 0, 0, 0), ent(99, 3, 0, 0)))
	clk.set(1100)
	s.OnSnapshot(snap(100, ent(1, 10, 0, 0), ent(99, 3, 0, 0)))

	clk.set(1150)
	if rt := s.RenderTime(); rt != 50 {
		t.Fatalf("render time = %d, want 50", rt)
	}
	sink := newRecordSink()
	s.Render(sink)
	if got := sink.pos[1]; got.X != 5 {
		t.Fatalf("remote x = %v, want 5", got.X)
	}
	if got := sink.pos[99]; got.X != 3 {
		t.Fatalf("self x = %v, want 3", got.X)
	}
}

func TestResetStartsFreshSession(t *testing.T) {
	life := &lifecycleRecorder{}
	clk := &fakeClock{}
	clk.set(60_000)
	s := NewSync(SyncConfig{Lifecycle: life, Now: clk.Now})
	s.OnSnapshot(snap(50_000, ent(1, 4, 0, 0), ent(2, 0, 0, 0)))
	if err := s.ApplyInput(messages.Input{T: 50_100, AX: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	s.Reset()
	if s.LastAck() != 0 || s.EntityCount() != 0 || s.Snapshots().Len() != 0 || s.Clock().Synced() {
		t.Fatalf("session state survived reset: ack=%d table=%d buffer=%d", s.LastAck(), s.EntityCount(), s.Snapshots().Len())
	}
	if _, ok := s.SelfID(); ok {
		t.Fatalf("self id survived reset")
	}
	if p := s.Pending(); len(p) != 1 || p[0].T != 60_100 {
		t.Fatalf("pending = %+v, want one input moved to local t=60100", p)
	}

	// The new server's clock starts over.
	for ts := int64(100); ts <= 1000; ts += 100 {
		clk.set(60_100 + ts)
		s.OnSnapshot(snap(ts, ent(1, 0, 0, 0), ent(3, 1, 1, 1)))
	}
	if s.LastAck() != 1000 {
		t.Fatalf("last ack = %d, want 1000", s.LastAck())
	}
	if _, ok := s.Entity(3); !ok {
		t.Fatalf("entity 3 of the new session missing")
	}
	self, ok := s.Self()
	if !ok || self.X != 0 || len(s.Pending()) != 0 {
		t.Fatalf("self = %+v, %v pending = %d; want x=0 and nothing pending", self, ok, len(s.Pending()))
	}
	want := []string{"+1", "+2", "-1", "-2", "+1", "+3"}
	if !reflect.DeepEqual(life.events, want) {
		t.Fatalf("lifecycle = %v, want %v", life.events, want)
	}
}

func TestInputBeforeClockSyncDoesNotJump(t *testing.T) {
	// Local clock runs 10s ahead of the server.
	s, _, clk := newTestSync()
	clk.set(20_000)
	if err := s.ApplyInput(s.StampInput(1, 0, 0)); err != nil {
		t.Fatalf("apply: %v", err)
	}

	clk.set(20_050)
	s.OnSnapshot(snap(10_040, ent(1, 0, 0, 0)))

	self, ok := s.Self()
	if !ok || self.X != 0 {
		t.Fatalf("self = %+v, %v; want x=0", self, ok)
	}
	if len(s.Pending()) != 0 {
		t.Fatalf("pending = %+v, want the early input re-based and acknowledged", s.Pending())
	}
}

func TestInputBeforeClockSyncIsRebased(t *testing.T) {
	s, _, clk := newTestSync()
	clk.set(20_000)
	if err := s.ApplyInput(messages.Input{T: 25_000, AX: 1}); err != nil {
		t.Fatalf("apply: %v", err)
	}

	s.OnSnapshot(snap(10_000, ent(1, 0, 0, 0)))

	p := s.Pending()
	if len(p) != 1 || p[0].T != 15_000 {
		t.Fatalf("pending = %+v, want t=15000 on the server clock", p)
	}
	if self, _ := s.Self(); !approx(self.X, 5) {
		t.Fatalf("self.X = %v, want 5", self.X)
	}
}
