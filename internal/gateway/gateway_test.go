package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mcdev12/courtside/internal/events"
	"github.com/mcdev12/courtside/internal/league"
	"github.com/mcdev12/courtside/internal/models"
	"github.com/mcdev12/courtside/internal/player"
	"github.com/mcdev12/courtside/internal/state"
	"github.com/mcdev12/courtside/internal/state/statetest"
	"github.com/mcdev12/courtside/internal/store"
)

type fakeService struct {
	t      *testing.T
	stored map[uuid.UUID]*state.League
	closed int
}

func newFakeService(t *testing.T) *fakeService {
	return &fakeService{t: t, stored: map[uuid.UUID]*state.League{}}
}

func (f *fakeService) Create(_ context.Context, opts league.CreateOptions) (*state.League, error) {
	ls := statetest.NewLeague(f.t, 11)
	g := ls.G()
	g.LeagueName = opts.Name
	if opts.TID >= 0 {
		g.UserTID = opts.TID
		g.UserTIDs = []int{opts.TID}
	}
	if opts.StartingSeason > 0 {
		g.Season = opts.StartingSeason
		g.StartingSeason = opts.StartingSeason
	}
	f.stored[ls.ID] = ls
	return ls, nil
}

func (f *fakeService) Open(_ context.Context, id uuid.UUID) (*state.League, error) {
	ls, ok := f.stored[id]
	if !ok {
		return nil, store.ErrLeagueNotFound
	}
	return ls, nil
}

func (f *fakeService) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.stored[id]; !ok {
		return store.ErrLeagueNotFound
	}
	delete(f.stored, id)
	return nil
}

func (f *fakeService) Leagues(context.Context) ([]store.LeagueMeta, error) {
	var out []store.LeagueMeta
	for id, ls := range f.stored {
		out = append(out, store.LeagueMeta{ID: id, Name: ls.G().LeagueName})
	}
	return out, nil
}

func (f *fakeService) Close(_ context.Context, ls *state.League) error {
	ls.Cache.StopAutoFlush()
	f.closed++
	return nil
}

type captureNotifier struct {
	mu  sync.Mutex
	got [][]events.UpdateEvent
}

func (c *captureNotifier) PublishUpdates(_ uuid.UUID, evs []events.UpdateEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.got = append(c.got, evs)
	return nil
}

func (c *captureNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.got)
}

func newTestGateway(t *testing.T) (*Gateway, *fakeService, *captureNotifier) {
	t.Helper()
	fs := newFakeService(t)
	cn := &captureNotifier{}
	gw := New(fs, cn, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	gw.Start(ctx)
	return gw, fs, cn
}

func attach(t *testing.T, gw *Gateway, fs *fakeService) *state.League {
	t.Helper()
	ls, err := fs.Create(context.Background(), league.CreateOptions{Name: "Test", TID: 0, StartingSeason: 2026})
	if err != nil {
		t.Fatal(err)
	}
	gw.mu.Lock()
	gw.attachLocked(ls)
	gw.mu.Unlock()
	return ls
}

func TestRunCommandRequiresOpenLeague(t *testing.T) {
	gw, _, _ := newTestGateway(t)

	_, err := gw.RunCommand(context.Background(), "autoSortRoster", nil)
	if !errors.Is(err, ErrNoLeagueOpen) {
		t.Fatalf("err = %v, want ErrNoLeagueOpen", err)
	}
}

func TestRunCommandUnknownName(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	attach(t, gw, fs)

	if _, err := gw.RunCommand(context.Background(), "nope", nil); err == nil {
		t.Fatal("unknown command accepted")
	}
}

func TestSetGodModePublishesUpdate(t *testing.T) {
	gw, fs, cn := newTestGateway(t)
	ls := attach(t, gw, fs)

	result, err := gw.RunCommand(context.Background(), "setGodMode", json.RawMessage(`{"enabled":true}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := result.(map[string]any)["godMode"]; got != true {
		t.Errorf("result godMode = %v", got)
	}
	g := ls.G()
	if !g.GodMode || !g.GodModeInPast {
		t.Errorf("godMode=%v godModeInPast=%v", g.GodMode, g.GodModeInPast)
	}
	if cn.count() != 1 {
		t.Errorf("notifier saw %d publishes, want 1", cn.count())
	}

	// Turning it off does not clear the historical marker.
	if _, err := gw.RunCommand(context.Background(), "setGodMode", json.RawMessage(`{"enabled":false}`)); err != nil {
		t.Fatal(err)
	}
	if g.GodMode || !g.GodModeInPast {
		t.Errorf("after disable: godMode=%v godModeInPast=%v", g.GodMode, g.GodModeInPast)
	}
}

func TestFreeAgencyDayCountsDown(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	ls := attach(t, gw, fs)
	g := ls.G()
	g.Phase = models.PhaseFreeAgency
	g.DaysLeft = 2

	fa := player.Generate(g, ls.Rand, models.SlotFreeAgent, 27, g.Season-8, false, 15)
	ls.Cache.Players.Add(fa)

	for want := 1; want >= 0; want-- {
		result, err := gw.RunCommand(context.Background(), "freeAgencyDay", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := result.(map[string]any)["daysLeft"]; got != want {
			t.Errorf("daysLeft = %v, want %d", got, want)
		}
	}

	_, err := gw.RunCommand(context.Background(), "freeAgencyDay", nil)
	if _, ok := isRejection(err); !ok {
		t.Fatalf("day past the deadline: err = %v, want rejection", err)
	}
}

func TestDraftSelectPlayerTurnOrder(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	ls := attach(t, gw, fs)
	g := ls.G()
	g.Phase = models.PhaseDraft

	prospect := player.Generate(g, ls.Rand, models.SlotUndrafted, 19, g.Season, false, 15)
	ls.Cache.Players.Add(prospect)
	ls.Cache.DraftPicks.Add(&models.DraftPick{
		TID: 1, OriginalTID: 1, Round: 1, Pick: 1, Season: strconv.Itoa(g.Season),
	})

	args, _ := json.Marshal(map[string]int{"pid": prospect.PID})
	_, err := gw.RunCommand(context.Background(), "draftSelectPlayer", args)
	if msg, ok := isRejection(err); !ok || !strings.Contains(msg, "not your turn") {
		t.Fatalf("picking on another team's turn: err = %v", err)
	}

	// Hand the pick to the user's team and it goes through.
	dp := ls.Cache.DraftPicks.All()[0]
	dp.TID = 0
	ls.Cache.DraftPicks.Put(dp)

	if _, err := gw.RunCommand(context.Background(), "draftSelectPlayer", args); err != nil {
		t.Fatal(err)
	}
	p, _ := ls.Cache.Players.Get(prospect.PID)
	if p.TID != models.RosterSlot(0) {
		t.Errorf("drafted player on %d, want team 0", p.TID)
	}
	if ls.Cache.DraftPicks.Len() != 0 {
		t.Error("pick not consumed")
	}
}

func TestCommandEndpointRejectionVsError(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	ls := attach(t, gw, fs)
	ls.G().Phase = models.PhaseResignPlayers

	srv := httptest.NewServer(gw.Router())
	defer srv.Close()

	// Signing an outside free agent during re-sign season is a refusal the UI
	// shows, not an internal failure.
	body := `{"command":"negotiationCreate","args":{"pid":0,"resigning":false}}`
	resp, err := http.Post(srv.URL+"/command", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var cr commandResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		t.Fatal(err)
	}
	if cr.Rejection == "" {
		t.Error("expected a rejection message")
	}

	resp2, err := http.Post(srv.URL+"/command", "application/json", bytes.NewBufferString(`{"command":"nope"}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusInternalServerError {
		t.Errorf("unknown command status = %d, want 500", resp2.StatusCode)
	}
}

func TestLeagueLifecycleRoutes(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	srv := httptest.NewServer(gw.Router())
	defer srv.Close()

	body := `{"name":"Route League","tid":2,"startingSeason":2026}`
	resp, err := http.Post(srv.URL+"/leagues", "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	var created struct {
		ID  uuid.UUID `json:"id"`
		TID int       `json:"tid"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if created.TID != 2 {
		t.Errorf("tid = %d, want 2", created.TID)
	}
	if gw.OpenLeague() == nil || gw.OpenLeague().ID != created.ID {
		t.Fatal("created league not attached")
	}

	listResp, err := http.Get(srv.URL + "/leagues")
	if err != nil {
		t.Fatal(err)
	}
	defer listResp.Body.Close()
	var metas []store.LeagueMeta
	if err := json.NewDecoder(listResp.Body).Decode(&metas); err != nil {
		t.Fatal(err)
	}
	if len(metas) != 1 || metas[0].Name != "Route League" {
		t.Errorf("list = %+v", metas)
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/leagues/"+created.ID.String(), nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp.Body.Close()
	if delResp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d", delResp.StatusCode)
	}
	if gw.OpenLeague() != nil {
		t.Error("deleted league still attached")
	}
	if len(fs.stored) != 0 {
		t.Error("league still in store")
	}

	delResp2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	delResp2.Body.Close()
	if delResp2.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", delResp2.StatusCode)
	}
}

func TestExportRouteReturnsLeagueFile(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	ls := attach(t, gw, fs)

	srv := httptest.NewServer(gw.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/leagues/" + ls.ID.String() + "/export")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var file models.LeagueFile
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		t.Fatal(err)
	}
	if file.Meta == nil || file.Meta.Name != "Test" {
		t.Errorf("meta = %+v", file.Meta)
	}
}

func TestWebSocketReceivesBroadcast(t *testing.T) {
	gw, fs, _ := newTestGateway(t)
	ls := attach(t, gw, fs)

	srv := httptest.NewServer(gw.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/leagues/" + ls.ID.String() + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// Registration races the broadcast; give the hub a beat to settle.
	time.Sleep(50 * time.Millisecond)
	gw.hub.BroadcastUpdates(ls.ID, []events.UpdateEvent{events.UpdateGameAttributes})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	var frame updateFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		t.Fatal(err)
	}
	if frame.Type != "updateEvents" || len(frame.Events) != 1 || frame.Events[0] != events.UpdateGameAttributes {
		t.Errorf("frame = %+v", frame)
	}
}
