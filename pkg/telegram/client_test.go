package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tg-relay/pkg/domain"
)

// fakeAPI records calls to the bot API and serves scripted responses
type fakeAPI struct {
	t  *testing.T
	mu sync.Mutex

	calls   []apiCall
	updates [][]update // each getUpdates call pops the next batch
}

type apiCall struct {
	method  string
	payload map[string]any
}

func (f *fakeAPI) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		parts := strings.Split(r.URL.Path, "/")
		method := parts[len(parts)-1]

		var payload map[string]any
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&payload))
		f.calls = append(f.calls, apiCall{method: method, payload: payload})

		switch method {
		case "getMe":
			fmt.Fprint(w, `{"ok":true,"result":{"username":"relay_bot"}}`)
		case "getUpdates":
			batch := []update{}
			if len(f.updates) > 0 {
				batch, f.updates = f.updates[0], f.updates[1:]
			}
			res, err := json.Marshal(batch)
			require.NoError(f.t, err)
			fmt.Fprintf(w, `{"ok":true,"result":%s}`, res)
		case "getChat":
			fmt.Fprint(w, `{"ok":true,"result":{"id":-100111,"type":"channel","title":"Deals"}}`)
		default:
			fmt.Fprint(w, `{"ok":true,"result":true}`)
		}
	}
}

func (f *fakeAPI) recorded(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var res []apiCall
	for _, c := range f.calls {
		if c.method == method {
			res = append(res, c)
		}
	}
	return res
}

func newTestClient(t *testing.T, api *fakeAPI) *Client {
	ts := httptest.NewServer(api.handler())
	t.Cleanup(ts.Close)
	return New(Params{Token: "test-token", APIURL: ts.URL, Timeout: time.Second, PollTimeout: 10 * time.Millisecond})
}

// collector implements Handler
type collector struct {
	mu    sync.Mutex
	msgs  []domain.Message
	posts []domain.Message
}

func (c *collector) OnMessage(_ context.Context, msg domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func (c *collector) OnChannelPost(_ context.Context, post domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = append(c.posts, post)
}

func (c *collector) counts() (msgs, posts int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.msgs), len(c.posts)
}

func TestClient_Self(t *testing.T) {
	api := &fakeAPI{t: t}
	client := newTestClient(t, api)

	name, err := client.Self(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "relay_bot", name)

	calls := api.recorded("getMe")
	require.Len(t, calls, 1)
}

func TestClient_SelfBadToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"ok":false,"description":"Unauthorized","error_code":401}`)
	}))
	defer ts.Close()

	client := New(Params{Token: "bad", APIURL: ts.URL, Timeout: time.Second})
	_, err := client.Self(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
	assert.Contains(t, err.Error(), "401")
}

func TestClient_TokenInURLNotLogged(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"ok":true,"result":{"username":"relay_bot"}}`)
	}))
	defer ts.Close()

	client := New(Params{Token: "secret-token", APIURL: ts.URL})
	_, err := client.Self(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/botsecret-token/getMe", gotPath)
}

func TestClient_ListenDispatch(t *testing.T) {
	api := &fakeAPI{t: t, updates: [][]update{
		{
			{UpdateID: 10, Message: &message{
				MessageID: 1,
				From:      &user{Username: "alice"},
				Chat:      chat{ID: 42, Type: "private"},
				Text:      "/help",
			}},
			{UpdateID: 11, ChannelPost: &message{
				MessageID: 7,
				Chat:      chat{ID: -100111, Type: "channel", Title: "Deals"},
				Text:      "breaking news",
			}},
		},
	}}
	client := newTestClient(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h := &collector{}
	done := make(chan struct{})
	go func() {
		assert.NoError(t, client.Listen(ctx, h))
		close(done)
	}()

	assert.Eventually(t, func() bool {
		msgs, posts := h.counts()
		return msgs == 1 && posts == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	<-done

	assert.Equal(t, domain.Message{MessageID: 1, ChatID: 42, From: "alice", Text: "/help"}, h.msgs[0])
	assert.Equal(t, domain.Message{MessageID: 7, ChatID: -100111, Text: "breaking news"}, h.posts[0])

	// subsequent polls acked past the last update
	polls := api.recorded("getUpdates")
	require.GreaterOrEqual(t, len(polls), 2)
	last := polls[len(polls)-1]
	assert.Equal(t, float64(12), last.payload["offset"])
}

func TestClient_ListenStopsOnCancel(t *testing.T) {
	api := &fakeAPI{t: t}
	client := newTestClient(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		assert.NoError(t, client.Listen(ctx, &collector{}))
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop on context cancel")
	}
}

func TestClient_Reply(t *testing.T) {
	api := &fakeAPI{t: t}
	client := newTestClient(t, api)

	require.NoError(t, client.Reply(context.Background(), 42, "done"))

	calls := api.recorded("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, float64(42), calls[0].payload["chat_id"])
	assert.Equal(t, "done", calls[0].payload["text"])
}

func TestClient_SendMessage(t *testing.T) {
	api := &fakeAPI{t: t}
	client := newTestClient(t, api)

	require.NoError(t, client.SendMessage(context.Background(), "-100222", "hello"))

	calls := api.recorded("sendMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "-100222", calls[0].payload["chat_id"])
	assert.Equal(t, "hello", calls[0].payload["text"])
}

func TestClient_ForwardMessage(t *testing.T) {
	api := &fakeAPI{t: t}
	client := newTestClient(t, api)

	require.NoError(t, client.ForwardMessage(context.Background(), "-100222", "-100111", 7))

	calls := api.recorded("forwardMessage")
	require.Len(t, calls, 1)
	assert.Equal(t, "-100222", calls[0].payload["chat_id"])
	assert.Equal(t, "-100111", calls[0].payload["from_chat_id"])
	assert.Equal(t, float64(7), calls[0].payload["message_id"])
}

func TestClient_ChannelTitle(t *testing.T) {
	api := &fakeAPI{t: t}
	client := newTestClient(t, api)

	title, err := client.ChannelTitle(context.Background(), "-100111")
	require.NoError(t, err)
	assert.Equal(t, "Deals", title)

	calls := api.recorded("getChat")
	require.Len(t, calls, 1)
	assert.Equal(t, "-100111", calls[0].payload["chat_id"])
}

func TestClient_ChannelTitleNotAccessible(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"ok":false,"description":"Bad Request: chat not found","error_code":400}`)
	}))
	defer ts.Close()

	client := New(Params{Token: "test", APIURL: ts.URL})
	_, err := client.ChannelTitle(context.Background(), "-100999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}
