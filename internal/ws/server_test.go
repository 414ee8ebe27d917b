package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propdastak/internal/domain"
	"propdastak/pkg/logger"
)

// capturedSession is what the fake recorder observes at connection close.
type capturedSession struct {
	propertyID string
	userID     string
	startTime  time.Time
	endTime    time.Time
}

// fakeRecorder collects finalized sessions and signals each arrival.
type fakeRecorder struct {
	mu       sync.Mutex
	sessions []capturedSession
	arrived  chan struct{}
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{arrived: make(chan struct{}, 64)}
}

func (f *fakeRecorder) RecordClose(session *domain.ViewSession, endTime time.Time) {
	f.mu.Lock()
	f.sessions = append(f.sessions, capturedSession{
		propertyID: session.PropertyID(),
		userID:     session.UserID(),
		startTime:  session.StartTime(),
		endTime:    endTime,
	})
	f.mu.Unlock()
	f.arrived <- struct{}{}
}

func (f *fakeRecorder) captured() []capturedSession {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]capturedSession, len(f.sessions))
	copy(out, f.sessions)
	return out
}

func newTestServer(t *testing.T) (*Server, *fakeRecorder, string) {
	t.Helper()
	log, err := logger.New("error")
	require.NoError(t, err)

	recorder := newFakeRecorder()
	s := NewServer("0", recorder, log)

	ts := httptest.NewServer(http.HandlerFunc(s.handleConnection))
	t.Cleanup(ts.Close)

	return s, recorder, "ws" + strings.TrimPrefix(ts.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func waitForSession(t *testing.T, recorder *fakeRecorder) capturedSession {
	t.Helper()
	select {
	case <-recorder.arrived:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session to be recorded")
	}
	sessions := recorder.captured()
	return sessions[len(sessions)-1]
}

func TestServer_RecordsSessionOnClose(t *testing.T) {
	_, recorder, url := newTestServer(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(map[string]string{"propertyId": "42", "userId": "user-7"}))
	require.NoError(t, conn.Close())

	got := waitForSession(t, recorder)
	assert.Equal(t, "42", got.propertyID)
	assert.Equal(t, "user-7", got.userID)
	assert.False(t, got.startTime.IsZero())
	assert.False(t, got.endTime.Before(got.startTime))
}

func TestServer_LastWriteWins(t *testing.T) {
	_, recorder, url := newTestServer(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(map[string]string{"propertyId": "1"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"propertyId": "2", "userId": "user-a"}))
	require.NoError(t, conn.WriteJSON(map[string]string{"userId": "user-b"}))
	require.NoError(t, conn.Close())

	got := waitForSession(t, recorder)
	assert.Equal(t, "2", got.propertyID)
	assert.Equal(t, "user-b", got.userID)
}

func TestServer_MalformedMessageAckedAndConnectionSurvives(t *testing.T) {
	_, recorder, url := newTestServer(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ack map[string]string
	require.NoError(t, json.Unmarshal(data, &ack))
	assert.Equal(t, "invalid_json", ack["error"])

	// Messages after the malformed one still apply.
	require.NoError(t, conn.WriteJSON(map[string]string{"propertyId": "42"}))
	require.NoError(t, conn.Close())

	got := waitForSession(t, recorder)
	assert.Equal(t, "42", got.propertyID)
}

func TestServer_WrongTypedFieldsIgnored(t *testing.T) {
	_, recorder, url := newTestServer(t)

	conn := dial(t, url)
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"propertyId": "42"}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"propertyId": 99, "userId": true}))
	require.NoError(t, conn.Close())

	got := waitForSession(t, recorder)
	assert.Equal(t, "42", got.propertyID)
	assert.Equal(t, "", got.userID)
}

func TestServer_EmptySessionStillReachesRecorder(t *testing.T) {
	_, recorder, url := newTestServer(t)

	conn := dial(t, url)
	require.NoError(t, conn.Close())

	got := waitForSession(t, recorder)
	assert.Equal(t, "", got.propertyID)
	assert.Equal(t, "", got.userID)
}

func TestServer_ConcurrentConnectionsAreIndependent(t *testing.T) {
	_, recorder, url := newTestServer(t)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if !assert.NoError(t, err) {
				return
			}
			assert.NoError(t, conn.WriteJSON(map[string]string{"propertyId": "42"}))
			assert.NoError(t, conn.Close())
		}(i)
	}
	wg.Wait()

	deadline := time.After(3 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-recorder.arrived:
		case <-deadline:
			t.Fatalf("only %d of %d sessions recorded", i, n)
		}
	}

	for _, got := range recorder.captured() {
		assert.Equal(t, "42", got.propertyID)
	}
}
