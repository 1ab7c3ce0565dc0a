package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warehouse-print-agent/internal/models"
	"warehouse-print-agent/internal/printing"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestHub_SnapshotOnConnect(t *testing.T) {
	history := printing.NewHistory(10)
	history.Add(models.JobRecord{ID: "a", Status: models.StatusCompleted, Printer: "Zebra_ZD420"})
	hub := NewHub(history, zap.NewNop())

	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	var records []models.JobRecord
	require.NoError(t, conn.ReadJSON(&records))
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}

func TestHub_BroadcastReachesConnectedClient(t *testing.T) {
	history := printing.NewHistory(10)
	hub := NewHub(history, zap.NewNop())
	history.SetOnUpdate(hub.Broadcast)

	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.NoError(t, err)
	defer conn.Close()

	var snapshot []models.JobRecord
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Empty(t, snapshot)

	history.Add(models.JobRecord{ID: "job-1", Status: models.StatusPrinting})

	var update []models.JobRecord
	require.NoError(t, conn.ReadJSON(&update))
	require.Len(t, update, 1)
	assert.Equal(t, "job-1", update[0].ID)
}

// Clients connect while jobs are finishing; the initial snapshot and the
// broadcasts must never write to the same conn at the same time.
func TestHub_ConnectDuringBroadcastStorm(t *testing.T) {
	history := printing.NewHistory(10)
	hub := NewHub(history, zap.NewNop())
	history.SetOnUpdate(hub.Broadcast)

	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	done := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					history.Add(models.JobRecord{ID: "x", Status: models.StatusCompleted})
				}
			}
		}()
	}

	for i := 0; i < 20; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
		require.NoError(t, err)

		var records []models.JobRecord
		require.NoError(t, conn.ReadJSON(&records), "snapshot must arrive intact")
		conn.Close()
	}

	close(done)
	wg.Wait()
}
