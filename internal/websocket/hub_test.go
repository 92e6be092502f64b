package websocket

import (
	"encoding/json"
	"testing"
)

func dashboardClient(userID, role string) *Client {
	return &Client{
		UserID:   userID,
		UserRole: role,
		send:     make(chan []byte, 4),
	}
}

func TestBroadcastAllReachesEveryRole(t *testing.T) {
	h := NewHub()
	admin := dashboardClient("user-1", "admin")
	ops := dashboardClient("user-2", "operations")
	h.clients[admin.UserID] = admin
	h.clients[ops.UserID] = ops

	h.BroadcastAll(map[string]interface{}{
		"type": "fleet_status_update",
	})

	for _, c := range []*Client{admin, ops} {
		select {
		case raw := <-c.send:
			var msg map[string]interface{}
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("client %s received invalid JSON: %v", c.UserID, err)
			}
			if msg["type"] != "fleet_status_update" {
				t.Errorf("client %s got type %v", c.UserID, msg["type"])
			}
		default:
			t.Errorf("client %s (%s) did not receive the broadcast", c.UserID, c.UserRole)
		}
	}
}

func TestBroadcastAllSkipsFullBuffers(t *testing.T) {
	h := NewHub()
	stuck := &Client{UserID: "user-3", UserRole: "operations", send: make(chan []byte)}
	healthy := dashboardClient("user-4", "admin")
	h.clients[stuck.UserID] = stuck
	h.clients[healthy.UserID] = healthy

	// Must not block on the client with no buffer space
	h.BroadcastAll(map[string]interface{}{"type": "fleet_status_update"})

	select {
	case <-healthy.send:
	default:
		t.Error("healthy client did not receive the broadcast")
	}
}
