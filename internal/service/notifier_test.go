package service

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"centrale-operativa/backend/config"
	"centrale-operativa/backend/internal/model"
)

func TestShiftNotifier_NoopWithoutWebhook(t *testing.T) {
	n := NewShiftNotifier(&config.DiscordConfig{}, zap.NewNop())
	if _, ok := n.(noopNotifier); !ok {
		t.Fatal("an empty webhook URL should yield the no-op notifier")
	}
	// Must not panic.
	n.ShiftCreated(&model.Shift{ModuleType: model.ModulePatrolActivation})
}

func TestShiftNotifier_DeliversEmbed(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewShiftNotifier(&config.DiscordConfig{
		ShiftWebhookURL: srv.URL,
		Timeout:         2 * time.Second,
	}, zap.NewNop())

	clock := "21:30"
	vehicle := "jeep_cherokee"
	shift := &model.Shift{
		ModuleType:     model.ModulePatrolActivation,
		ActivationTime: &clock,
		VehicleUsed:    &vehicle,
		ManagedBy:      model.NewPerson(model.OperatorRef{ID: "M.010", Name: "Capopattuglia Bruni"}),
		OperatorsOut: model.PersonList{
			{ID: "M.001", Name: "Mario Rossi"},
			{ID: "M.002", Name: "Luca Verdi"},
		},
	}

	n.ShiftCreated(shift)

	select {
	case body := <-received:
		var payload struct {
			Embeds []struct {
				Title  string `json:"title"`
				Fields []struct {
					Name  string `json:"name"`
					Value string `json:"value"`
				} `json:"fields"`
			} `json:"embeds"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			t.Fatalf("decoding webhook payload failed: %v", err)
		}
		if len(payload.Embeds) != 1 {
			t.Fatalf("expected 1 embed, got %d", len(payload.Embeds))
		}
		embed := payload.Embeds[0]
		if !strings.Contains(embed.Title, "Pattuglia") {
			t.Errorf("unexpected embed title: %q", embed.Title)
		}
		foundCrew := false
		for _, f := range embed.Fields {
			if f.Name == "Operatori" && strings.Contains(f.Value, "M.001") {
				foundCrew = true
			}
		}
		if !foundCrew {
			t.Error("expected the crew field in the embed")
		}
	case <-time.After(3 * time.Second):
		t.Fatal("webhook was never called")
	}
}
