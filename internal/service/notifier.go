package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"centrale-operativa/backend/config"
	"centrale-operativa/backend/internal/model"
)

// ShiftNotifier announces new activation records to the unit's channel.
type ShiftNotifier interface {
	ShiftCreated(shift *model.Shift)
}

// discordNotifier posts shift records to a Discord webhook as an embed.
// Delivery is best effort: failures are logged, never surfaced to the caller.
type discordNotifier struct {
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewShiftNotifier creates the Discord webhook notifier. With an empty
// webhook URL it returns a no-op notifier.
func NewShiftNotifier(cfg *config.DiscordConfig, logger *zap.Logger) ShiftNotifier {
	if cfg.ShiftWebhookURL == "" {
		return noopNotifier{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &discordNotifier{
		webhookURL: cfg.ShiftWebhookURL,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type noopNotifier struct{}

func (noopNotifier) ShiftCreated(*model.Shift) {}

// Discord webhook payload shapes, only the fields the embed uses.
type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title  string         `json:"title"`
	Color  int            `json:"color"`
	Fields []webhookField `json:"fields,omitempty"`
}

type webhookField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

const (
	colorActivation   = 0x2ecc71
	colorDeactivation = 0xe74c3c
)

func (n *discordNotifier) ShiftCreated(shift *model.Shift) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), n.client.Timeout)
		defer cancel()

		if err := n.post(ctx, buildShiftEmbed(shift)); err != nil {
			n.logger.Warn("shift webhook delivery failed",
				zap.String("module_type", shift.ModuleType),
				zap.Error(err))
		}
	}()
}

func (n *discordNotifier) post(ctx context.Context, embed webhookEmbed) error {
	body, err := json.Marshal(webhookPayload{Embeds: []webhookEmbed{embed}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %s", resp.Status)
	}
	return nil
}

// buildShiftEmbed renders a record as a Discord embed, one field per
// populated form value.
func buildShiftEmbed(shift *model.Shift) webhookEmbed {
	embed := webhookEmbed{Title: embedTitle(shift.ModuleType), Color: colorDeactivation}
	if shift.IsActivation() {
		embed.Color = colorActivation
	}

	if shift.ManagedBy.Valid {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Gestita da", Value: refLabel(shift.ManagedBy.OperatorRef), Inline: true,
		})
	}
	if shift.Coordinator.Valid {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Coordinatore", Value: refLabel(shift.Coordinator.OperatorRef), Inline: true,
		})
	}
	if shift.Negotiator.Valid {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Negoziatore", Value: refLabel(shift.Negotiator.OperatorRef), Inline: true,
		})
	}
	if clock := shift.ClockTime(); clock != nil && *clock != "" {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Orario", Value: *clock, Inline: true,
		})
	}
	if shift.InterventionType != nil {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Intervento", Value: *shift.InterventionType, Inline: true,
		})
	}
	if shift.VehicleUsed != nil {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Veicolo", Value: *shift.VehicleUsed, Inline: true,
		})
	}
	if ops := shift.PairingOperators(); len(ops) > 0 {
		embed.Fields = append(embed.Fields, webhookField{
			Name: "Operatori", Value: crewLabel(ops),
		})
	}

	return embed
}

func embedTitle(moduleType string) string {
	switch moduleType {
	case model.ModulePatrolActivation:
		return "🚔 Attivazione Pattuglia"
	case model.ModulePatrolDeactivation:
		return "🏁 Disattivazione Pattuglia"
	case model.ModuleHeistActivation:
		return "🚨 Attivazione Rapina"
	case model.ModuleHeistDeactivation:
		return "🏁 Disattivazione Rapina"
	default:
		return "Nuova registrazione"
	}
}

func refLabel(ref model.OperatorRef) string {
	if ref.Name == "" {
		return ref.ID
	}
	return fmt.Sprintf("%s (%s)", ref.Name, ref.ID)
}

func crewLabel(ops model.PersonList) string {
	labels := make([]string, 0, len(ops))
	for _, op := range ops {
		labels = append(labels, refLabel(op))
	}
	return strings.Join(labels, ", ")
}
