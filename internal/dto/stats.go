package dto

// OperatorStat is one row of the ranked activation-hours table.
type OperatorStat struct {
	Matricola     string `json:"matricola"`
	Operator      string `json:"operator"`
	Qualification string `json:"qualification"`
	AvatarURL     string `json:"avatar_url"`
	TotalMinutes  int    `json:"total_minutes"`
	Hours         int    `json:"hours"`
	Minutes       int    `json:"minutes"`
	Pairings      int    `json:"pairings"`
}

// StatsReport is the output of the activation ledger aggregator.
// Unmatched record counts are reported alongside the totals so the command
// view can distinguish incomplete ledgers from quiet ones.
type StatsReport struct {
	Stats                  []OperatorStat `json:"stats"`
	MatchedPairs           int            `json:"matched_pairs"`
	UnmatchedActivations   int            `json:"unmatched_activations"`
	UnmatchedDeactivations int            `json:"unmatched_deactivations"`
	MalformedTimes         int            `json:"malformed_times"`
}
