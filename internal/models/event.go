package models

// Event is one drop event from the feed, normalized at the ingestion boundary
// (the legacy "encore" alias is already folded into AI and missing counts are
// zero). Aggregations require event slices sorted ascending by T; the feed
// client sorts before handing history to the engine.
type Event struct {
	T          int64 `json:"t"`
	AI         int   `json:"ai"`
	LastChance int   `json:"last_chance"`
	ZeroETV    int   `json:"zero_etv"`
}
