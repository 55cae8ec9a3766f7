package models

// NegotiationOffer is one side's current position in a contract negotiation.
type NegotiationOffer struct {
	Amount int `json:"amount"`
	Years  int `json:"years"`
}

// Negotiation is a transient record of an open contract negotiation between a
// team and a player, keyed by player ID. At most one non-resigning
// negotiation may be open at a time; resigning negotiations may run
// concurrently.
type Negotiation struct {
	PID       int              `json:"pid"`
	TID       int              `json:"tid"`
	Team      NegotiationOffer `json:"team"`
	Player    NegotiationOffer `json:"player"`
	Orig      NegotiationOffer `json:"orig"`
	Resigning bool             `json:"resigning"`
}
