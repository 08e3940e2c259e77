package models

import "time"

// ShareAccess is one entry of a share link's recent access history. It is kept in
// Redis, not in the relational store.
type ShareAccess struct {
	ShareLinkID uint      `json:"shareLinkId"`
	ClientID    *uint     `json:"clientId,omitempty"`
	ClientName  string    `json:"clientName,omitempty"`
	AccessCount int64     `json:"accessCount"`
	AccessedAt  time.Time `json:"accessedAt"`
}
