package domain

import "time"

// NetworkMember is a user in someone's referral network along with the
// number of invitations they have sent themselves. Name is the user's
// first profile name, empty if none.
type NetworkMember struct {
	ID          string
	Name        string
	Level       int
	LastOnline  time.Time
	SentInvites int
}

// TopInviter is one leaderboard row in the network statistics.
type TopInviter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Invitations int    `json:"invitations"`
	Level       int    `json:"level"`
}

// NetworkStats is a read-only snapshot of a user's referral subtree.
// The queried user is not counted as part of their own network.
type NetworkStats struct {
	NetworkSize      int          `json:"network_size"`
	NetworkByLevel   map[int]int  `json:"network_by_level"`
	ActiveUsers      int          `json:"active_users"`
	ViralCoefficient float64      `json:"viral_coefficient"`
	NetworkDepth     int          `json:"network_depth"`
	TopInviters      []TopInviter `json:"top_inviters"`
}

// NearbyUser is a radar hit: a user with a fresh location, annotated with
// the distance in kilometers from the query point.
type NearbyUser struct {
	ID         string    `json:"id"`
	Profiles   []Profile `json:"profiles"`
	DistanceKm float64   `json:"distance_km"`
}
