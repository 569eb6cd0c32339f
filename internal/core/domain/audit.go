package domain

import "time"

// PointsAdjustment is the audit record written for every balance mutation.
type PointsAdjustment struct {
	AccountID  string
	Delta      int64
	NewBalance int64
	ActorID    string
	Timestamp  time.Time
}
